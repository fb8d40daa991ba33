package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velora-shop/velora-backend/api/controllers"
	"github.com/velora-shop/velora-backend/api/middleware"
	authsvc "github.com/velora-shop/velora-backend/internal/auth"
	bannersvc "github.com/velora-shop/velora-backend/internal/banners"
	blogsvc "github.com/velora-shop/velora-backend/internal/blog"
	catalogsvc "github.com/velora-shop/velora-backend/internal/catalog"
	checkoutsvc "github.com/velora-shop/velora-backend/internal/checkout"
	contentsvc "github.com/velora-shop/velora-backend/internal/content"
	orderssvc "github.com/velora-shop/velora-backend/internal/orders"
	promosvc "github.com/velora-shop/velora-backend/internal/promo"
	userssvc "github.com/velora-shop/velora-backend/internal/users"
	"github.com/velora-shop/velora-backend/pkg/auth/session"
	"github.com/velora-shop/velora-backend/pkg/config"
	"github.com/velora-shop/velora-backend/pkg/logger"
	"github.com/velora-shop/velora-backend/pkg/metrics"
	"github.com/velora-shop/velora-backend/pkg/redis"
)

// Services bundles everything the router wires into handlers. cmd/api
// builds one of these after bootstrapping the shared clients.
type Services struct {
	Auth         authsvc.Service
	Catalog      catalogsvc.Service
	CatalogAdmin catalogsvc.AdminService
	Checkout     checkoutsvc.Service
	Orders       orderssvc.Service
	Promos       promosvc.Service
	Blog         blogsvc.Service
	Banners      bannersvc.Service
	Content      contentsvc.Service
	Users        userssvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	sessions session.AccessSessionChecker,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
		middleware.Locale(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	maxLimit := cfg.Catalog.MaxPageSize

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, cfg.JWT, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(svcs.Catalog, logg))
			r.Get("/{category}", controllers.CategoryDrilldown(svcs.Catalog, maxLimit, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Catalog, maxLimit, logg))
			r.Get("/trending", controllers.TrendingProducts(svcs.Catalog, maxLimit, logg))
			r.Get("/best-sellers", controllers.BestSellerProducts(svcs.Catalog, maxLimit, logg))
			r.Get("/on-sale", controllers.OnSaleProducts(svcs.Catalog, maxLimit, logg))
			r.Get("/search", controllers.SearchProducts(svcs.Catalog, maxLimit, logg))
			r.Get("/{slug}", controllers.ProductBySlug(svcs.Catalog, logg))
			r.Get("/{slug}/related", controllers.RelatedProducts(svcs.Catalog, logg))
		})

		r.Get("/banners", controllers.ActiveBanners(svcs.Banners, logg))
		r.Route("/blog", func(r chi.Router) {
			r.Get("/", controllers.BlogList(svcs.Blog, maxLimit, logg))
			r.Get("/{slug}", controllers.BlogPostBySlug(svcs.Blog, logg))
		})
		r.Get("/settings", controllers.SiteSettings(svcs.Content, logg))

		r.Post("/promo-codes/validate", controllers.ValidatePromoCode(svcs.Checkout, logg))
		r.Post("/cart/quote", controllers.QuoteCart(svcs.Checkout, logg))

		// Order capture replays the stored response when a client retries
		// with the same Idempotency-Key.
		r.With(middleware.Idempotency(redisClient, logg)).Post("/orders", controllers.CreateOrder(svcs.Checkout, logg))
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/categories", func(r chi.Router) {
			manage := middleware.RequireGrant(middleware.GrantManageCategories, logg)
			remove := middleware.RequireGrant(middleware.GrantDeleteCategories, logg)

			r.With(manage).Post("/", controllers.AdminCreateCategory(svcs.CatalogAdmin, logg))
			r.With(manage).Put("/{categoryId}", controllers.AdminUpdateCategory(svcs.CatalogAdmin, logg))
			r.With(remove).Delete("/{categoryId}", controllers.AdminDeleteCategory(svcs.CatalogAdmin, logg))

			r.Route("/{categoryId}/brands", func(r chi.Router) {
				r.With(manage).Post("/", controllers.AdminCreateBrand(svcs.CatalogAdmin, logg))
				r.With(manage).Put("/{brandId}", controllers.AdminUpdateBrand(svcs.CatalogAdmin, logg))
				r.With(remove).Delete("/{brandId}", controllers.AdminDeleteBrand(svcs.CatalogAdmin, logg))

				r.Route("/{brandId}/types", func(r chi.Router) {
					r.With(manage).Post("/", controllers.AdminCreateType(svcs.CatalogAdmin, logg))
					r.With(manage).Put("/{typeId}", controllers.AdminUpdateType(svcs.CatalogAdmin, logg))
					r.With(remove).Delete("/{typeId}", controllers.AdminDeleteType(svcs.CatalogAdmin, logg))
				})
			})
		})

		r.Route("/products", func(r chi.Router) {
			manage := middleware.RequireGrant(middleware.GrantManageProducts, logg)
			remove := middleware.RequireGrant(middleware.GrantDeleteProducts, logg)

			r.With(manage).Get("/", controllers.AdminListProducts(svcs.CatalogAdmin, maxLimit, logg))
			r.With(manage).Get("/{productId}", controllers.AdminGetProduct(svcs.CatalogAdmin, logg))
			r.With(manage).Post("/", controllers.AdminCreateProduct(svcs.CatalogAdmin, logg))
			r.With(manage).Put("/{productId}", controllers.AdminUpdateProduct(svcs.CatalogAdmin, logg))
			r.With(remove).Delete("/{productId}", controllers.AdminDeleteProduct(svcs.CatalogAdmin, logg))

			r.Route("/bulk", func(r chi.Router) {
				r.With(manage).Post("/trending", controllers.AdminBulkTrending(svcs.CatalogAdmin, logg))
				r.With(manage).Post("/best-sellers", controllers.AdminBulkBestSeller(svcs.CatalogAdmin, logg))
				r.With(manage).Post("/remove-sale", controllers.AdminBulkRemoveSale(svcs.CatalogAdmin, logg))
				r.With(remove).Post("/delete", controllers.AdminBulkDeleteProducts(svcs.CatalogAdmin, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			manage := middleware.RequireGrant(middleware.GrantManageOrders, logg)
			remove := middleware.RequireGrant(middleware.GrantDeleteOrders, logg)

			r.With(manage).Get("/", controllers.AdminListOrders(svcs.Orders, maxLimit, logg))
			r.With(manage).Get("/{orderId}", controllers.AdminGetOrder(svcs.Orders, logg))
			r.With(manage).Patch("/{orderId}/status", controllers.AdminUpdateOrderStatus(svcs.Orders, logg))
			r.With(remove).Delete("/{orderId}", controllers.AdminDeleteOrder(svcs.Orders, logg))
		})

		r.Get("/dashboard", controllers.AdminDashboard(svcs.Orders, logg))

		r.Route("/promo-codes", func(r chi.Router) {
			manage := middleware.RequireGrant(middleware.GrantManagePromoCodes, logg)
			remove := middleware.RequireGrant(middleware.GrantDeletePromoCodes, logg)

			r.With(manage).Get("/", controllers.AdminListPromos(svcs.Promos, logg))
			r.With(manage).Get("/{promoId}", controllers.AdminGetPromo(svcs.Promos, logg))
			r.With(manage).Post("/", controllers.AdminCreatePromo(svcs.Promos, logg))
			r.With(manage).Put("/{promoId}", controllers.AdminUpdatePromo(svcs.Promos, logg))
			r.With(manage).Post("/{promoId}/toggle", controllers.AdminTogglePromo(svcs.Promos, logg))
			r.With(remove).Delete("/{promoId}", controllers.AdminDeletePromo(svcs.Promos, logg))
		})

		r.Route("/banners", func(r chi.Router) {
			manage := middleware.RequireGrant(middleware.GrantManageBanners, logg)
			remove := middleware.RequireGrant(middleware.GrantDeleteBanners, logg)

			r.With(manage).Get("/", controllers.AdminListBanners(svcs.Banners, logg))
			r.With(manage).Post("/", controllers.AdminCreateBanner(svcs.Banners, logg))
			r.With(manage).Put("/{bannerId}", controllers.AdminUpdateBanner(svcs.Banners, logg))
			r.With(manage).Post("/{bannerId}/toggle", controllers.AdminToggleBanner(svcs.Banners, logg))
			r.With(remove).Delete("/{bannerId}", controllers.AdminDeleteBanner(svcs.Banners, logg))
		})

		r.Route("/blog", func(r chi.Router) {
			manage := middleware.RequireGrant(middleware.GrantManageBlogs, logg)
			remove := middleware.RequireGrant(middleware.GrantDeleteBlogs, logg)

			r.With(manage).Get("/", controllers.AdminListPosts(svcs.Blog, maxLimit, logg))
			r.With(manage).Get("/{postId}", controllers.AdminGetPost(svcs.Blog, logg))
			r.With(manage).Post("/", controllers.AdminCreatePost(svcs.Blog, logg))
			r.With(manage).Put("/{postId}", controllers.AdminUpdatePost(svcs.Blog, logg))
			r.With(manage).Post("/{postId}/toggle", controllers.AdminTogglePost(svcs.Blog, logg))
			r.With(remove).Delete("/{postId}", controllers.AdminDeletePost(svcs.Blog, logg))
		})

		r.Route("/users", func(r chi.Router) {
			manage := middleware.RequireGrant(middleware.GrantManageUsers, logg)

			r.With(manage).Get("/", controllers.AdminListUsers(svcs.Users, logg))
			r.With(manage).Get("/{userId}", controllers.AdminGetUser(svcs.Users, logg))
			r.With(manage).Post("/", controllers.AdminCreateUser(svcs.Users, logg))
			r.With(manage).Put("/{userId}", controllers.AdminUpdateUser(svcs.Users, logg))
			r.With(manage).Delete("/{userId}", controllers.AdminDeleteUser(svcs.Users, logg))
		})

		r.With(middleware.RequireGrant(middleware.GrantManageUsers, logg)).
			Put("/settings", controllers.AdminUpdateSettings(svcs.Content, logg))
	})

	return r
}
