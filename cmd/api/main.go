package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/velora-shop/velora-backend/api/routes"
	authsvc "github.com/velora-shop/velora-backend/internal/auth"
	"github.com/velora-shop/velora-backend/internal/banners"
	"github.com/velora-shop/velora-backend/internal/blog"
	"github.com/velora-shop/velora-backend/internal/catalog"
	"github.com/velora-shop/velora-backend/internal/checkout"
	"github.com/velora-shop/velora-backend/internal/content"
	"github.com/velora-shop/velora-backend/internal/orders"
	"github.com/velora-shop/velora-backend/internal/promo"
	"github.com/velora-shop/velora-backend/internal/users"
	"github.com/velora-shop/velora-backend/pkg/auth/session"
	"github.com/velora-shop/velora-backend/pkg/config"
	"github.com/velora-shop/velora-backend/pkg/db"
	"github.com/velora-shop/velora-backend/pkg/logger"
	"github.com/velora-shop/velora-backend/pkg/metrics"
	"github.com/velora-shop/velora-backend/pkg/migrate"
	"github.com/velora-shop/velora-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	svcs, err := buildServices(cfg, logg, dbClient, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, registry, sessionManager, svcs),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, sessions *session.Manager) (routes.Services, error) {
	conn := dbClient.DB()

	catalogRepo := catalog.NewRepository(conn)
	checkoutRepo := checkout.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)
	promoRepo := promo.NewRepository(conn)
	blogRepo := blog.NewRepository(conn)
	bannerRepo := banners.NewRepository(conn)
	contentRepo := content.NewRepository(conn)
	usersRepo := users.NewRepository(conn)

	catalogService, err := catalog.NewService(catalogRepo, cfg.Catalog, logg)
	if err != nil {
		return routes.Services{}, err
	}
	catalogAdmin, err := catalog.NewAdminService(catalogRepo, cfg.Catalog, logg)
	if err != nil {
		return routes.Services{}, err
	}
	checkoutService, err := checkout.NewService(dbClient, checkoutRepo, cfg.Checkout, logg)
	if err != nil {
		return routes.Services{}, err
	}
	ordersService, err := orders.NewService(ordersRepo, cfg.Catalog, logg)
	if err != nil {
		return routes.Services{}, err
	}
	promoService, err := promo.NewService(promoRepo, logg)
	if err != nil {
		return routes.Services{}, err
	}
	blogService, err := blog.NewService(blogRepo, cfg.Catalog, logg)
	if err != nil {
		return routes.Services{}, err
	}
	bannerService, err := banners.NewService(bannerRepo, logg)
	if err != nil {
		return routes.Services{}, err
	}
	contentService, err := content.NewService(contentRepo, logg)
	if err != nil {
		return routes.Services{}, err
	}
	usersService, err := users.NewService(usersRepo, cfg.Password, logg)
	if err != nil {
		return routes.Services{}, err
	}
	authService, err := authsvc.NewService(usersRepo, sessions, cfg.JWT, logg)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:         authService,
		Catalog:      catalogService,
		CatalogAdmin: catalogAdmin,
		Checkout:     checkoutService,
		Orders:       ordersService,
		Promos:       promoService,
		Blog:         blogService,
		Banners:      bannerService,
		Content:      contentService,
		Users:        usersService,
	}, nil
}
