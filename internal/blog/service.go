package blog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velora-shop/velora-backend/pkg/config"
	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/i18n"
	"github.com/velora-shop/velora-backend/pkg/logger"
	"github.com/velora-shop/velora-backend/pkg/pagination"
	"github.com/velora-shop/velora-backend/pkg/slug"
)

// Service covers the public blog plus panel management.
type Service interface {
	ListPublished(ctx context.Context, params pagination.Params) (*PostListResult, error)
	PostBySlug(ctx context.Context, slugValue string) (*PostDTO, error)

	ListAll(ctx context.Context, params pagination.Params) (*AdminPostListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*AdminPostDTO, error)
	Create(ctx context.Context, input PostInput) (*AdminPostDTO, error)
	Update(ctx context.Context, id uuid.UUID, input PostInput) (*AdminPostDTO, error)
	TogglePublish(ctx context.Context, id uuid.UUID) (*AdminPostDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
	cfg  config.CatalogConfig
	logg *logger.Logger
	now  func() time.Time
}

// NewService wires the blog service.
func NewService(repo *Repository, cfg config.CatalogConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("blog service requires a repository")
	}
	if logg == nil {
		return nil, fmt.Errorf("blog service requires a logger")
	}
	return &service{repo: repo, cfg: cfg, logg: logg, now: time.Now}, nil
}

func (s *service) ListPublished(ctx context.Context, params pagination.Params) (*PostListResult, error) {
	params = pagination.Normalize(params, s.cfg.MaxPageSize)
	posts, total, err := s.repo.ListPublished(ctx, params)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list published posts")
	}
	locale := i18n.LocaleFromContext(ctx)
	dtos := make([]PostSummaryDTO, 0, len(posts))
	for i := range posts {
		dtos = append(dtos, newPostSummaryDTO(&posts[i], locale))
	}
	return &PostListResult{Posts: dtos, Pagination: pagination.Build(params, total)}, nil
}

func (s *service) PostBySlug(ctx context.Context, slugValue string) (*PostDTO, error) {
	post, err := s.repo.FindPublishedBySlug(ctx, slugValue)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "look up post")
	}
	if post == nil {
		return nil, errors.New(errors.CodeNotFound, "post not found")
	}
	dto := newPostDTO(post, i18n.LocaleFromContext(ctx))
	return &dto, nil
}

func (s *service) ListAll(ctx context.Context, params pagination.Params) (*AdminPostListResult, error) {
	params = pagination.Normalize(params, s.cfg.MaxPageSize)
	posts, total, err := s.repo.ListAll(ctx, params)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list posts")
	}
	dtos := make([]AdminPostDTO, 0, len(posts))
	for i := range posts {
		dtos = append(dtos, newAdminPostDTO(&posts[i]))
	}
	return &AdminPostListResult{Posts: dtos, Pagination: pagination.Build(params, total)}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*AdminPostDTO, error) {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := newAdminPostDTO(post)
	return &dto, nil
}

func (s *service) loadPost(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load post")
	}
	if post == nil {
		return nil, errors.New(errors.CodeNotFound, "post not found")
	}
	return post, nil
}

func (s *service) uniqueSlug(ctx context.Context, title string, excludeID *uuid.UUID) (string, error) {
	candidate := slug.Make(title)
	taken, err := s.repo.SlugExists(ctx, candidate, excludeID)
	if err != nil {
		return "", errors.Wrap(errors.CodeDependency, err, "check post slug")
	}
	if taken {
		candidate = slug.WithRandomSuffix(candidate)
	}
	return candidate, nil
}

func (s *service) Create(ctx context.Context, input PostInput) (*AdminPostDTO, error) {
	postSlug, err := s.uniqueSlug(ctx, input.Title, nil)
	if err != nil {
		return nil, err
	}
	post := &models.BlogPost{
		Title:     input.Title,
		TitleAr:   input.TitleAr,
		Slug:      postSlug,
		Content:   input.Content,
		ContentAr: input.ContentAr,
		Excerpt:   input.Excerpt,
		ExcerptAr: input.ExcerptAr,
		Image:     input.Image,
		MetaTitle: input.MetaTitle,
		MetaDesc:  input.MetaDesc,
		Keywords:  input.Keywords,
	}
	if input.TitleAr != nil && *input.TitleAr != "" {
		arSlug := slug.Make(*input.TitleAr)
		if arSlug != "" {
			post.SlugAr = &arSlug
		}
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "create post")
	}
	s.logg.Info(s.logg.WithField(ctx, "post_id", post.ID.String()), "admin.blog.created")
	dto := newAdminPostDTO(post)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input PostInput) (*AdminPostDTO, error) {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Title != input.Title {
		postSlug, err := s.uniqueSlug(ctx, input.Title, &id)
		if err != nil {
			return nil, err
		}
		post.Slug = postSlug
	}
	post.Title = input.Title
	post.TitleAr = input.TitleAr
	post.Content = input.Content
	post.ContentAr = input.ContentAr
	post.Excerpt = input.Excerpt
	post.ExcerptAr = input.ExcerptAr
	post.Image = input.Image
	post.MetaTitle = input.MetaTitle
	post.MetaDesc = input.MetaDesc
	post.Keywords = input.Keywords
	if input.TitleAr != nil && *input.TitleAr != "" {
		arSlug := slug.Make(*input.TitleAr)
		if arSlug != "" {
			post.SlugAr = &arSlug
		}
	} else {
		post.SlugAr = nil
	}
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "update post")
	}
	dto := newAdminPostDTO(post)
	return &dto, nil
}

// TogglePublish flips visibility. The publication timestamp is set on the
// first publish and kept on later toggles so the public ordering is stable.
func (s *service) TogglePublish(ctx context.Context, id uuid.UUID) (*AdminPostDTO, error) {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}
	post.IsPublished = !post.IsPublished
	if post.IsPublished && post.PublishedAt == nil {
		now := s.now().UTC()
		post.PublishedAt = &now
	}
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "toggle post")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"post_id":      post.ID.String(),
		"is_published": post.IsPublished,
	}), "admin.blog.toggled")
	dto := newAdminPostDTO(post)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadPost(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "delete post")
	}
	s.logg.Info(s.logg.WithField(ctx, "post_id", id.String()), "admin.blog.deleted")
	return nil
}
