package blog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/velora-shop/velora-backend/pkg/config"
	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/enums"
	pkgerrors "github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/i18n"
	"github.com/velora-shop/velora-backend/pkg/logger"
	"github.com/velora-shop/velora-backend/pkg/pagination"
)

func setupBlogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`CREATE TABLE blog_posts (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  title TEXT NOT NULL,
  title_ar TEXT,
  slug TEXT NOT NULL UNIQUE,
  slug_ar TEXT,
  content TEXT NOT NULL,
  content_ar TEXT,
  excerpt TEXT,
  excerpt_ar TEXT,
  image TEXT,
  is_published INTEGER NOT NULL DEFAULT 0,
  published_at DATETIME,
  meta_title TEXT,
  meta_desc TEXT,
  keywords TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return conn
}

func newBlogTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), config.CatalogConfig{
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc
}

func seedPost(t *testing.T, conn *gorm.DB, title, slugValue string, published bool, mutate func(*models.BlogPost)) *models.BlogPost {
	t.Helper()

	post := &models.BlogPost{
		ID:          uuid.New(),
		Title:       title,
		Slug:        slugValue,
		Content:     "body of " + title,
		IsPublished: published,
	}
	if published {
		at := time.Now().UTC()
		post.PublishedAt = &at
	}
	if mutate != nil {
		mutate(post)
	}
	require.NoError(t, conn.Create(post).Error)
	return post
}

func TestListPublishedHidesDrafts(t *testing.T) {
	conn := setupBlogTestDB(t)
	svc := newBlogTestService(t, conn)
	seedPost(t, conn, "Summer Skincare", "summer-skincare", true, nil)
	seedPost(t, conn, "Unfinished Draft", "unfinished-draft", false, nil)

	result, err := svc.ListPublished(context.Background(), pagination.Params{})
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "Summer Skincare", result.Posts[0].Title)
	assert.Equal(t, int64(1), result.Pagination.Total)
	assert.NotEmpty(t, result.Posts[0].PublishedAt)
}

func TestListPublishedLocalized(t *testing.T) {
	conn := setupBlogTestDB(t)
	svc := newBlogTestService(t, conn)
	seedPost(t, conn, "Rituals", "rituals", true, func(p *models.BlogPost) {
		ar := "طقوس"
		arSlug := "rituals-ar"
		p.TitleAr = &ar
		p.SlugAr = &arSlug
	})

	ctx := i18n.WithLocale(context.Background(), enums.LocaleArabic)
	result, err := svc.ListPublished(ctx, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "طقوس", result.Posts[0].Title)
	assert.Equal(t, "rituals-ar", result.Posts[0].Slug)
}

func TestPostBySlug(t *testing.T) {
	conn := setupBlogTestDB(t)
	svc := newBlogTestService(t, conn)
	seedPost(t, conn, "Oils Guide", "oils-guide", true, func(p *models.BlogPost) {
		arSlug := "oils-guide-ar"
		p.SlugAr = &arSlug
	})
	seedPost(t, conn, "Hidden", "hidden", false, nil)

	t.Run("englishSlug", func(t *testing.T) {
		dto, err := svc.PostBySlug(context.Background(), "oils-guide")
		require.NoError(t, err)
		assert.Equal(t, "Oils Guide", dto.Title)
		assert.Equal(t, "body of Oils Guide", dto.Content)
	})

	t.Run("arabicSlug", func(t *testing.T) {
		dto, err := svc.PostBySlug(context.Background(), "oils-guide-ar")
		require.NoError(t, err)
		assert.Equal(t, "Oils Guide", dto.Title)
	})

	t.Run("draftIsNotFound", func(t *testing.T) {
		_, err := svc.PostBySlug(context.Background(), "hidden")
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	})
}

func TestPostCreate(t *testing.T) {
	conn := setupBlogTestDB(t)
	svc := newBlogTestService(t, conn)

	ar := "أسرار العطور"
	dto, err := svc.Create(context.Background(), PostInput{
		Title:   "Fragrance Secrets",
		TitleAr: &ar,
		Content: "notes and accords",
	})
	require.NoError(t, err)
	assert.Equal(t, "fragrance-secrets", dto.Slug)
	assert.False(t, dto.IsPublished, "new posts start as drafts")
	assert.Nil(t, dto.SlugAr, "arabic titles do not yield latin slugs")

	t.Run("collidingTitleGetsSuffix", func(t *testing.T) {
		again, err := svc.Create(context.Background(), PostInput{
			Title:   "Fragrance Secrets",
			Content: "second take",
		})
		require.NoError(t, err)
		assert.NotEqual(t, dto.Slug, again.Slug)
		assert.Contains(t, again.Slug, "fragrance-secrets-")
	})
}

func TestPostUpdate(t *testing.T) {
	conn := setupBlogTestDB(t)
	svc := newBlogTestService(t, conn)
	post := seedPost(t, conn, "Old Title", "old-title", false, nil)

	t.Run("titleChangeReslugs", func(t *testing.T) {
		dto, err := svc.Update(context.Background(), post.ID, PostInput{
			Title:   "New Title",
			Content: "refreshed",
		})
		require.NoError(t, err)
		assert.Equal(t, "new-title", dto.Slug)
		assert.Equal(t, "refreshed", dto.Content)
	})

	t.Run("sameTitleKeepsSlug", func(t *testing.T) {
		dto, err := svc.Update(context.Background(), post.ID, PostInput{
			Title:   "New Title",
			Content: "edited again",
		})
		require.NoError(t, err)
		assert.Equal(t, "new-title", dto.Slug)
	})

	t.Run("unknownID", func(t *testing.T) {
		_, err := svc.Update(context.Background(), uuid.New(), PostInput{
			Title:   "Whatever",
			Content: "x",
		})
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	})
}

func TestTogglePublishKeepsFirstTimestamp(t *testing.T) {
	conn := setupBlogTestDB(t)
	svc := newBlogTestService(t, conn)
	post := seedPost(t, conn, "Launch Notes", "launch-notes", false, nil)

	dto, err := svc.TogglePublish(context.Background(), post.ID)
	require.NoError(t, err)
	assert.True(t, dto.IsPublished)
	require.NotEmpty(t, dto.PublishedAt)
	firstPublishedAt := dto.PublishedAt

	dto, err = svc.TogglePublish(context.Background(), post.ID)
	require.NoError(t, err)
	assert.False(t, dto.IsPublished)
	assert.Equal(t, firstPublishedAt, dto.PublishedAt)

	dto, err = svc.TogglePublish(context.Background(), post.ID)
	require.NoError(t, err)
	assert.True(t, dto.IsPublished)
	assert.Equal(t, firstPublishedAt, dto.PublishedAt, "republish keeps the original timestamp")
}

func TestPostListAllAndDelete(t *testing.T) {
	conn := setupBlogTestDB(t)
	svc := newBlogTestService(t, conn)
	seedPost(t, conn, "Published", "published", true, nil)
	draft := seedPost(t, conn, "Draft", "draft", false, nil)

	result, err := svc.ListAll(context.Background(), pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, result.Posts, 2, "panel listing includes drafts")

	require.NoError(t, svc.Delete(context.Background(), draft.ID))

	err = svc.Delete(context.Background(), draft.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
