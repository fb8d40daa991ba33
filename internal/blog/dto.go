package blog

import (
	"time"

	"github.com/google/uuid"

	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/enums"
	"github.com/velora-shop/velora-backend/pkg/i18n"
	"github.com/velora-shop/velora-backend/pkg/imagepath"
	"github.com/velora-shop/velora-backend/pkg/pagination"
)

// PostSummaryDTO is the localized list entry for the public blog.
type PostSummaryDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     *string   `json:"excerpt,omitempty"`
	Image       *string   `json:"image,omitempty"`
	PublishedAt string    `json:"publishedAt,omitempty"`
}

// PostDTO is the localized full article.
type PostDTO struct {
	PostSummaryDTO
	Content   string  `json:"content"`
	MetaTitle *string `json:"metaTitle,omitempty"`
	MetaDesc  *string `json:"metaDesc,omitempty"`
	Keywords  *string `json:"keywords,omitempty"`
}

// PostListResult pages the public blog.
type PostListResult struct {
	Posts      []PostSummaryDTO `json:"posts"`
	Pagination pagination.Page  `json:"pagination"`
}

// PostInput is the admin create/update payload.
type PostInput struct {
	Title     string  `json:"title" validate:"required,min=1,max=300"`
	TitleAr   *string `json:"titleAr" validate:"omitempty,max=300"`
	Content   string  `json:"content" validate:"required,min=1"`
	ContentAr *string `json:"contentAr"`
	Excerpt   *string `json:"excerpt" validate:"omitempty,max=1000"`
	ExcerptAr *string `json:"excerptAr" validate:"omitempty,max=1000"`
	Image     *string `json:"image" validate:"omitempty,max=500"`
	MetaTitle *string `json:"metaTitle" validate:"omitempty,max=300"`
	MetaDesc  *string `json:"metaDesc" validate:"omitempty,max=500"`
	Keywords  *string `json:"keywords" validate:"omitempty,max=500"`
}

// AdminPostDTO exposes both locales plus the publication state.
type AdminPostDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	TitleAr     *string   `json:"titleAr,omitempty"`
	Slug        string    `json:"slug"`
	SlugAr      *string   `json:"slugAr,omitempty"`
	Content     string    `json:"content"`
	ContentAr   *string   `json:"contentAr,omitempty"`
	Excerpt     *string   `json:"excerpt,omitempty"`
	ExcerptAr   *string   `json:"excerptAr,omitempty"`
	Image       *string   `json:"image,omitempty"`
	IsPublished bool      `json:"isPublished"`
	PublishedAt string    `json:"publishedAt,omitempty"`
	MetaTitle   *string   `json:"metaTitle,omitempty"`
	MetaDesc    *string   `json:"metaDesc,omitempty"`
	Keywords    *string   `json:"keywords,omitempty"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// AdminPostListResult pages the panel post table.
type AdminPostListResult struct {
	Posts      []AdminPostDTO  `json:"posts"`
	Pagination pagination.Page `json:"pagination"`
}

func newPostSummaryDTO(post *models.BlogPost, locale enums.Locale) PostSummaryDTO {
	dto := PostSummaryDTO{
		ID:      post.ID,
		Title:   i18n.Pick(locale, post.Title, post.TitleAr),
		Slug:    post.Slug,
		Excerpt: i18n.PickPtr(locale, post.Excerpt, post.ExcerptAr),
		Image:   normalizedImagePtr(post.Image),
	}
	if locale == enums.LocaleArabic && post.SlugAr != nil && *post.SlugAr != "" {
		dto.Slug = *post.SlugAr
	}
	if post.PublishedAt != nil {
		dto.PublishedAt = post.PublishedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func newPostDTO(post *models.BlogPost, locale enums.Locale) PostDTO {
	content := post.Content
	if locale == enums.LocaleArabic && post.ContentAr != nil && *post.ContentAr != "" {
		content = *post.ContentAr
	}
	return PostDTO{
		PostSummaryDTO: newPostSummaryDTO(post, locale),
		Content:        content,
		MetaTitle:      post.MetaTitle,
		MetaDesc:       post.MetaDesc,
		Keywords:       post.Keywords,
	}
}

func newAdminPostDTO(post *models.BlogPost) AdminPostDTO {
	dto := AdminPostDTO{
		ID:          post.ID,
		Title:       post.Title,
		TitleAr:     post.TitleAr,
		Slug:        post.Slug,
		SlugAr:      post.SlugAr,
		Content:     post.Content,
		ContentAr:   post.ContentAr,
		Excerpt:     post.Excerpt,
		ExcerptAr:   post.ExcerptAr,
		Image:       post.Image,
		IsPublished: post.IsPublished,
		MetaTitle:   post.MetaTitle,
		MetaDesc:    post.MetaDesc,
		Keywords:    post.Keywords,
		CreatedAt:   post.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   post.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if post.PublishedAt != nil {
		dto.PublishedAt = post.PublishedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func normalizedImagePtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	normalized := imagepath.Normalize(*raw)
	if normalized == "" {
		return nil
	}
	return &normalized
}
