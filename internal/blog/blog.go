package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
)

// Repository persists blog posts.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListPublished returns published posts newest first.
func (r *Repository) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	var rows []models.BlogPost
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("published_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every post for the admin surface, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	var rows []models.BlogPost
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).First(&post, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *Repository) Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (r *Repository) Update(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.BlogPost{}, "id = ?", id).Error
}

type repository interface {
	ListPublished(ctx context.Context) ([]models.BlogPost, error)
	ListAll(ctx context.Context) ([]models.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	Update(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UpsertInput carries the editable blog post fields.
type UpsertInput struct {
	Title    string   `json:"title" validate:"required"`
	Slug     string   `json:"slug" validate:"required"`
	Excerpt  *string  `json:"excerpt,omitempty"`
	Body     string   `json:"body" validate:"required"`
	Tags     []string `json:"tags,omitempty"`
	CoverURL *string  `json:"cover_url,omitempty"`
	Publish  bool     `json:"publish"`
}

// Service exposes the public reading surface and admin authoring.
type Service interface {
	ListPublished(ctx context.Context) ([]models.BlogPost, error)
	ListAll(ctx context.Context) ([]models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Create(ctx context.Context, input UpsertInput) (*models.BlogPost, error)
	Update(ctx context.Context, slug string, input UpsertInput) (*models.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
	now  func() time.Time
}

// NewService builds the blog service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("blog repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	rows, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list published posts")
	}
	return rows, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list posts")
	}
	return rows, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, translate(err, "find post")
	}
	return post, nil
}

func (s *service) Create(ctx context.Context, input UpsertInput) (*models.BlogPost, error) {
	if err := validateUpsert(input); err != nil {
		return nil, err
	}

	post := &models.BlogPost{
		Title:    strings.TrimSpace(input.Title),
		Slug:     strings.TrimSpace(input.Slug),
		Excerpt:  input.Excerpt,
		Body:     input.Body,
		Tags:     pq.StringArray(input.Tags),
		CoverURL: input.CoverURL,
	}
	if input.Publish {
		now := s.now().UTC()
		post.IsPublished = true
		post.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create post")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, slug string, input UpsertInput) (*models.BlogPost, error) {
	if err := validateUpsert(input); err != nil {
		return nil, err
	}

	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, translate(err, "find post")
	}

	post.Title = strings.TrimSpace(input.Title)
	post.Slug = strings.TrimSpace(input.Slug)
	post.Excerpt = input.Excerpt
	post.Body = input.Body
	post.Tags = pq.StringArray(input.Tags)
	post.CoverURL = input.CoverURL
	if input.Publish && !post.IsPublished {
		now := s.now().UTC()
		post.IsPublished = true
		post.PublishedAt = &now
	}
	if !input.Publish {
		post.IsPublished = false
	}

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update post")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete post")
	}
	return nil
}

func validateUpsert(input UpsertInput) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Slug) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title and slug are required")
	}
	if strings.TrimSpace(input.Body) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "body is required")
	}
	return nil
}

func translate(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
