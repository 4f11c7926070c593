package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
)

type repository interface {
	ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	ListPending(ctx context.Context) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
	IncrementHelpful(ctx context.Context, id uuid.UUID) error
}

// CreateInput is the customer review submission.
type CreateInput struct {
	ProductID  uuid.UUID `json:"product_id" validate:"required"`
	AuthorName string    `json:"author_name" validate:"required"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Title      string    `json:"title" validate:"required"`
	Content    string    `json:"content" validate:"required"`
}

// ProductReviews pairs the published reviews with their derived summary.
type ProductReviews struct {
	Reviews []models.Review `json:"reviews"`
	Summary Summary         `json:"summary"`
}

// Service exposes the review read/write surface.
type Service interface {
	ListForProduct(ctx context.Context, productID uuid.UUID) (*ProductReviews, error)
	ListPending(ctx context.Context) ([]models.Review, error)
	Create(ctx context.Context, input CreateInput) (*models.Review, error)
	Approve(ctx context.Context, id uuid.UUID) error
	Feature(ctx context.Context, id uuid.UUID, featured bool) error
	MarkHelpful(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService builds the review service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListForProduct(ctx context.Context, productID uuid.UUID) (*ProductReviews, error) {
	rows, err := s.repo.ListApprovedByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return &ProductReviews{
		Reviews: rows,
		Summary: Aggregate(rows),
	}, nil
}

func (s *service) ListPending(ctx context.Context) ([]models.Review, error) {
	rows, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending reviews")
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Review, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.AuthorName) == "" || strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author, title and content are required")
	}

	review := &models.Review{
		ProductID:  input.ProductID,
		AuthorName: strings.TrimSpace(input.AuthorName),
		Rating:     input.Rating,
		Title:      strings.TrimSpace(input.Title),
		Content:    strings.TrimSpace(input.Content),
		IsApproved: false,
	}
	created, err := s.repo.Create(ctx, review)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return created, nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetApproved(ctx, id, true); err != nil {
		return translate(err, "approve review")
	}
	return nil
}

func (s *service) Feature(ctx context.Context, id uuid.UUID, featured bool) error {
	if err := s.repo.SetFeatured(ctx, id, featured); err != nil {
		return translate(err, "feature review")
	}
	return nil
}

func (s *service) MarkHelpful(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.IncrementHelpful(ctx, id); err != nil {
		return translate(err, "mark review helpful")
	}
	return nil
}

func translate(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
