package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
	"github.com/shopkartlabs/shopkart-backend/pkg/pagination"
)

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	List(ctx context.Context, filter Filter, params pagination.Params) (*List, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes catalog reads and admin writes with the platform error
// taxonomy applied.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	Browse(ctx context.Context, filter Filter, params pagination.Params) (*List, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService builds the catalog service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "load product")
	}
	return product, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, translate(err, "load product")
	}
	return product, nil
}

func (s *service) GetMany(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, translate(err, "load products")
	}
	return found, nil
}

func (s *service) Browse(ctx context.Context, filter Filter, params pagination.Params) (*List, error) {
	list, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, translate(err, "list products")
	}
	return list, nil
}

func (s *service) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.PricePaise < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, translate(err, "create product")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if product.PricePaise < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, translate(err, "update product")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err, "delete product")
	}
	return nil
}

func translate(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
