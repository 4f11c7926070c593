package comparison

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
)

type productLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// Service assembles comparison tables from catalog products.
type Service interface {
	Compare(ctx context.Context, ids []uuid.UUID) (*Table, error)
}

type service struct {
	products productLoader
}

// NewService builds the comparison service.
func NewService(products productLoader) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{products: products}, nil
}

// Compare validates the requested selection, loads the products and builds
// the table. Product column order follows the requested id order.
func (s *service) Compare(ctx context.Context, ids []uuid.UUID) (*Table, error) {
	selection := NewSelection()
	for _, id := range ids {
		if err := selection.Add(id); err != nil {
			return nil, err
		}
	}
	if !selection.Comparable() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comparison needs at least 2 products")
	}

	loaded, err := s.products.FindByIDs(ctx, selection.IDs())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products for comparison")
	}

	byID := make(map[uuid.UUID]models.Product, len(loaded))
	for _, product := range loaded {
		byID[product.ID] = product
	}

	ordered := make([]models.Product, 0, len(ids))
	for _, id := range selection.IDs() {
		product, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]string{"product_id": id.String()})
		}
		if !product.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available").
				WithDetails(map[string]string{"product_id": id.String()})
		}
		ordered = append(ordered, product)
	}

	return Assemble(ordered), nil
}
