package orders

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	"github.com/shopkartlabs/shopkart-backend/pkg/enums"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
	"github.com/shopkartlabs/shopkart-backend/pkg/pagination"
)

type repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context, status *enums.OrderStatus, params pagination.Params) (*List, error)
	UpdateStatus(ctx context.Context, orderNumber string, status enums.OrderStatus) error
	Stats(ctx context.Context) (*Stats, error)
}

// Service exposes order lookup and lifecycle management. Creation goes
// through checkout, never directly through this surface.
type Service interface {
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context, status string, params pagination.Params) (*List, error)
	UpdateStatus(ctx context.Context, orderNumber string, next string) (*models.Order, error)
	Cancel(ctx context.Context, orderNumber string) (*models.Order, error)
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo repository
}

// NewService builds the order service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	order, err := s.repo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, translate(err, "find order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, status string, params pagination.Params) (*List, error) {
	var filter *enums.OrderStatus
	if status != "" {
		parsed, err := enums.ParseOrderStatus(status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		filter = &parsed
	}

	list, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// UpdateStatus moves the order along its lifecycle. Disallowed transitions
// fail without touching the row.
func (s *service) UpdateStatus(ctx context.Context, orderNumber string, next string) (*models.Order, error) {
	target, err := enums.ParseOrderStatus(next)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	return s.transition(ctx, orderNumber, target)
}

// Cancel is a customer-facing shortcut for the cancelled transition. Orders
// already shipped cannot be cancelled.
func (s *service) Cancel(ctx context.Context, orderNumber string) (*models.Order, error) {
	return s.transition(ctx, orderNumber, enums.OrderStatusCancelled)
}

func (s *service) transition(ctx context.Context, orderNumber string, target enums.OrderStatus) (*models.Order, error) {
	order, err := s.repo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, translate(err, "find order")
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, target))
	}

	if err := s.repo.UpdateStatus(ctx, orderNumber, target); err != nil {
		return nil, translate(err, "update order status")
	}
	order.Status = target
	return order, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order stats")
	}
	return stats, nil
}

func translate(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
