package orders

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	"github.com/shopkartlabs/shopkart-backend/pkg/enums"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
	"github.com/shopkartlabs/shopkart-backend/pkg/pagination"
)

type stubRepo struct {
	orders map[string]*models.Order
	stats  *Stats
}

func newStubRepo(orders ...*models.Order) *stubRepo {
	repo := &stubRepo{orders: map[string]*models.Order{}}
	for _, order := range orders {
		repo.orders[order.OrderNumber] = order
	}
	return repo
}

func (s *stubRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	s.orders[order.OrderNumber] = order
	return order, nil
}

func (s *stubRepo) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	order, ok := s.orders[orderNumber]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *stubRepo) List(ctx context.Context, status *enums.OrderStatus, params pagination.Params) (*List, error) {
	var out []models.Order
	for _, order := range s.orders {
		if status != nil && order.Status != *status {
			continue
		}
		out = append(out, *order)
	}
	return &List{Orders: out}, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, orderNumber string, status enums.OrderStatus) error {
	order, ok := s.orders[orderNumber]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	return nil
}

func (s *stubRepo) Stats(ctx context.Context) (*Stats, error) {
	return s.stats, nil
}

func TestUpdateStatusAllowsLifecycleMove(t *testing.T) {
	repo := newStubRepo(&models.Order{OrderNumber: "SK-20260829-ABCDEF", Status: enums.OrderStatusPending})
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), "SK-20260829-ABCDEF", "confirmed")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != enums.OrderStatusConfirmed {
		t.Fatalf("status: got %s, want confirmed", updated.Status)
	}
	if repo.orders["SK-20260829-ABCDEF"].Status != enums.OrderStatusConfirmed {
		t.Fatal("status not persisted")
	}
}

func TestUpdateStatusRejectsSkippedStep(t *testing.T) {
	repo := newStubRepo(&models.Order{OrderNumber: "SK-20260829-ABCDEF", Status: enums.OrderStatusPending})
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, updateErr := svc.UpdateStatus(context.Background(), "SK-20260829-ABCDEF", "delivered")
	typed := pkgerrors.As(updateErr)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("got %v, want state conflict", updateErr)
	}
	if repo.orders["SK-20260829-ABCDEF"].Status != enums.OrderStatusPending {
		t.Fatal("rejected transition must not persist")
	}
}

func TestCancelBeforeShipping(t *testing.T) {
	repo := newStubRepo(&models.Order{OrderNumber: "SK-20260829-AAAAAA", Status: enums.OrderStatusConfirmed})
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	cancelled, err := svc.Cancel(context.Background(), "SK-20260829-AAAAAA")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != enums.OrderStatusCancelled {
		t.Fatalf("status: got %s, want cancelled", cancelled.Status)
	}
}

func TestCancelAfterShippingFails(t *testing.T) {
	repo := newStubRepo(&models.Order{OrderNumber: "SK-20260829-AAAAAA", Status: enums.OrderStatusShipped})
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, cancelErr := svc.Cancel(context.Background(), "SK-20260829-AAAAAA")
	typed := pkgerrors.As(cancelErr)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("got %v, want state conflict", cancelErr)
	}
}

func TestGetByNumberUnknownIsNotFound(t *testing.T) {
	svc, err := NewService(newStubRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, getErr := svc.GetByNumber(context.Background(), "SK-20260829-ZZZZZZ")
	typed := pkgerrors.As(getErr)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not found", getErr)
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc, err := NewService(newStubRepo())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, listErr := svc.List(context.Background(), "teleported", pagination.Params{})
	typed := pkgerrors.As(listErr)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("got %v, want validation error", listErr)
	}
}
