package checkout

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shopkartlabs/shopkart-backend/internal/cart"
	"github.com/shopkartlabs/shopkart-backend/internal/pricing"
	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	"github.com/shopkartlabs/shopkart-backend/pkg/enums"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
	"github.com/shopkartlabs/shopkart-backend/pkg/logger"
	"github.com/shopkartlabs/shopkart-backend/pkg/types"
)

type stubCarts struct {
	cart     *cart.Cart
	cleared  bool
	clearErr error
}

func (s *stubCarts) Snapshot(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if s.cart == nil {
		return &cart.Cart{SessionID: sessionID}, nil
	}
	return s.cart, nil
}

func (s *stubCarts) Clear(ctx context.Context, sessionID string) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.cleared = true
	return nil
}

type stubProducts struct {
	products []models.Product
}

func (s *stubProducts) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, product := range s.products {
		for _, id := range ids {
			if product.ID == id {
				out = append(out, product)
			}
		}
	}
	return out, nil
}

type stubOrders struct {
	created *models.Order
	err     error
}

func (s *stubOrders) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = order
	return order, nil
}

func testAddress() types.Address {
	return types.Address{
		Street:     "14 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
		Country:    "IN",
	}
}

func validInput() SubmitInput {
	return SubmitInput{
		CustomerName:   "Asha Rao",
		CustomerEmail:  "asha@example.com",
		BillingAddress: testAddress(),
		ShipToBilling:  true,
		PaymentMethod:  "cod",
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newCheckout(t *testing.T, carts *stubCarts, products *stubProducts, orders *stubOrders) Service {
	t.Helper()
	svc, err := NewService(carts, products, orders, pricing.Default(), testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func catalogProduct(pricePaise int64) models.Product {
	return models.Product{
		ID:         uuid.New(),
		SKU:        "SKU-1",
		Name:       "Mixer Grinder",
		PricePaise: pricePaise,
		IsActive:   true,
	}
}

func TestSubmitCreatesSnapshotOrderAndClearsCart(t *testing.T) {
	product := catalogProduct(50_000)
	carts := &stubCarts{cart: &cart.Cart{
		SessionID: "sess-1",
		Items: []cart.Item{{
			ProductID:      product.ID,
			Name:           product.Name,
			SKU:            product.SKU,
			UnitPricePaise: product.PricePaise,
			Qty:            2,
		}},
	}}
	orders := &stubOrders{}
	svc := newCheckout(t, carts, &stubProducts{products: []models.Product{product}}, orders)

	result, err := svc.Submit(context.Background(), "sess-1", validInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	order := result.Order
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("status: got %s, want pending", order.Status)
	}
	if order.SubtotalPaise != 100_000 || order.TaxPaise != 18_000 || order.ShippingPaise != 10_000 {
		t.Fatalf("totals: got %d/%d/%d", order.SubtotalPaise, order.TaxPaise, order.ShippingPaise)
	}
	if order.TotalPaise != 128_000 {
		t.Fatalf("total: got %d, want 128000", order.TotalPaise)
	}
	if result.Display.Total != "1280.00" {
		t.Fatalf("display total: got %s, want 1280.00", result.Display.Total)
	}
	if len(order.Items) != 1 || order.Items[0].TotalPaise != 100_000 {
		t.Fatalf("items: %+v", order.Items)
	}
	if order.ShippingAddress != order.BillingAddress {
		t.Fatal("ship-to-billing must copy the billing address")
	}
	if !carts.cleared {
		t.Fatal("cart must be cleared after successful checkout")
	}
	if orders.created == nil {
		t.Fatal("order was not persisted")
	}
}

func TestSubmitRejectsStalePriceWithoutClearingCart(t *testing.T) {
	product := catalogProduct(60_000)
	carts := &stubCarts{cart: &cart.Cart{
		SessionID: "sess-1",
		Items: []cart.Item{{
			ProductID:      product.ID,
			UnitPricePaise: 50_000, // catalog moved to 60_000
			Qty:            1,
		}},
	}}
	orders := &stubOrders{}
	svc := newCheckout(t, carts, &stubProducts{products: []models.Product{product}}, orders)

	_, err := svc.Submit(context.Background(), "sess-1", validInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("got %v, want state conflict", err)
	}
	if carts.cleared {
		t.Fatal("cart must survive a failed checkout")
	}
	if orders.created != nil {
		t.Fatal("no order may be created on price mismatch")
	}
}

func TestSubmitEmptyCartIsValidationError(t *testing.T) {
	svc := newCheckout(t, &stubCarts{}, &stubProducts{}, &stubOrders{})

	_, err := svc.Submit(context.Background(), "sess-1", validInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestSubmitSucceedsWhenCartClearFails(t *testing.T) {
	product := catalogProduct(50_000)
	carts := &stubCarts{
		cart: &cart.Cart{
			SessionID: "sess-1",
			Items: []cart.Item{{
				ProductID:      product.ID,
				UnitPricePaise: product.PricePaise,
				Qty:            1,
			}},
		},
		clearErr: fmt.Errorf("redis down"),
	}
	svc := newCheckout(t, carts, &stubProducts{products: []models.Product{product}}, &stubOrders{})

	result, err := svc.Submit(context.Background(), "sess-1", validInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Order == nil {
		t.Fatal("order missing from result")
	}
}

func TestSubmitValidatesInput(t *testing.T) {
	svc := newCheckout(t, &stubCarts{}, &stubProducts{}, &stubOrders{})

	cases := []struct {
		name   string
		mutate func(*SubmitInput)
	}{
		{"missing name", func(in *SubmitInput) { in.CustomerName = " " }},
		{"bad email", func(in *SubmitInput) { in.CustomerEmail = "not-an-email" }},
		{"bad payment method", func(in *SubmitInput) { in.PaymentMethod = "crypto" }},
		{"incomplete billing", func(in *SubmitInput) { in.BillingAddress.City = "" }},
		{"incomplete shipping", func(in *SubmitInput) {
			in.ShipToBilling = false
			in.ShippingAddress = types.Address{Street: "only street"}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			_, err := svc.Submit(context.Background(), "sess-1", input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("got %v, want validation error", err)
			}
		})
	}
}

func TestSubmitRejectsStaleExpectedTotal(t *testing.T) {
	product := catalogProduct(50_000)
	carts := &stubCarts{cart: &cart.Cart{
		SessionID: "sess-1",
		Items: []cart.Item{{
			ProductID:      product.ID,
			UnitPricePaise: product.PricePaise,
			Qty:            2,
		}},
	}}
	svc := newCheckout(t, carts, &stubProducts{products: []models.Product{product}}, &stubOrders{})

	stale := int64(120_000) // real total is 128_000
	input := validInput()
	input.ExpectedTotalPaise = &stale

	_, err := svc.Submit(context.Background(), "sess-1", input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("got %v, want state conflict", err)
	}
	if carts.cleared {
		t.Fatal("cart must survive a rejected total")
	}
}

func TestNewOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	pattern := regexp.MustCompile(`^SK-20260829-[A-Z2-9]{6}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		number, err := NewOrderNumber(now)
		if err != nil {
			t.Fatalf("NewOrderNumber: %v", err)
		}
		if !pattern.MatchString(number) {
			t.Fatalf("order number %q does not match format", number)
		}
		if seen[number] {
			t.Fatalf("duplicate order number %q in 100 draws", number)
		}
		seen[number] = true
	}
}
