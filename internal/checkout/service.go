package checkout

import (
	"context"
	"fmt"
	"strings"
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

type cartService interface {
	Snapshot(ctx context.Context, sessionID string) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type productLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type orderCreator interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
}

// SubmitInput is the full checkout form.
type SubmitInput struct {
	CustomerName    string        `json:"customer_name" validate:"required"`
	CustomerEmail   string        `json:"customer_email" validate:"required,email"`
	CustomerPhone   *string       `json:"customer_phone,omitempty"`
	BillingAddress  types.Address `json:"billing_address" validate:"required"`
	ShippingAddress types.Address `json:"shipping_address"`
	ShipToBilling   bool          `json:"ship_to_billing"`
	PaymentMethod   string        `json:"payment_method" validate:"required"`

	// ExpectedTotalPaise is the total the customer saw. When set, a server
	// recomputation that disagrees rejects the submission.
	ExpectedTotalPaise *int64 `json:"expected_total_paise,omitempty"`
}

// Result is what the confirmation page needs.
type Result struct {
	Order   *models.Order   `json:"order"`
	Display pricing.Display `json:"display"`
}

// Service turns a session cart into an immutable order. The cart is cleared
// only after the order is safely persisted; on any failure the cart survives
// so the customer can retry.
type Service interface {
	Submit(ctx context.Context, sessionID string, input SubmitInput) (*Result, error)
}

type service struct {
	carts    cartService
	products productLoader
	orders   orderCreator
	engine   *pricing.Engine
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the checkout service.
func NewService(carts cartService, products productLoader, orders orderCreator, engine *pricing.Engine, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order creator required")
	}
	if engine == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		carts:    carts,
		products: products,
		orders:   orders,
		engine:   engine,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) Submit(ctx context.Context, sessionID string, input SubmitInput) (*Result, error) {
	method, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.carts.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	ids := make([]uuid.UUID, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		ids = append(ids, item.ProductID)
	}
	loaded, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products for checkout")
	}
	catalog := make(map[uuid.UUID]models.Product, len(loaded))
	for _, product := range loaded {
		catalog[product.ID] = product
	}

	lines, err := verifyLines(snapshot.Items, catalog)
	if err != nil {
		return nil, err
	}
	breakdown := s.engine.ComputeTotals(lines)
	if input.ExpectedTotalPaise != nil && *input.ExpectedTotalPaise != breakdown.TotalPaise {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order total is out of date").
			WithDetails(map[string]string{
				"expected_total": pricing.FormatPaise(*input.ExpectedTotalPaise),
				"current_total":  pricing.FormatPaise(breakdown.TotalPaise),
			})
	}

	orderNumber, err := NewOrderNumber(s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint order number")
	}

	shipping := input.ShippingAddress
	if input.ShipToBilling {
		shipping = input.BillingAddress
	}

	order := &models.Order{
		OrderNumber:     orderNumber,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   strings.TrimSpace(input.CustomerEmail),
		CustomerPhone:   input.CustomerPhone,
		BillingAddress:  input.BillingAddress,
		ShippingAddress: shipping,
		PaymentMethod:   method,
		Status:          enums.OrderStatusPending,
		SubtotalPaise:   breakdown.SubtotalPaise,
		TaxRate:         breakdown.TaxRate,
		TaxPaise:        breakdown.TaxPaise,
		ShippingPaise:   breakdown.ShippingPaise,
		TotalPaise:      breakdown.TotalPaise,
		Items:           snapshotItems(snapshot.Items, catalog),
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	// The order exists now; a stale cart is an annoyance, not a failure.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		ctx = s.logg.WithOrderNumber(ctx, created.OrderNumber)
		s.logg.Error(ctx, "failed to clear cart after checkout", err)
	}

	return &Result{
		Order:   created,
		Display: breakdown.Display(),
	}, nil
}

func (s *service) validate(input SubmitInput) (enums.PaymentMethod, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	email := strings.TrimSpace(input.CustomerEmail)
	if email == "" || !strings.Contains(email, "@") {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "valid customer email is required")
	}

	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	if field := input.BillingAddress.MissingField(); field != "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "billing address is incomplete").
			WithDetails(map[string]string{"missing_field": field})
	}
	if !input.ShipToBilling {
		if field := input.ShippingAddress.MissingField(); field != "" {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "shipping address is incomplete").
				WithDetails(map[string]string{"missing_field": field})
		}
	}
	return method, nil
}

// snapshotItems copies cart lines into order items using catalog values.
// verifyLines already proved cart and catalog agree.
func snapshotItems(items []cart.Item, catalog map[uuid.UUID]models.Product) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		product := catalog[item.ProductID]
		productID := item.ProductID

		var imageURL *string
		if len(product.ImageURLs) > 0 {
			imageURL = &product.ImageURLs[0]
		}
		out = append(out, models.OrderItem{
			ProductID:      &productID,
			Name:           product.Name,
			SKU:            product.SKU,
			UnitPricePaise: product.PricePaise,
			Qty:            item.Qty,
			TotalPaise:     product.PricePaise * int64(item.Qty),
			ImageURL:       imageURL,
		})
	}
	return out
}
