package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopkartlabs/shopkart-backend/internal/pricing"
	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
)

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// View is the cart plus its freshly derived pricing, returned by every
// service operation so the UI never holds a stale total.
type View struct {
	SessionID string            `json:"session_id"`
	Items     []Item            `json:"items"`
	Pricing   pricing.Breakdown `json:"pricing"`
	Display   pricing.Display   `json:"display"`
}

// Service owns the session cart lifecycle: mutation, persistence and pricing.
type Service interface {
	Get(ctx context.Context, sessionID string) (*View, error)
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID, qty int) (*View, error)
	UpdateQty(ctx context.Context, sessionID string, productID uuid.UUID, qty int) (*View, error)
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*View, error)
	Clear(ctx context.Context, sessionID string) error
	Snapshot(ctx context.Context, sessionID string) (*Cart, error)
}

type service struct {
	store    Store
	products productLoader
	engine   *pricing.Engine
	now      func() time.Time
}

// NewService builds a cart service backed by the provided store and catalog.
func NewService(store Store, products productLoader, engine *pricing.Engine) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if engine == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	return &service{
		store:    store,
		products: products,
		engine:   engine,
		now:      time.Now,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*View, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// Snapshot returns a detached copy of the cart for checkout to freeze.
func (s *service) Snapshot(ctx context.Context, sessionID string) (*Cart, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	copied := *cart
	copied.Items = append([]Item(nil), cart.Items...)
	return &copied, nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, productID uuid.UUID, qty int) (*View, error) {
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var imageURL *string
	if len(product.ImageURLs) > 0 {
		imageURL = &product.ImageURLs[0]
	}

	if i := cart.indexOf(productID); i >= 0 {
		cart.Items[i].Qty += qty
		// re-sync denormalized fields in case the listing changed
		cart.Items[i].Name = product.Name
		cart.Items[i].SKU = product.SKU
		cart.Items[i].UnitPricePaise = product.PricePaise
		cart.Items[i].ImageURL = imageURL
	} else {
		cart.Items = append(cart.Items, Item{
			ProductID:      product.ID,
			Name:           product.Name,
			SKU:            product.SKU,
			UnitPricePaise: product.PricePaise,
			Qty:            qty,
			ImageURL:       imageURL,
		})
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

func (s *service) UpdateQty(ctx context.Context, sessionID string, productID uuid.UUID, qty int) (*View, error) {
	if qty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.indexOf(productID)
	if i < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}

	if qty == 0 {
		cart.removeAt(i)
	} else {
		cart.Items[i].Qty = qty
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*View, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.indexOf(productID)
	if i < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}
	cart.removeAt(i)

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) load(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if cart == nil {
		cart = &Cart{SessionID: sessionID}
	}
	return cart, nil
}

func (s *service) save(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, cart); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (s *service) view(cart *Cart) *View {
	breakdown := s.engine.ComputeTotals(cart.LineItems())
	return &View{
		SessionID: cart.SessionID,
		Items:     cart.Items,
		Pricing:   breakdown,
		Display:   breakdown.Display(),
	}
}
