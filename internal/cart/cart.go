package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopkartlabs/shopkart-backend/internal/pricing"
)

// Item is one product/quantity line in a session cart. Name, SKU and price
// are denormalized from the catalog for display; the catalog stays the
// authority at checkout time.
type Item struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	SKU            string    `json:"sku"`
	UnitPricePaise int64     `json:"unit_price_paise"`
	Qty            int       `json:"qty"`
	ImageURL       *string   `json:"image_url,omitempty"`
}

// Cart is the mutable per-session item collection. Item order is insertion
// order for display; totals are order-independent.
type Cart struct {
	SessionID string    `json:"session_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LineItems projects the cart into pricing inputs.
func (c *Cart) LineItems() []pricing.LineItem {
	items := make([]pricing.LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, pricing.LineItem{
			UnitPricePaise: item.UnitPricePaise,
			Qty:            item.Qty,
		})
	}
	return items
}

// indexOf returns the position of the product's line, or -1.
func (c *Cart) indexOf(productID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// removeAt drops the line at index i preserving the order of the rest.
func (c *Cart) removeAt(i int) {
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}
