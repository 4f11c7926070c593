package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shopkartlabs/shopkart-backend/pkg/config"
)

// Business defaults. Prices are handled in integer paise; the threshold is
// exclusive (a subtotal of exactly ₹1000 still pays the flat fee).
const (
	FreeShippingThresholdPaise int64 = 100_000
	FlatShippingFeePaise       int64 = 10_000
	DefaultGSTRate                   = "0.18"
)

// LineItem is the minimal pricing input: one product's unit price and quantity.
type LineItem struct {
	UnitPricePaise int64
	Qty            int
}

// Breakdown is the derived pricing for a cart. It is recomputed from line
// items on every read and never mutated in place.
type Breakdown struct {
	SubtotalPaise int64  `json:"subtotal_paise"`
	TaxRate       string `json:"tax_rate"`
	TaxPaise      int64  `json:"tax_paise"`
	ShippingPaise int64  `json:"shipping_paise"`
	TotalPaise    int64  `json:"total_paise"`
}

// Display renders the breakdown in rupees with two decimals.
type Display struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

// Display formats every amount for presentation.
func (b Breakdown) Display() Display {
	return Display{
		Subtotal: FormatPaise(b.SubtotalPaise),
		Tax:      FormatPaise(b.TaxPaise),
		Shipping: FormatPaise(b.ShippingPaise),
		Total:    FormatPaise(b.TotalPaise),
	}
}

// FormatPaise renders an integer paise amount as rupees with two decimals.
func FormatPaise(paise int64) string {
	return decimal.New(paise, -2).StringFixed(2)
}

// Engine derives cart totals from the configured business rules. ComputeTotals
// is a pure function of its input; callers on both the display path and the
// checkout verification path rely on identical results for identical carts.
type Engine struct {
	taxRate                    decimal.Decimal
	freeShippingThresholdPaise int64
	flatShippingFeePaise       int64
}

// NewEngine builds an engine from configuration.
func NewEngine(cfg config.PricingConfig) (*Engine, error) {
	rate, err := decimal.NewFromString(cfg.GSTRate)
	if err != nil {
		return nil, fmt.Errorf("parsing GST rate %q: %w", cfg.GSTRate, err)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("GST rate cannot be negative")
	}
	return &Engine{
		taxRate:                    rate,
		freeShippingThresholdPaise: cfg.FreeShippingThresholdPaise,
		flatShippingFeePaise:       cfg.FlatShippingFeePaise,
	}, nil
}

// Default returns an engine carrying the standard storefront rules.
func Default() *Engine {
	engine, err := NewEngine(config.PricingConfig{
		GSTRate:                    DefaultGSTRate,
		FreeShippingThresholdPaise: FreeShippingThresholdPaise,
		FlatShippingFeePaise:       FlatShippingFeePaise,
	})
	if err != nil {
		panic(err)
	}
	return engine
}

// TaxRate exposes the configured rate as its canonical string form.
func (e *Engine) TaxRate() string {
	return e.taxRate.String()
}

// ComputeTotals derives subtotal, tax, shipping and total from the line items.
// Subtotal accumulates exact integer paise; only the tax multiplication can
// produce a fraction and it is rounded half up once, at the end.
func (e *Engine) ComputeTotals(items []LineItem) Breakdown {
	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPricePaise * int64(item.Qty)
	}

	tax := decimal.NewFromInt(subtotal).
		Mul(e.taxRate).
		Round(0).
		IntPart()

	var shipping int64
	if subtotal <= e.freeShippingThresholdPaise {
		shipping = e.flatShippingFeePaise
	}

	return Breakdown{
		SubtotalPaise: subtotal,
		TaxRate:       e.taxRate.String(),
		TaxPaise:      tax,
		ShippingPaise: shipping,
		TotalPaise:    subtotal + tax + shipping,
	}
}
