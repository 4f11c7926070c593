package checkout

import (
	"github.com/google/uuid"

	"github.com/shopkartlabs/shopkart-backend/internal/cart"
	"github.com/shopkartlabs/shopkart-backend/internal/pricing"
	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
)

// PriceMismatch describes one cart line whose displayed price no longer
// matches the catalog.
type PriceMismatch struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	CartPaise      int64     `json:"cart_price_paise"`
	CatalogPaise   int64     `json:"catalog_price_paise"`
	CartDisplay    string    `json:"cart_price"`
	CatalogDisplay string    `json:"catalog_price"`
}

// verifyLines checks every cart line against the live catalog with zero
// tolerance. It returns the canonical pricing inputs on success, so the
// order totals are always derived from catalog prices, never from whatever
// the client last saw.
func verifyLines(items []cart.Item, catalog map[uuid.UUID]models.Product) ([]pricing.LineItem, error) {
	var mismatches []PriceMismatch
	lines := make([]pricing.LineItem, 0, len(items))

	for _, item := range items {
		product, ok := catalog[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product no longer available").
				WithDetails(map[string]string{"product_id": item.ProductID.String()})
		}
		if !product.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product was removed from sale").
				WithDetails(map[string]string{"product_id": item.ProductID.String()})
		}
		if product.PricePaise != item.UnitPricePaise {
			mismatches = append(mismatches, PriceMismatch{
				ProductID:      item.ProductID,
				Name:           product.Name,
				CartPaise:      item.UnitPricePaise,
				CatalogPaise:   product.PricePaise,
				CartDisplay:    pricing.FormatPaise(item.UnitPricePaise),
				CatalogDisplay: pricing.FormatPaise(product.PricePaise),
			})
			continue
		}
		lines = append(lines, pricing.LineItem{
			UnitPricePaise: product.PricePaise,
			Qty:            item.Qty,
		})
	}

	if len(mismatches) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart prices are out of date").
			WithDetails(map[string]any{"mismatches": mismatches})
	}
	return lines, nil
}
