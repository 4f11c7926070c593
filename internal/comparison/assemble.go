package comparison

import (
	"github.com/google/uuid"

	"github.com/shopkartlabs/shopkart-backend/internal/pricing"
	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
)

// MissingCell fills attribute cells for products that do not declare the
// attribute. The UI renders it verbatim.
const MissingCell = "-"

// Header is the per-product column heading of a comparison table.
type Header struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Price     string    `json:"price"`
	ImageURL  *string   `json:"image_url,omitempty"`
}

// Row is one attribute across all compared products. Values align with the
// table's header order.
type Row struct {
	Attribute string   `json:"attribute"`
	Values    []string `json:"values"`
}

// Table is the assembled side-by-side comparison.
type Table struct {
	Headers []Header `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Assemble builds the comparison table. The attribute set is the union of
// every product's spec names, ordered by first appearance across products in
// the given order; products missing an attribute get the sentinel cell.
func Assemble(products []models.Product) *Table {
	table := &Table{
		Headers: make([]Header, 0, len(products)),
	}

	var attrOrder []string
	seen := map[string]bool{}

	for _, product := range products {
		var imageURL *string
		if len(product.ImageURLs) > 0 {
			imageURL = &product.ImageURLs[0]
		}
		table.Headers = append(table.Headers, Header{
			ProductID: product.ID,
			Name:      product.Name,
			Slug:      product.Slug,
			Price:     pricing.FormatPaise(product.PricePaise),
			ImageURL:  imageURL,
		})

		for _, spec := range product.Specifications {
			if !seen[spec.Name] {
				seen[spec.Name] = true
				attrOrder = append(attrOrder, spec.Name)
			}
		}
	}

	table.Rows = make([]Row, 0, len(attrOrder))
	for _, attr := range attrOrder {
		row := Row{
			Attribute: attr,
			Values:    make([]string, 0, len(products)),
		}
		for _, product := range products {
			row.Values = append(row.Values, specValue(product, attr))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func specValue(product models.Product, name string) string {
	for _, spec := range product.Specifications {
		if spec.Name == name {
			return spec.Value
		}
	}
	return MissingCell
}
