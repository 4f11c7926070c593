package comparison

import (
	"github.com/google/uuid"

	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
)

// Selection limits.
const (
	MinProducts = 2
	MaxProducts = 3
)

// Selection is the ordered set of products picked for comparison. Order is
// pick order and duplicates are rejected; a failed Add leaves the selection
// untouched.
type Selection struct {
	ids []uuid.UUID
}

// NewSelection builds an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Add appends a product to the selection. Duplicates conflict and a full
// selection refuses further picks.
func (s *Selection) Add(id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	for _, existing := range s.ids {
		if existing == id {
			return pkgerrors.New(pkgerrors.CodeConflict, "product already selected for comparison")
		}
	}
	if len(s.ids) >= MaxProducts {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "comparison is limited to 3 products")
	}
	s.ids = append(s.ids, id)
	return nil
}

// Remove drops a product from the selection if present.
func (s *Selection) Remove(id uuid.UUID) {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

// IDs returns a copy of the selected ids in pick order.
func (s *Selection) IDs() []uuid.UUID {
	return append([]uuid.UUID(nil), s.ids...)
}

// Len reports how many products are selected.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Comparable reports whether the selection holds enough products to compare.
func (s *Selection) Comparable() bool {
	return len(s.ids) >= MinProducts
}
