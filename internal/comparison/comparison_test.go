package comparison

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
)

func TestSelectionRejectsDuplicate(t *testing.T) {
	sel := NewSelection()
	id := uuid.New()

	if err := sel.Add(id); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := sel.Add(id)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("duplicate add: got %v, want conflict", err)
	}
	if sel.Len() != 1 {
		t.Fatalf("len: got %d, want 1", sel.Len())
	}
}

func TestSelectionRejectsFourthWithoutMutation(t *testing.T) {
	sel := NewSelection()
	for i := 0; i < MaxProducts; i++ {
		if err := sel.Add(uuid.New()); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	before := sel.IDs()

	err := sel.Add(uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("fourth add: got %v, want state conflict", err)
	}

	after := sel.IDs()
	if len(after) != len(before) {
		t.Fatalf("selection mutated by rejected add")
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("selection order changed by rejected add")
		}
	}
}

func TestSelectionRemoveThenAdd(t *testing.T) {
	sel := NewSelection()
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		if err := sel.Add(id); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	sel.Remove(ids[1])
	if sel.Len() != 2 {
		t.Fatalf("len after remove: got %d, want 2", sel.Len())
	}
	if err := sel.Add(uuid.New()); err != nil {
		t.Fatalf("add after remove: %v", err)
	}
}

func product(name string, specs ...models.ProductSpec) models.Product {
	return models.Product{
		ID:             uuid.New(),
		Name:           name,
		Slug:           name,
		PricePaise:     99_900,
		IsActive:       true,
		Specifications: specs,
	}
}

func spec(name, value string) models.ProductSpec {
	return models.ProductSpec{Name: name, Value: value}
}

func TestAssembleUnionKeysFirstSeenOrder(t *testing.T) {
	a := product("a", spec("Wattage", "750W"), spec("Jars", "3"))
	b := product("b", spec("Jars", "2"), spec("Warranty", "2 years"))

	table := Assemble([]models.Product{a, b})

	wantAttrs := []string{"Wattage", "Jars", "Warranty"}
	if len(table.Rows) != len(wantAttrs) {
		t.Fatalf("rows: got %d, want %d", len(table.Rows), len(wantAttrs))
	}
	for i, want := range wantAttrs {
		if table.Rows[i].Attribute != want {
			t.Fatalf("row %d: got %q, want %q", i, table.Rows[i].Attribute, want)
		}
	}
}

func TestAssembleFillsMissingCells(t *testing.T) {
	a := product("a", spec("Wattage", "750W"))
	b := product("b", spec("Warranty", "2 years"))

	table := Assemble([]models.Product{a, b})

	if table.Rows[0].Values[1] != MissingCell {
		t.Fatalf("missing cell: got %q, want %q", table.Rows[0].Values[1], MissingCell)
	}
	if table.Rows[1].Values[0] != MissingCell {
		t.Fatalf("missing cell: got %q, want %q", table.Rows[1].Values[0], MissingCell)
	}
	if table.Rows[0].Values[0] != "750W" {
		t.Fatalf("present cell: got %q, want 750W", table.Rows[0].Values[0])
	}
}

type stubLoader struct {
	products []models.Product
}

func (s *stubLoader) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
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

func TestCompareOrdersColumnsByRequest(t *testing.T) {
	a := product("first")
	b := product("second")
	svc, err := NewService(&stubLoader{products: []models.Product{a, b}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	table, err := svc.Compare(context.Background(), []uuid.UUID{b.ID, a.ID})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if table.Headers[0].ProductID != b.ID || table.Headers[1].ProductID != a.ID {
		t.Fatal("columns do not follow requested order")
	}
}

func TestCompareRejectsSingleProduct(t *testing.T) {
	svc, err := NewService(&stubLoader{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, compareErr := svc.Compare(context.Background(), []uuid.UUID{uuid.New()})
	typed := pkgerrors.As(compareErr)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("got %v, want validation error", compareErr)
	}
}

func TestCompareUnknownProductIsNotFound(t *testing.T) {
	a := product("known")
	svc, err := NewService(&stubLoader{products: []models.Product{a}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, compareErr := svc.Compare(context.Background(), []uuid.UUID{a.ID, uuid.New()})
	typed := pkgerrors.As(compareErr)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not found error", compareErr)
	}
}
