package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopkartlabs/shopkart-backend/api/middleware"
	cartsvc "github.com/shopkartlabs/shopkart-backend/internal/cart"
	"github.com/shopkartlabs/shopkart-backend/internal/pricing"
	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	"github.com/shopkartlabs/shopkart-backend/pkg/logger"
)

type stubProductLoader struct {
	product *models.Product
}

func (s *stubProductLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}

func testCartService(t *testing.T, product *models.Product) cartsvc.Service {
	t.Helper()
	svc, err := cartsvc.NewService(cartsvc.NewMemoryStore(), &stubProductLoader{product: product}, pricing.Default())
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}
	return svc
}

func TestCartAddItemReturnsPricedView(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	product := &models.Product{
		ID:         uuid.New(),
		SKU:        "SKU-KETTLE",
		Name:       "Electric Kettle",
		PricePaise: 50_000,
		IsActive:   true,
	}
	svc := testCartService(t, product)
	handler := middleware.Session(logg)(CartAddItem(svc, logg))

	body := `{"product_id":"` + product.ID.String() + `","qty":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Session-Id") == "" {
		t.Fatal("session id header must be minted")
	}

	var envelope struct {
		Data cartsvc.View `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Pricing.TotalPaise != 128_000 {
		t.Fatalf("total: got %d, want 128000", envelope.Data.Pricing.TotalPaise)
	}
	if envelope.Data.Display.Total != "1280.00" {
		t.Fatalf("display total: got %s", envelope.Data.Display.Total)
	}
}

func TestCartAddUnknownProductIs404(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	svc := testCartService(t, nil)
	handler := middleware.Session(logg)(CartAddItem(svc, logg))

	body := `{"product_id":"` + uuid.NewString() + `","qty":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCartFetchReusesSessionHeader(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	product := &models.Product{
		ID:         uuid.New(),
		SKU:        "SKU-KETTLE",
		Name:       "Electric Kettle",
		PricePaise: 50_000,
		IsActive:   true,
	}
	svc := testCartService(t, product)
	sessionID := uuid.NewString()

	addBody := `{"product_id":"` + product.ID.String() + `","qty":1}`
	addReq := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(addBody))
	addReq.Header.Set("X-Session-Id", sessionID)
	addRec := httptest.NewRecorder()
	middleware.Session(logg)(CartAddItem(svc, logg)).ServeHTTP(addRec, addReq)
	if addRec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d", addRec.Code)
	}

	fetchReq := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	fetchReq.Header.Set("X-Session-Id", sessionID)
	fetchRec := httptest.NewRecorder()
	middleware.Session(logg)(CartFetch(svc, logg)).ServeHTTP(fetchRec, fetchReq)

	var envelope struct {
		Data cartsvc.View `json:"data"`
	}
	if err := json.NewDecoder(fetchRec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Items) != 1 {
		t.Fatalf("items: got %d, want 1", len(envelope.Data.Items))
	}
	if envelope.Data.SessionID != sessionID {
		t.Fatalf("session: got %s, want %s", envelope.Data.SessionID, sessionID)
	}
}
