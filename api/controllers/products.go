package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/shopkartlabs/shopkart-backend/api/responses"
	"github.com/shopkartlabs/shopkart-backend/api/validators"
	"github.com/shopkartlabs/shopkart-backend/internal/products"
	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
	"github.com/shopkartlabs/shopkart-backend/pkg/logger"
	"github.com/shopkartlabs/shopkart-backend/pkg/pagination"
)

// ProductList serves the public catalog with optional category, search and
// featured filters. Inactive products never appear here.
func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := products.Filter{
			Category:   strings.TrimSpace(r.URL.Query().Get("category")),
			Search:     r.URL.Query().Get("q"),
			ActiveOnly: true,
		}
		if raw := r.URL.Query().Get("featured"); raw == "true" {
			featured := true
			filter.Featured = &featured
		}

		list, err := svc.Browse(r.Context(), filter, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"products":    list.Products,
			"next_cursor": list.NextCursor,
		})
	}
}

// ProductDetail serves one product by slug.
func ProductDetail(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type productSpecPayload struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type productPayload struct {
	SKU                 string               `json:"sku" validate:"required"`
	Name                string               `json:"name" validate:"required"`
	Slug                string               `json:"slug" validate:"required"`
	Description         string               `json:"description"`
	Category            string               `json:"category" validate:"required"`
	PricePaise          int64                `json:"price_paise" validate:"min=0"`
	CompareAtPricePaise *int64               `json:"compare_at_price_paise,omitempty"`
	ImageURLs           []string             `json:"image_urls,omitempty"`
	IsActive            bool                 `json:"is_active"`
	IsFeatured          bool                 `json:"is_featured"`
	Specifications      []productSpecPayload `json:"specifications,omitempty"`
}

func (p productPayload) toModel() *models.Product {
	specs := make([]models.ProductSpec, 0, len(p.Specifications))
	for i, spec := range p.Specifications {
		specs = append(specs, models.ProductSpec{
			Name:     spec.Name,
			Value:    spec.Value,
			Position: i,
		})
	}
	return &models.Product{
		SKU:                 p.SKU,
		Name:                p.Name,
		Slug:                p.Slug,
		Description:         &p.Description,
		Category:            p.Category,
		PricePaise:          p.PricePaise,
		CompareAtPricePaise: p.CompareAtPricePaise,
		ImageURLs:           pq.StringArray(p.ImageURLs),
		IsActive:            p.IsActive,
		IsFeatured:          p.IsFeatured,
		Specifications:      specs,
	}
}

// AdminProductCreate adds a product to the catalog.
func AdminProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminProductUpdate replaces a product and its specifications.
func AdminProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id"))
			return
		}

		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product := payload.toModel()
		product.ID = productID

		updated, err := svc.Update(r.Context(), product)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// AdminProductDelete removes a product from the catalog.
func AdminProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id"))
			return
		}
		if err := svc.Delete(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
