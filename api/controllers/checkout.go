package controllers

import (
	"net/http"

	"github.com/shopkartlabs/shopkart-backend/api/middleware"
	"github.com/shopkartlabs/shopkart-backend/api/responses"
	"github.com/shopkartlabs/shopkart-backend/api/validators"
	checkoutsvc "github.com/shopkartlabs/shopkart-backend/internal/checkout"
	"github.com/shopkartlabs/shopkart-backend/pkg/logger"
)

// Checkout submits the session cart as an order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutsvc.SubmitInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), middleware.SessionIDFromContext(r.Context()), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderNumber(ctx, result.Order.OrderNumber)
			logg.Info(ctx, "order.submitted")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
