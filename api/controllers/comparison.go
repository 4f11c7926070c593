package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shopkartlabs/shopkart-backend/api/responses"
	comparesvc "github.com/shopkartlabs/shopkart-backend/internal/comparison"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
	"github.com/shopkartlabs/shopkart-backend/pkg/logger"
)

// Compare builds a side-by-side table for the ids query parameter, a
// comma-separated list of product ids in the order the customer picked them.
func Compare(svc comparesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.URL.Query().Get("ids"))
		if raw == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "ids query parameter is required"))
			return
		}

		var ids []uuid.UUID
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "invalid product id").
						WithDetails(map[string]string{"value": part}))
				return
			}
			ids = append(ids, id)
		}

		table, err := svc.Compare(r.Context(), ids)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, table)
	}
}
