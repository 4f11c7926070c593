package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shopkartlabs/shopkart-backend/api/responses"
	"github.com/shopkartlabs/shopkart-backend/api/validators"
	inquirysvc "github.com/shopkartlabs/shopkart-backend/internal/inquiries"
	pkgerrors "github.com/shopkartlabs/shopkart-backend/pkg/errors"
	"github.com/shopkartlabs/shopkart-backend/pkg/logger"
)

// InquiryCreate accepts a contact-form submission.
func InquiryCreate(svc inquirysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload inquirysvc.CreateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminInquiryList pages through inquiries for triage.
func AdminInquiryList(svc inquirysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// AdminInquiryResolve marks an inquiry handled.
func AdminInquiryResolve(svc inquirysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inquiryID, err := uuid.Parse(chi.URLParam(r, "inquiryId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid inquiry id"))
			return
		}
		if err := svc.Resolve(r.Context(), inquiryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "resolved"})
	}
}
