package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logysma/logysma-backend/api/responses"
	"github.com/logysma/logysma-backend/api/validators"
	"github.com/logysma/logysma-backend/internal/alerts"
	"github.com/logysma/logysma-backend/pkg/logger"
)

type subscribeAlertRequest struct {
	UserID          uuid.UUID        `json:"user_id" validate:"required"`
	MinPrice        *decimal.Decimal `json:"min_price"`
	MaxPrice        *decimal.Decimal `json:"max_price"`
	Bedrooms        *int             `json:"bedrooms"`
	Bathrooms       *int             `json:"bathrooms"`
	PropertyType    *string          `json:"property_type"`
	Location        *string          `json:"location"`
	TransactionType *string          `json:"transaction_type"`
}

// AlertSubscribe registers a saved search. Unset criteria stay unconstrained.
func AlertSubscribe(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body subscribeAlertRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		alert, err := svc.Subscribe(r.Context(), alerts.SubscribeParams{
			UserID:          body.UserID,
			MinPrice:        body.MinPrice,
			MaxPrice:        body.MaxPrice,
			Bedrooms:        body.Bedrooms,
			Bathrooms:       body.Bathrooms,
			PropertyType:    body.PropertyType,
			Location:        body.Location,
			TransactionType: body.TransactionType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, alert)
	}
}

// AlertList returns the user's saved searches.
func AlertList(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// AlertDeactivate pauses an alert without deleting its criteria.
func AlertDeactivate(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		alertID, err := validators.PathUUID(r, "alertId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Deactivate(r.Context(), userID, alertID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

// AlertDelete removes the alert permanently.
func AlertDelete(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		alertID, err := validators.PathUUID(r, "alertId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), userID, alertID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
