package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/logysma/logysma-backend/api/responses"
	"github.com/logysma/logysma-backend/api/validators"
	"github.com/logysma/logysma-backend/internal/reviews"
	"github.com/logysma/logysma-backend/pkg/logger"
)

type addReviewRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Rating int       `json:"rating" validate:"required,min=1,max=5"`
	Text   *string   `json:"text"`
}

// ReviewAdd records a rating on a listing and notifies its poster.
func ReviewAdd(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID, err := validators.PathUUID(r, "propertyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body addReviewRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		review, err := svc.Add(r.Context(), reviews.AddParams{
			PropertyID: propertyID,
			UserID:     body.UserID,
			Rating:     body.Rating,
			Text:       body.Text,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// ReviewSummary returns the review list plus the average rating.
func ReviewSummary(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID, err := validators.PathUUID(r, "propertyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := svc.Summarize(r.Context(), propertyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
