package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/logysma/logysma-backend/api/responses"
	"github.com/logysma/logysma-backend/api/validators"
	"github.com/logysma/logysma-backend/internal/colocations"
	"github.com/logysma/logysma-backend/pkg/logger"
	"github.com/logysma/logysma-backend/pkg/pagination"
)

type createColocationRequest struct {
	PosterID             uuid.UUID      `json:"poster_id" validate:"required"`
	Description          string         `json:"description" validate:"required"`
	Location             string         `json:"location" validate:"required"`
	ImageURLs            []string       `json:"image_urls"`
	Tags                 []string       `json:"tags"`
	ColocatorPreferences string         `json:"colocator_preferences" validate:"required"`
	Requirements         map[string]any `json:"requirements"`
	Boosted              bool           `json:"boosted"`
	PostTags             map[string]any `json:"post_tags"`
}

type updateColocationRequest struct {
	Description          *string        `json:"description"`
	Location             *string        `json:"location"`
	ImageURLs            []string       `json:"image_urls"`
	Tags                 []string       `json:"tags"`
	ColocatorPreferences *string        `json:"colocator_preferences"`
	Requirements         map[string]any `json:"requirements"`
	Boosted              *bool          `json:"boosted"`
	Active               *bool          `json:"active"`
	PostTags             map[string]any `json:"post_tags"`
}

type searchColocationsRequest struct {
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
	Active      *bool    `json:"active"`
	Preferences string   `json:"preferences"`
}

// ColocationCreate publishes a new roommate offer.
func ColocationCreate(svc colocations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createColocationRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		colocation, err := svc.Create(r.Context(), colocations.CreateParams{
			PosterID:             body.PosterID,
			Description:          body.Description,
			Location:             body.Location,
			ImageURLs:            body.ImageURLs,
			Tags:                 body.Tags,
			ColocatorPreferences: body.ColocatorPreferences,
			Requirements:         body.Requirements,
			Boosted:              body.Boosted,
			PostTags:             body.PostTags,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, colocation)
	}
}

// ColocationList returns a filtered page of offers, boosted first.
func ColocationList(svc colocations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := validators.ParseQueryInt(r, "page", 1, 1, 100000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		size, err := validators.ParseQueryInt(r, "limit", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		active, err := validators.ParseQueryBoolPtr(r, "active")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		boosted, err := validators.ParseQueryBoolPtr(r, "boosted")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter := colocations.ListFilter{
			Location: r.URL.Query().Get("location"),
			Active:   active,
			Boosted:  boosted,
		}
		page, err := svc.List(r.Context(), filter, pagination.Normalize(number, size))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ColocationDetail returns one offer.
func ColocationDetail(svc colocations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		colocationID, err := validators.PathUUID(r, "colocationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		colocation, err := svc.Get(r.Context(), colocationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, colocation)
	}
}

// ColocationUpdate applies partial edits, poster only.
func ColocationUpdate(svc colocations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		colocationID, err := validators.PathUUID(r, "colocationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateColocationRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		colocation, err := svc.Update(r.Context(), userID, colocationID, colocations.UpdateParams{
			Description:          body.Description,
			Location:             body.Location,
			ImageURLs:            body.ImageURLs,
			Tags:                 body.Tags,
			ColocatorPreferences: body.ColocatorPreferences,
			Requirements:         body.Requirements,
			Boosted:              body.Boosted,
			Active:               body.Active,
			PostTags:             body.PostTags,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, colocation)
	}
}

// ColocationDelete removes an offer, poster only.
func ColocationDelete(svc colocations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		colocationID, err := validators.PathUUID(r, "colocationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), userID, colocationID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ColocationSearch runs the richer ad-hoc search from a JSON body.
func ColocationSearch(svc colocations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body searchColocationsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.Search(r.Context(), colocations.SearchFilter{
			Location:    body.Location,
			Tags:        body.Tags,
			Active:      body.Active,
			Preferences: body.Preferences,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
