package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logysma/logysma-backend/api/responses"
	"github.com/logysma/logysma-backend/api/validators"
	"github.com/logysma/logysma-backend/internal/properties"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/logger"
)

type createPropertyRequest struct {
	Title           string           `json:"title" validate:"required"`
	Description     *string          `json:"description"`
	Address         string           `json:"address" validate:"required"`
	Street          string           `json:"street" validate:"required"`
	District        *string          `json:"district"`
	Price           decimal.Decimal  `json:"price" validate:"required"`
	PropertyType    string           `json:"property_type" validate:"required"`
	TransactionType string           `json:"transaction_type" validate:"required"`
	Bedrooms        int              `json:"bedrooms" validate:"min=0"`
	Bathrooms       int              `json:"bathrooms" validate:"min=0"`
	Area            *decimal.Decimal `json:"area"`
	SellerID        uuid.UUID        `json:"seller_id" validate:"required"`
	AgentID         *uuid.UUID       `json:"agent_id"`
	Latitude        *decimal.Decimal `json:"latitude"`
	Longitude       *decimal.Decimal `json:"longitude"`
	Tags            []string         `json:"tags"`
	Amenities       []string         `json:"amenities"`
	Photos          []string         `json:"photos"`
}

// PropertyCreate stores a listing and fans out alert notifications.
func PropertyCreate(svc properties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createPropertyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		property, err := svc.Create(r.Context(), properties.CreateParams{
			Title:           body.Title,
			Description:     body.Description,
			Address:         body.Address,
			Street:          body.Street,
			District:        body.District,
			Price:           body.Price,
			PropertyType:    body.PropertyType,
			TransactionType: body.TransactionType,
			Bedrooms:        body.Bedrooms,
			Bathrooms:       body.Bathrooms,
			Area:            body.Area,
			SellerID:        body.SellerID,
			AgentID:         body.AgentID,
			Latitude:        body.Latitude,
			Longitude:       body.Longitude,
			Tags:            body.Tags,
			Amenities:       body.Amenities,
			PhotoURLs:       body.Photos,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, property)
	}
}

// PropertyDetail returns one listing with photos and reviews.
func PropertyDetail(svc properties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "propertyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		property, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, property)
	}
}

// PropertySearch filters listings by price, rooms, type and location.
func PropertySearch(svc properties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := properties.SearchFilter{
			Location:        strings.TrimSpace(r.URL.Query().Get("location")),
			PropertyType:    validators.ParseQueryStringPtr(r, "property_type"),
			TransactionType: validators.ParseQueryStringPtr(r, "transaction_type"),
		}

		var err error
		if filter.PriceMin, err = validators.ParseQueryDecimalPtr(r, "min_price"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.PriceMax, err = validators.ParseQueryDecimalPtr(r, "max_price"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.Bedrooms, err = validators.ParseQueryIntPtr(r, "bedrooms"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.Bathrooms, err = validators.ParseQueryIntPtr(r, "bathrooms"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		results, err := svc.Search(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, results)
	}
}

// PropertyDelete removes a listing owned by the requesting user.
func PropertyDelete(svc properties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID, err := validators.PathUUID(r, "propertyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), userID, propertyID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type addPhotosRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Photos []string  `json:"photos" validate:"required,min=1"`
}

// PropertyAddPhotos appends photos to an owned listing.
func PropertyAddPhotos(svc properties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID, err := validators.PathUUID(r, "propertyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body addPhotosRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.AddPhotos(r.Context(), body.UserID, propertyID, body.Photos); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "added"})
	}
}

// PopularLocations returns the most listed addresses.
func PopularLocations(svc properties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "properties service unavailable"))
			return
		}
		locations, err := svc.PopularLocations(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, locations)
	}
}
