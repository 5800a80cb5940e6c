package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logysma/logysma-backend/api/responses"
	"github.com/logysma/logysma-backend/api/validators"
	"github.com/logysma/logysma-backend/internal/products"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/logger"
)

type createProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description"`
	SellerID    uuid.UUID       `json:"seller_id" validate:"required"`
	ShopID      *uuid.UUID      `json:"shop_id"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	ImageURL    *string         `json:"image_url"`
	Stock       int             `json:"stock" validate:"min=0"`
	Category    *string         `json:"category"`
	Tags        []string        `json:"tags"`
	Photos      []string        `json:"photos"`
}

// ProductCreate stores a marketplace product.
func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Create(r.Context(), products.CreateParams{
			Name:        body.Name,
			Description: body.Description,
			SellerID:    body.SellerID,
			ShopID:      body.ShopID,
			Price:       body.Price,
			ImageURL:    body.ImageURL,
			Stock:       body.Stock,
			Category:    body.Category,
			Tags:        body.Tags,
			PhotoURLs:   body.Photos,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductDetail returns one product with photos and reviews.
func ProductDetail(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductSearch filters products; the sort column is whitelisted.
func ProductSearch(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sortBy, err := products.ParseSortField(r.URL.Query().Get("sort"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort field"))
			return
		}
		descending, err := validators.ParseQueryBool(r, "desc", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		activeOnly, err := validators.ParseQueryBool(r, "activeOnly", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := products.SearchFilter{
			Category:   validators.ParseQueryStringPtr(r, "category"),
			Query:      strings.TrimSpace(r.URL.Query().Get("q")),
			ActiveOnly: activeOnly,
			SortBy:     sortBy,
			Descending: descending,
		}
		if filter.PriceMin, err = validators.ParseQueryDecimalPtr(r, "min_price"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.PriceMax, err = validators.ParseQueryDecimalPtr(r, "max_price"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("seller_id")); raw != "" {
			sellerID, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid seller id"))
				return
			}
			filter.SellerID = &sellerID
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("shop_id")); raw != "" {
			shopID, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid shop id"))
				return
			}
			filter.ShopID = &shopID
		}

		results, err := svc.Search(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, results)
	}
}

type updateStockRequest struct {
	SellerID uuid.UUID `json:"seller_id" validate:"required"`
	Stock    int       `json:"stock" validate:"min=0"`
}

// ProductUpdateStock replaces the stock count for an owned product.
func ProductUpdateStock(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.PathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateStockRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateStock(r.Context(), body.SellerID, productID, body.Stock); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// ProductDelete removes an owned product.
func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.PathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sellerID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), sellerID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type productReviewRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Rating int       `json:"rating" validate:"required,min=1,max=5"`
	Text   *string   `json:"text"`
}

// ProductReviewAdd records buyer feedback.
func ProductReviewAdd(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.PathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body productReviewRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		review, err := svc.AddReview(r.Context(), products.ReviewParams{
			ProductID: productID,
			UserID:    body.UserID,
			Rating:    body.Rating,
			Text:      body.Text,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// ProductReviewList returns all reviews for a product.
func ProductReviewList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.PathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListReviews(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
