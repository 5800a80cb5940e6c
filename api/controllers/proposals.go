package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logysma/logysma-backend/api/responses"
	"github.com/logysma/logysma-backend/api/validators"
	"github.com/logysma/logysma-backend/internal/proposals"
	"github.com/logysma/logysma-backend/pkg/logger"
)

type createRequestRequest struct {
	UserID         uuid.UUID        `json:"user_id" validate:"required"`
	PropertyType   string           `json:"property_type" validate:"required"`
	Bedrooms       *int             `json:"bedrooms"`
	Bathrooms      *int             `json:"bathrooms"`
	SurfaceArea    *int             `json:"surface_area"`
	Location       string           `json:"location" validate:"required"`
	BudgetAmount   *decimal.Decimal `json:"budget_amount"`
	BudgetCurrency string           `json:"budget_currency"`
	ContractType   string           `json:"contract_type"`
	Amenities      []string         `json:"amenities"`
	NearbyServices []string         `json:"nearby_services"`
	RequestReason  *string          `json:"request_reason"`
}

// RequestCreate publishes a buyer's property wish.
func RequestCreate(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createRequestRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		request, err := svc.CreateRequest(r.Context(), proposals.RequestParams{
			UserID:         body.UserID,
			PropertyType:   body.PropertyType,
			Bedrooms:       body.Bedrooms,
			Bathrooms:      body.Bathrooms,
			SurfaceArea:    body.SurfaceArea,
			Location:       body.Location,
			BudgetAmount:   body.BudgetAmount,
			BudgetCurrency: body.BudgetCurrency,
			ContractType:   body.ContractType,
			Amenities:      body.Amenities,
			NearbyServices: body.NearbyServices,
			RequestReason:  body.RequestReason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// RequestList returns all published property requests.
func RequestList(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListRequests(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

type createProposalRequest struct {
	UserID      uuid.UUID       `json:"user_id" validate:"required"`
	RequestID   *uuid.UUID      `json:"request_id"`
	PropertyID  *uuid.UUID      `json:"property_id"`
	PriceOffer  decimal.Decimal `json:"price_offer" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Description *string         `json:"description"`
	Location    string          `json:"location" validate:"required"`
	Bedrooms    int             `json:"bedrooms" validate:"min=0"`
	Bathrooms   int             `json:"bathrooms" validate:"min=0"`
	Images      []string        `json:"images"`
}

// ProposalCreate stores a seller's offer and notifies the request owner.
func ProposalCreate(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createProposalRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		proposal, err := svc.CreateProposal(r.Context(), proposals.ProposalParams{
			UserID:      body.UserID,
			RequestID:   body.RequestID,
			PropertyID:  body.PropertyID,
			PriceOffer:  body.PriceOffer,
			Title:       body.Title,
			Description: body.Description,
			Location:    body.Location,
			Bedrooms:    body.Bedrooms,
			Bathrooms:   body.Bathrooms,
			Images:      body.Images,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, proposal)
	}
}

// ProposalListByRequest returns the offers answering one request.
func ProposalListByRequest(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, err := validators.PathUUID(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListProposalsByRequest(r.Context(), requestID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

type decideProposalRequest struct {
	OwnerID uuid.UUID `json:"owner_id" validate:"required"`
	Accept  bool      `json:"accept"`
}

// ProposalDecide accepts or rejects a pending proposal.
func ProposalDecide(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		proposalID, err := validators.PathUUID(r, "proposalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body decideProposalRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		proposal, err := svc.Decide(r.Context(), body.OwnerID, proposalID, body.Accept)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, proposal)
	}
}

// TransactionDetail returns one recorded sale.
func TransactionDetail(svc proposals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactionID, err := validators.PathUUID(r, "transactionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		transaction, err := svc.GetTransaction(r.Context(), transactionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transaction)
	}
}
