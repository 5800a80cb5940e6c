package proposals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/internal/notifications"
	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/logger"
)

// RequestParams describes a buyer's published property wish.
type RequestParams struct {
	UserID         uuid.UUID
	PropertyType   string
	Bedrooms       *int
	Bathrooms      *int
	SurfaceArea    *int
	Location       string
	BudgetAmount   *decimal.Decimal
	BudgetCurrency string
	ContractType   string
	Amenities      []string
	NearbyServices []string
	RequestReason  *string
}

// ProposalParams describes a seller's offer on a request.
type ProposalParams struct {
	UserID      uuid.UUID
	RequestID   *uuid.UUID
	PropertyID  *uuid.UUID
	PriceOffer  decimal.Decimal
	Title       string
	Description *string
	Location    string
	Bedrooms    int
	Bathrooms   int
	Images      []string
}

// Service manages property requests and the proposals answering them.
type Service interface {
	CreateRequest(ctx context.Context, params RequestParams) (*models.PropertyRequest, error)
	ListRequests(ctx context.Context) ([]models.PropertyRequest, error)
	CreateProposal(ctx context.Context, params ProposalParams) (*models.Proposal, error)
	ListProposalsByRequest(ctx context.Context, requestID uuid.UUID) ([]models.Proposal, error)
	Decide(ctx context.Context, ownerID, proposalID uuid.UUID, accept bool) (*models.Proposal, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
}

// ServiceParams groups dependencies for the proposal service.
type ServiceParams struct {
	Repo       Repository
	Dispatcher notifications.Dispatcher
	Log        *logger.Logger
}

type service struct {
	repo       Repository
	dispatcher notifications.Dispatcher
	log        *logger.Logger
}

// NewService wires proposal dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "proposals repository required")
	}
	return &service{repo: params.Repo, dispatcher: params.Dispatcher, log: params.Log}, nil
}

func (s *service) CreateRequest(ctx context.Context, params RequestParams) (*models.PropertyRequest, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if strings.TrimSpace(params.Location) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location required")
	}
	if strings.TrimSpace(params.PropertyType) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "property type required")
	}
	contract := enums.ContractKindLongTerm
	if params.ContractType != "" {
		contract = enums.ContractKind(params.ContractType)
		if !contract.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown contract type")
		}
	}
	currency := params.BudgetCurrency
	if currency == "" {
		currency = "XOF"
	}

	request := &models.PropertyRequest{
		UserID:         params.UserID,
		PropertyType:   strings.TrimSpace(params.PropertyType),
		Bedrooms:       params.Bedrooms,
		Bathrooms:      params.Bathrooms,
		SurfaceArea:    params.SurfaceArea,
		Location:       strings.TrimSpace(params.Location),
		BudgetAmount:   params.BudgetAmount,
		BudgetCurrency: currency,
		ContractType:   contract,
		Amenities:      params.Amenities,
		NearbyServices: params.NearbyServices,
		RequestReason:  params.RequestReason,
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create property request")
	}
	return request, nil
}

func (s *service) ListRequests(ctx context.Context) ([]models.PropertyRequest, error) {
	requests, err := s.repo.ListRequests(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list property requests")
	}
	return requests, nil
}

// CreateProposal stores the offer and tells the request's owner about it.
func (s *service) CreateProposal(ctx context.Context, params ProposalParams) (*models.Proposal, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if strings.TrimSpace(params.Location) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location required")
	}
	if !params.PriceOffer.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price offer must be positive")
	}

	var request *models.PropertyRequest
	if params.RequestID != nil {
		var err error
		request, err = s.repo.FindRequestByID(ctx, *params.RequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "property request not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property request")
		}
	}

	proposal := &models.Proposal{
		UserID:      params.UserID,
		RequestID:   params.RequestID,
		PropertyID:  params.PropertyID,
		PriceOffer:  params.PriceOffer,
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
		Location:    strings.TrimSpace(params.Location),
		Bedrooms:    params.Bedrooms,
		Bathrooms:   params.Bathrooms,
		Images:      params.Images,
		Status:      enums.ProposalStatusPending,
	}
	if err := s.repo.CreateProposal(ctx, proposal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create proposal")
	}

	if request != nil {
		s.notifyOwner(ctx, request.UserID, *proposal)
	}
	return proposal, nil
}

func (s *service) ListProposalsByRequest(ctx context.Context, requestID uuid.UUID) ([]models.Proposal, error) {
	if requestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	proposals, err := s.repo.ListProposalsByRequest(ctx, requestID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list proposals")
	}
	return proposals, nil
}

// Decide accepts or rejects a pending proposal. Only the owner of the request
// the proposal answers may decide, and a decision is final.
func (s *service) Decide(ctx context.Context, ownerID, proposalID uuid.UUID, accept bool) (*models.Proposal, error) {
	if ownerID == uuid.Nil || proposalID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id and proposal id required")
	}

	proposal, err := s.repo.FindProposalByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "proposal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load proposal")
	}
	if proposal.Status != enums.ProposalStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "proposal already decided")
	}
	if proposal.RequestID != nil {
		request, err := s.repo.FindRequestByID(ctx, *proposal.RequestID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property request")
		}
		if request.UserID != ownerID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "proposal answers another user's request")
		}
	}

	if accept {
		proposal.Status = enums.ProposalStatusAccepted
	} else {
		proposal.Status = enums.ProposalStatusRejected
	}
	if err := s.repo.UpdateProposal(ctx, proposal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update proposal")
	}

	if accept && proposal.PropertyID != nil {
		s.recordTransaction(ctx, ownerID, *proposal)
	}

	s.notifyDecision(ctx, *proposal)
	return proposal, nil
}

func (s *service) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}
	transaction, err := s.repo.FindTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
	}
	return transaction, nil
}

// recordTransaction keeps a sale record for accepted offers tied to a listing.
// The decision itself stands even when the write fails.
func (s *service) recordTransaction(ctx context.Context, buyerID uuid.UUID, proposal models.Proposal) {
	price := proposal.PriceOffer
	transaction := &models.Transaction{
		PropertyID: *proposal.PropertyID,
		BuyerID:    buyerID,
		AgentID:    &proposal.UserID,
		SalePrice:  &price,
	}
	if err := s.repo.CreateTransaction(ctx, transaction); err != nil && s.log != nil {
		s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "transaction record failed")
	}
}

func (s *service) notifyOwner(ctx context.Context, ownerID uuid.UUID, proposal models.Proposal) {
	if s.dispatcher == nil {
		return
	}
	message := fmt.Sprintf("Nouvelle proposition pour votre demande : <b>%s</b>", proposal.Title)
	if _, err := s.dispatcher.Dispatch(ctx, notifications.DispatchParams{
		UserID:  ownerID,
		Kind:    enums.NotificationKindProposal,
		Message: message,
	}); err != nil && s.log != nil {
		s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "proposal notification failed")
	}
}

func (s *service) notifyDecision(ctx context.Context, proposal models.Proposal) {
	if s.dispatcher == nil {
		return
	}
	verdict := "acceptée"
	if proposal.Status == enums.ProposalStatusRejected {
		verdict = "refusée"
	}
	message := fmt.Sprintf("Votre proposition <b>%s</b> a été %s.", proposal.Title, verdict)
	if _, err := s.dispatcher.Dispatch(ctx, notifications.DispatchParams{
		UserID:  proposal.UserID,
		Kind:    enums.NotificationKindProposal,
		Message: message,
	}); err != nil && s.log != nil {
		s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "proposal decision notification failed")
	}
}
