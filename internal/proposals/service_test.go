package proposals

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/internal/notifications"
	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
)

type fakeRepository struct {
	requests     map[uuid.UUID]*models.PropertyRequest
	proposals    map[uuid.UUID]*models.Proposal
	transactions []*models.Transaction
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		requests:  map[uuid.UUID]*models.PropertyRequest{},
		proposals: map[uuid.UUID]*models.Proposal{},
	}
}

func (f *fakeRepository) CreateRequest(ctx context.Context, request *models.PropertyRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	f.requests[request.ID] = request
	return nil
}

func (f *fakeRepository) FindRequestByID(ctx context.Context, id uuid.UUID) (*models.PropertyRequest, error) {
	if request, ok := f.requests[id]; ok {
		return request, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListRequests(ctx context.Context) ([]models.PropertyRequest, error) {
	var out []models.PropertyRequest
	for _, request := range f.requests {
		out = append(out, *request)
	}
	return out, nil
}

func (f *fakeRepository) CreateProposal(ctx context.Context, proposal *models.Proposal) error {
	if proposal.ID == uuid.Nil {
		proposal.ID = uuid.New()
	}
	f.proposals[proposal.ID] = proposal
	return nil
}

func (f *fakeRepository) FindProposalByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	if proposal, ok := f.proposals[id]; ok {
		copied := *proposal
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListProposalsByRequest(ctx context.Context, requestID uuid.UUID) ([]models.Proposal, error) {
	var out []models.Proposal
	for _, proposal := range f.proposals {
		if proposal.RequestID != nil && *proposal.RequestID == requestID {
			out = append(out, *proposal)
		}
	}
	return out, nil
}

func (f *fakeRepository) UpdateProposal(ctx context.Context, proposal *models.Proposal) error {
	f.proposals[proposal.ID] = proposal
	return nil
}

func (f *fakeRepository) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	f.transactions = append(f.transactions, transaction)
	return nil
}

func (f *fakeRepository) FindTransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	for _, transaction := range f.transactions {
		if transaction.ID == id {
			return transaction, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeDispatcher struct {
	dispatched []notifications.DispatchParams
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, params notifications.DispatchParams) (*models.Notification, error) {
	f.dispatched = append(f.dispatched, params)
	return &models.Notification{}, nil
}

func (f *fakeDispatcher) DispatchAlertMatch(ctx context.Context, recipient models.User, property models.Property) (*models.Notification, error) {
	return &models.Notification{}, nil
}

func seedRequestAndProposal(t *testing.T, repo *fakeRepository, owner uuid.UUID, propertyID *uuid.UUID) *models.Proposal {
	t.Helper()

	request := &models.PropertyRequest{UserID: owner, PropertyType: "house", Location: "Cocody"}
	if err := repo.CreateRequest(context.Background(), request); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	proposal := &models.Proposal{
		UserID:     uuid.New(),
		RequestID:  &request.ID,
		PropertyID: propertyID,
		PriceOffer: decimal.NewFromInt(25000000),
		Title:      "Villa 4 pièces",
		Location:   "Cocody",
		Status:     enums.ProposalStatusPending,
	}
	if err := repo.CreateProposal(context.Background(), proposal); err != nil {
		t.Fatalf("seed proposal: %v", err)
	}
	return proposal
}

func TestDecideAcceptRecordsTransactionAndNotifies(t *testing.T) {
	repo := newFakeRepository()
	dispatcher := &fakeDispatcher{}
	owner := uuid.New()
	propertyID := uuid.New()
	proposal := seedRequestAndProposal(t, repo, owner, &propertyID)

	svc, err := NewService(ServiceParams{Repo: repo, Dispatcher: dispatcher})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	decided, err := svc.Decide(context.Background(), owner, proposal.ID, true)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != enums.ProposalStatusAccepted {
		t.Fatalf("expected accepted status, got %s", decided.Status)
	}

	if len(repo.transactions) != 1 {
		t.Fatalf("expected one transaction, got %d", len(repo.transactions))
	}
	transaction := repo.transactions[0]
	if transaction.PropertyID != propertyID || transaction.BuyerID != owner {
		t.Fatalf("unexpected transaction %+v", transaction)
	}
	if transaction.SalePrice == nil || !transaction.SalePrice.Equal(proposal.PriceOffer) {
		t.Fatalf("unexpected sale price %v", transaction.SalePrice)
	}

	if len(dispatcher.dispatched) != 1 {
		t.Fatalf("expected one notification, got %d", len(dispatcher.dispatched))
	}
	if dispatcher.dispatched[0].Kind != enums.NotificationKindProposal {
		t.Fatalf("unexpected notification kind %s", dispatcher.dispatched[0].Kind)
	}
	if dispatcher.dispatched[0].UserID != proposal.UserID {
		t.Fatal("decision notification must target the proposer")
	}
}

func TestDecideRejectSkipsTransaction(t *testing.T) {
	repo := newFakeRepository()
	owner := uuid.New()
	propertyID := uuid.New()
	proposal := seedRequestAndProposal(t, repo, owner, &propertyID)

	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	decided, err := svc.Decide(context.Background(), owner, proposal.ID, false)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != enums.ProposalStatusRejected {
		t.Fatalf("expected rejected status, got %s", decided.Status)
	}
	if len(repo.transactions) != 0 {
		t.Fatalf("expected no transaction, got %d", len(repo.transactions))
	}
}

func TestDecideRequiresRequestOwner(t *testing.T) {
	repo := newFakeRepository()
	proposal := seedRequestAndProposal(t, repo, uuid.New(), nil)

	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Decide(context.Background(), uuid.New(), proposal.ID, true)
	var coded *pkgerrors.Error
	if !pkgerrors.As(err, &coded) || coded.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestDecideIsFinal(t *testing.T) {
	repo := newFakeRepository()
	owner := uuid.New()
	proposal := seedRequestAndProposal(t, repo, owner, nil)

	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Decide(context.Background(), owner, proposal.ID, false); err != nil {
		t.Fatalf("first decide: %v", err)
	}

	_, err = svc.Decide(context.Background(), owner, proposal.ID, true)
	var coded *pkgerrors.Error
	if !pkgerrors.As(err, &coded) || coded.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestGetTransactionAfterAcceptance(t *testing.T) {
	repo := newFakeRepository()
	owner := uuid.New()
	propertyID := uuid.New()
	proposal := seedRequestAndProposal(t, repo, owner, &propertyID)

	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Decide(context.Background(), owner, proposal.ID, true); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if len(repo.transactions) != 1 {
		t.Fatalf("expected one transaction, got %d", len(repo.transactions))
	}

	transaction, err := svc.GetTransaction(context.Background(), repo.transactions[0].ID)
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if transaction.PropertyID != propertyID {
		t.Fatalf("unexpected property %s", transaction.PropertyID)
	}

	_, err = svc.GetTransaction(context.Background(), uuid.New())
	var coded *pkgerrors.Error
	if !pkgerrors.As(err, &coded) || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCreateProposalNotifiesRequestOwner(t *testing.T) {
	repo := newFakeRepository()
	dispatcher := &fakeDispatcher{}
	owner := uuid.New()

	request := &models.PropertyRequest{UserID: owner, PropertyType: "apartment", Location: "Marcory"}
	if err := repo.CreateRequest(context.Background(), request); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	svc, err := NewService(ServiceParams{Repo: repo, Dispatcher: dispatcher})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.CreateProposal(context.Background(), ProposalParams{
		UserID:     uuid.New(),
		RequestID:  &request.ID,
		PriceOffer: decimal.NewFromInt(150000),
		Title:      "Studio meublé",
		Location:   "Marcory",
	})
	if err != nil {
		t.Fatalf("create proposal: %v", err)
	}

	if len(dispatcher.dispatched) != 1 {
		t.Fatalf("expected one notification, got %d", len(dispatcher.dispatched))
	}
	if dispatcher.dispatched[0].UserID != owner {
		t.Fatal("proposal notification must target the request owner")
	}
}
