package proposals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
)

// Repository encapsulates property request and proposal persistence.
type Repository interface {
	CreateRequest(ctx context.Context, request *models.PropertyRequest) error
	FindRequestByID(ctx context.Context, id uuid.UUID) (*models.PropertyRequest, error)
	ListRequests(ctx context.Context) ([]models.PropertyRequest, error)
	CreateProposal(ctx context.Context, proposal *models.Proposal) error
	FindProposalByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error)
	ListProposalsByRequest(ctx context.Context, requestID uuid.UUID) ([]models.Proposal, error)
	UpdateProposal(ctx context.Context, proposal *models.Proposal) error
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	FindTransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a proposal repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateRequest(ctx context.Context, request *models.PropertyRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *gormRepository) FindRequestByID(ctx context.Context, id uuid.UUID) (*models.PropertyRequest, error) {
	var request models.PropertyRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *gormRepository) ListRequests(ctx context.Context) ([]models.PropertyRequest, error) {
	var requests []models.PropertyRequest
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *gormRepository) CreateProposal(ctx context.Context, proposal *models.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *gormRepository) FindProposalByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := r.db.WithContext(ctx).First(&proposal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (r *gormRepository) ListProposalsByRequest(ctx context.Context, requestID uuid.UUID) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at DESC").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}
	return proposals, nil
}

func (r *gormRepository) UpdateProposal(ctx context.Context, proposal *models.Proposal) error {
	return r.db.WithContext(ctx).Save(proposal).Error
}

func (r *gormRepository) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *gormRepository) FindTransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}
