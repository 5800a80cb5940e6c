package alerts

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
)

// SubscribeParams carries the criteria for a new alert. Nil fields stay
// unconstrained.
type SubscribeParams struct {
	UserID          uuid.UUID
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	Bedrooms        *int
	Bathrooms       *int
	PropertyType    *string
	Location        *string
	TransactionType *string
}

// Service manages saved-search subscriptions.
type Service interface {
	Subscribe(ctx context.Context, params SubscribeParams) (*models.PropertyAlert, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PropertyAlert, error)
	Deactivate(ctx context.Context, userID, alertID uuid.UUID) error
	Delete(ctx context.Context, userID, alertID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService wires alert dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "alerts repository required")
	}
	return &service{repo: repo}, nil
}

// Subscribe validates the criteria and stores an active alert. Bounds are
// checked here so the matcher never sees an impossible subscription.
func (s *service) Subscribe(ctx context.Context, params SubscribeParams) (*models.PropertyAlert, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if err := validateCriteria(params); err != nil {
		return nil, err
	}

	alert := &models.PropertyAlert{
		UserID:          params.UserID,
		MinPrice:        params.MinPrice,
		MaxPrice:        params.MaxPrice,
		Bedrooms:        params.Bedrooms,
		Bathrooms:       params.Bathrooms,
		PropertyType:    params.PropertyType,
		Location:        normalizeOptional(params.Location),
		TransactionType: params.TransactionType,
		Active:          true,
	}
	if err := s.repo.Create(ctx, alert); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create alert")
	}
	return alert, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PropertyAlert, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	alerts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list alerts")
	}
	return alerts, nil
}

// Deactivate flips the alert off without losing its criteria.
func (s *service) Deactivate(ctx context.Context, userID, alertID uuid.UUID) error {
	alert, err := s.ownedAlert(ctx, userID, alertID)
	if err != nil {
		return err
	}
	if !alert.Active {
		return nil
	}
	alert.Active = false
	if err := s.repo.Update(ctx, alert); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate alert")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, userID, alertID uuid.UUID) error {
	if _, err := s.ownedAlert(ctx, userID, alertID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, alertID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete alert")
	}
	return nil
}

func (s *service) ownedAlert(ctx context.Context, userID, alertID uuid.UUID) (*models.PropertyAlert, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if alertID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "alert id required")
	}
	alert, err := s.repo.FindByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "alert not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load alert")
	}
	if alert.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "alert belongs to another user")
	}
	return alert, nil
}

func validateCriteria(params SubscribeParams) error {
	if params.MinPrice != nil && params.MinPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "min price cannot be negative")
	}
	if params.MaxPrice != nil && params.MaxPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "max price cannot be negative")
	}
	if params.MinPrice != nil && params.MaxPrice != nil && params.MinPrice.GreaterThan(*params.MaxPrice) {
		return pkgerrors.New(pkgerrors.CodeValidation, "min price exceeds max price")
	}
	if params.Bedrooms != nil && *params.Bedrooms < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "bedrooms cannot be negative")
	}
	if params.Bathrooms != nil && *params.Bathrooms < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "bathrooms cannot be negative")
	}
	if params.PropertyType != nil && !enums.PropertyType(*params.PropertyType).IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown property type")
	}
	if params.TransactionType != nil && !enums.TransactionKind(*params.TransactionType).IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown transaction type")
	}
	return nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
