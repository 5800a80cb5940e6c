package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/internal/notifications"
	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/logger"
)

// PropertySource resolves the reviewed listing.
type PropertySource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
}

// AddParams describes a new property review.
type AddParams struct {
	PropertyID uuid.UUID
	UserID     uuid.UUID
	Rating     int
	Text       *string
}

// Summary pairs the review list with the aggregate rating.
type Summary struct {
	Reviews       []models.PropertyReview `json:"reviews"`
	AverageRating float64                 `json:"average_rating"`
}

// Service manages property reviews.
type Service interface {
	Add(ctx context.Context, params AddParams) (*models.PropertyReview, error)
	Summarize(ctx context.Context, propertyID uuid.UUID) (*Summary, error)
}

// ServiceParams groups dependencies for the review service.
type ServiceParams struct {
	Repo       Repository
	Properties PropertySource
	Dispatcher notifications.Dispatcher
	Log        *logger.Logger
}

type service struct {
	repo       Repository
	properties PropertySource
	dispatcher notifications.Dispatcher
	log        *logger.Logger
}

// NewService wires review dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reviews repository required")
	}
	if params.Properties == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "property source required")
	}
	return &service{
		repo:       params.Repo,
		properties: params.Properties,
		dispatcher: params.Dispatcher,
		log:        params.Log,
	}, nil
}

// Add stores a 1-5 rating and tells the listing's poster about it.
func (s *service) Add(ctx context.Context, params AddParams) (*models.PropertyReview, error) {
	if params.PropertyID == uuid.Nil || params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "property id and user id required")
	}
	if params.Rating < 1 || params.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if params.Text != nil && strings.TrimSpace(*params.Text) == "" {
		params.Text = nil
	}

	property, err := s.properties.FindByID(ctx, params.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "property not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property")
	}

	review := &models.PropertyReview{
		PropertyID: params.PropertyID,
		UserID:     params.UserID,
		Rating:     params.Rating,
		ReviewText: params.Text,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store review")
	}

	s.notifyPoster(ctx, *property, params)
	return review, nil
}

func (s *service) Summarize(ctx context.Context, propertyID uuid.UUID) (*Summary, error) {
	if propertyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "property id required")
	}
	rows, err := s.repo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	avg, err := s.repo.AverageRating(ctx, propertyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "average rating")
	}
	return &Summary{Reviews: rows, AverageRating: avg}, nil
}

func (s *service) notifyPoster(ctx context.Context, property models.Property, params AddParams) {
	if s.dispatcher == nil {
		return
	}
	poster := property.SellerID
	if property.AgentID != nil {
		poster = *property.AgentID
	}
	if poster == params.UserID {
		return
	}

	message := fmt.Sprintf("Votre annonce <b>%s</b> a reçu un avis %d/5.", property.Title, params.Rating)
	if _, err := s.dispatcher.Dispatch(ctx, notifications.DispatchParams{
		UserID:  poster,
		Kind:    enums.NotificationKindReview,
		Message: message,
	}); err != nil && s.log != nil {
		s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "review notification failed")
	}
}
