package properties

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/internal/alerts"
	"github.com/logysma/logysma-backend/internal/notifications"
	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/logger"
	"github.com/logysma/logysma-backend/pkg/metrics"
	"github.com/logysma/logysma-backend/pkg/redis"
)

const (
	popularLocationsScope = "popular-locations"
	popularLocationsTTL   = 10 * time.Minute
	popularLocationsLimit = 4
)

// AlertSource lists active saved searches for matching.
type AlertSource interface {
	ListActive(ctx context.Context) ([]models.PropertyAlert, error)
}

// UserSource resolves alert owners for email delivery.
type UserSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Cache is the slice of the redis client used for the popular-locations
// ranking.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(scope, id string) string
}

// CreateParams describes a new listing.
type CreateParams struct {
	Title           string
	Description     *string
	Address         string
	Street          string
	District        *string
	Price           decimal.Decimal
	PropertyType    string
	TransactionType string
	Bedrooms        int
	Bathrooms       int
	Area            *decimal.Decimal
	SellerID        uuid.UUID
	AgentID         *uuid.UUID
	Latitude        *decimal.Decimal
	Longitude       *decimal.Decimal
	Tags            []string
	Amenities       []string
	PhotoURLs       []string
}

// Service exposes listing lifecycle operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Property, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Search(ctx context.Context, filter SearchFilter) ([]models.Property, error)
	Delete(ctx context.Context, userID, propertyID uuid.UUID) error
	AddPhotos(ctx context.Context, userID, propertyID uuid.UUID, urls []string) error
	PopularLocations(ctx context.Context) ([]LocationCount, error)
}

// ServiceParams groups dependencies for the listing service.
type ServiceParams struct {
	Repo       Repository
	Alerts     AlertSource
	Users      UserSource
	Dispatcher notifications.Dispatcher
	Cache      Cache
	Metrics    *metrics.ListingMetrics
	Log        *logger.Logger
}

type service struct {
	repo       Repository
	alerts     AlertSource
	users      UserSource
	dispatcher notifications.Dispatcher
	cache      Cache
	metrics    *metrics.ListingMetrics
	log        *logger.Logger
}

// NewService wires listing dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "properties repository required")
	}
	return &service{
		repo:       params.Repo,
		alerts:     params.Alerts,
		users:      params.Users,
		dispatcher: params.Dispatcher,
		cache:      params.Cache,
		metrics:    params.Metrics,
		log:        params.Log,
	}, nil
}

// Create validates and stores a listing, then runs alert matching. Matching
// and notification failures never fail the creation.
func (s *service) Create(ctx context.Context, params CreateParams) (*models.Property, error) {
	if err := validateCreate(params); err != nil {
		return nil, err
	}

	property := &models.Property{
		Title:           strings.TrimSpace(params.Title),
		Description:     params.Description,
		Address:         strings.TrimSpace(params.Address),
		Street:          strings.TrimSpace(params.Street),
		District:        params.District,
		Price:           params.Price,
		PropertyType:    enums.PropertyType(params.PropertyType),
		TransactionType: enums.TransactionKind(params.TransactionType),
		Bedrooms:        params.Bedrooms,
		Bathrooms:       params.Bathrooms,
		Area:            params.Area,
		SellerID:        params.SellerID,
		AgentID:         params.AgentID,
		Latitude:        params.Latitude,
		Longitude:       params.Longitude,
		Tags:            params.Tags,
		Amenities:       params.Amenities,
	}
	for _, url := range params.PhotoURLs {
		property.Photos = append(property.Photos, models.PropertyPhoto{PhotoURL: url})
	}

	if err := s.repo.Create(ctx, property); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create property")
	}

	s.notifyMatchingAlerts(ctx, *property)
	return property, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "property id required")
	}
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "property not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property")
	}
	return property, nil
}

func (s *service) Search(ctx context.Context, filter SearchFilter) ([]models.Property, error) {
	if filter.PriceMin != nil && filter.PriceMax != nil && filter.PriceMin.GreaterThan(*filter.PriceMax) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_min exceeds price_max")
	}
	results, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search properties")
	}
	return results, nil
}

// Delete removes a listing after an ownership check.
func (s *service) Delete(ctx context.Context, userID, propertyID uuid.UUID) error {
	property, err := s.ownedProperty(ctx, userID, propertyID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, property.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete property")
	}
	return nil
}

func (s *service) AddPhotos(ctx context.Context, userID, propertyID uuid.UUID, urls []string) error {
	if len(urls) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one photo url required")
	}
	property, err := s.ownedProperty(ctx, userID, propertyID)
	if err != nil {
		return err
	}
	if err := s.repo.AddPhotos(ctx, property.ID, urls); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add property photos")
	}
	return nil
}

// PopularLocations ranks addresses by listing count, served from cache when
// fresh.
func (s *service) PopularLocations(ctx context.Context) ([]LocationCount, error) {
	if s.cache != nil {
		key := s.cache.CacheKey(popularLocationsScope, "top")
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var cached []LocationCount
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return cached, nil
			}
		} else if !redis.IsNil(err) && s.log != nil {
			s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "popular locations cache read failed")
		}
	}

	rows, err := s.repo.PopularLocations(ctx, popularLocationsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rank popular locations")
	}

	if s.cache != nil {
		if encoded, jsonErr := json.Marshal(rows); jsonErr == nil {
			key := s.cache.CacheKey(popularLocationsScope, "top")
			if err := s.cache.Set(ctx, key, string(encoded), popularLocationsTTL); err != nil && s.log != nil {
				s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "popular locations cache write failed")
			}
		}
	}
	return rows, nil
}

// notifyMatchingAlerts fans the new listing out to matching saved searches.
// Every failure here is logged and swallowed, the listing is already stored.
func (s *service) notifyMatchingAlerts(ctx context.Context, property models.Property) {
	if s.alerts == nil || s.dispatcher == nil {
		return
	}

	active, err := s.alerts.ListActive(ctx)
	if err != nil {
		s.logMatchFailure(ctx, property.ID, err)
		return
	}

	for _, alert := range alerts.MatchActive(active, property) {
		s.metrics.IncAlertMatch()

		if s.users == nil {
			continue
		}
		recipient, err := s.users.FindByID(ctx, alert.UserID)
		if err != nil {
			s.logMatchFailure(ctx, property.ID, err)
			continue
		}
		if _, err := s.dispatcher.DispatchAlertMatch(ctx, *recipient, property); err != nil {
			s.logMatchFailure(ctx, property.ID, err)
		}
	}
}

func (s *service) logMatchFailure(ctx context.Context, propertyID uuid.UUID, err error) {
	if s.log == nil {
		return
	}
	scoped := s.log.WithPropertyID(ctx, propertyID.String())
	s.log.Warn(s.log.WithField(scoped, "error", err.Error()), "alert matching side effect failed")
}

func (s *service) ownedProperty(ctx context.Context, userID, propertyID uuid.UUID) (*models.Property, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	property, err := s.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.SellerID != userID && (property.AgentID == nil || *property.AgentID != userID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "property belongs to another user")
	}
	return property, nil
}

func validateCreate(params CreateParams) error {
	if strings.TrimSpace(params.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if strings.TrimSpace(params.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address required")
	}
	if strings.TrimSpace(params.Street) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "street required")
	}
	if params.SellerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "seller id required")
	}
	if !params.Price.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if !enums.PropertyType(params.PropertyType).IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown property type")
	}
	if !enums.TransactionKind(params.TransactionType).IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown transaction type")
	}
	if params.Bedrooms < 0 || params.Bathrooms < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "room counts cannot be negative")
	}
	return nil
}
