package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/internal/notifications"
	"github.com/logysma/logysma-backend/pkg/db"
	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/logger"
)

const uniqueFavoriteConstraint = "idx_user_favorites_user_property"

// PropertySource resolves bookmarked listings.
type PropertySource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
}

// UserSource resolves the bookmarking user for notification copy.
type UserSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service manages a user's bookmarked listings.
type Service interface {
	Add(ctx context.Context, userID, propertyID uuid.UUID) (*models.UserFavorite, error)
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserFavorite, error)
}

// ServiceParams groups dependencies for the favorites service.
type ServiceParams struct {
	Repo       Repository
	Properties PropertySource
	Users      UserSource
	Dispatcher notifications.Dispatcher
	Log        *logger.Logger
}

type service struct {
	repo       Repository
	properties PropertySource
	users      UserSource
	dispatcher notifications.Dispatcher
	log        *logger.Logger
}

// NewService wires favorites dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "favorites repository required")
	}
	if params.Properties == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "property source required")
	}
	return &service{
		repo:       params.Repo,
		properties: params.Properties,
		users:      params.Users,
		dispatcher: params.Dispatcher,
		log:        params.Log,
	}, nil
}

// Add bookmarks the listing once. The existence check is a fast path, the
// unique index stays authoritative under concurrent adds.
func (s *service) Add(ctx context.Context, userID, propertyID uuid.UUID) (*models.UserFavorite, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if propertyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "property id required")
	}

	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "property not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property")
	}

	exists, err := s.repo.Exists(ctx, userID, propertyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check favorite")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "property already in favorites")
	}

	favorite := &models.UserFavorite{UserID: userID, PropertyID: propertyID}
	if err := s.repo.Add(ctx, favorite); err != nil {
		if db.IsUniqueViolation(err, uniqueFavoriteConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "property already in favorites")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store favorite")
	}

	s.notify(ctx, userID, *property)
	return favorite, nil
}

// Remove drops the bookmark; removing a non-favorite is not an error.
func (s *service) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	if userID == uuid.Nil || propertyID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and property id required")
	}
	if _, err := s.repo.Remove(ctx, userID, propertyID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
	}
	return nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserFavorite, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list favorites")
	}
	return rows, nil
}

// notify confirms the bookmark to its owner and tells the listing's poster
// about the like. Failures are logged, the bookmark is already stored.
func (s *service) notify(ctx context.Context, userID uuid.UUID, property models.Property) {
	if s.dispatcher == nil {
		return
	}

	var cover *string
	if len(property.Photos) > 0 {
		cover = &property.Photos[0].PhotoURL
	}

	if _, err := s.dispatcher.Dispatch(ctx, notifications.DispatchParams{
		UserID:     userID,
		Kind:       enums.NotificationKindInfo,
		Message:    "La propriété a bien été ajoutée à votre liste de favoris.",
		CoverPhoto: cover,
	}); err != nil {
		s.logNotifyFailure(ctx, err)
	}

	poster := property.SellerID
	if property.AgentID != nil {
		poster = *property.AgentID
	}
	if poster == userID {
		return
	}

	likerName := "Un utilisateur"
	if s.users != nil {
		if liker, err := s.users.FindByID(ctx, userID); err == nil {
			likerName = liker.FirstName
		}
	}
	message := fmt.Sprintf("<b>%s</b> a aimé votre annonce à <b>%s</b> : <i>%s</i>", likerName, property.Address, property.Title)
	if _, err := s.dispatcher.Dispatch(ctx, notifications.DispatchParams{
		UserID:     poster,
		Kind:       enums.NotificationKindLike,
		Message:    message,
		CoverPhoto: cover,
	}); err != nil {
		s.logNotifyFailure(ctx, err)
	}
}

func (s *service) logNotifyFailure(ctx context.Context, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "favorite notification failed")
}
