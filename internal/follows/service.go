package follows

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/logysma/logysma-backend/internal/notifications"
	"github.com/logysma/logysma-backend/internal/users"
	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/logger"
)

// Service manages the follower sets stored on user rows.
type Service interface {
	Follow(ctx context.Context, followerID, targetID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, targetID uuid.UUID) error
	Followers(ctx context.Context, targetID uuid.UUID) ([]uuid.UUID, error)
}

// ServiceParams groups dependencies for the follow service.
type ServiceParams struct {
	Users      users.Repository
	Dispatcher notifications.Dispatcher
	Log        *logger.Logger
}

type service struct {
	users      users.Repository
	dispatcher notifications.Dispatcher
	log        *logger.Logger
}

// NewService wires follow dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	return &service{users: params.Users, dispatcher: params.Dispatcher, log: params.Log}, nil
}

// Follow adds the follower to the target's set. Following twice is a no-op,
// the set never holds duplicates.
func (s *service) Follow(ctx context.Context, followerID, targetID uuid.UUID) error {
	if followerID == targetID {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot follow yourself")
	}
	target, follower, err := s.pair(ctx, followerID, targetID)
	if err != nil {
		return err
	}

	if !target.Followers.Add(followerID) {
		return nil
	}
	if err := s.users.Update(ctx, target); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store follower")
	}

	s.notify(ctx, *target, *follower)
	return nil
}

// Unfollow removes the follower from the target's set; absent entries are a
// no-op.
func (s *service) Unfollow(ctx context.Context, followerID, targetID uuid.UUID) error {
	target, _, err := s.pair(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if !target.Followers.Remove(followerID) {
		return nil
	}
	if err := s.users.Update(ctx, target); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove follower")
	}
	return nil
}

func (s *service) Followers(ctx context.Context, targetID uuid.UUID) ([]uuid.UUID, error) {
	target, err := s.load(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return target.Followers, nil
}

func (s *service) pair(ctx context.Context, followerID, targetID uuid.UUID) (*models.User, *models.User, error) {
	target, err := s.load(ctx, targetID)
	if err != nil {
		return nil, nil, err
	}
	follower, err := s.load(ctx, followerID)
	if err != nil {
		return nil, nil, err
	}
	return target, follower, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
	}
	return user, nil
}

func (s *service) notify(ctx context.Context, target, follower models.User) {
	if s.dispatcher == nil {
		return
	}
	message := fmt.Sprintf("<b>%s</b> a commencé à vous suivre.", follower.FirstName)
	if _, err := s.dispatcher.Dispatch(ctx, notifications.DispatchParams{
		UserID:  target.ID,
		Kind:    enums.NotificationKindFollow,
		Message: message,
	}); err != nil && s.log != nil {
		s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "follow notification failed")
	}
}
