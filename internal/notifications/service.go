package notifications

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/logysma/logysma-backend/pkg/db/models"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/logger"
	"github.com/logysma/logysma-backend/pkg/redis"
)

const (
	unreadCounterScope = "unread-notifications"
	unreadCounterTTL   = 5 * time.Minute
)

// CounterCache is the slice of the redis client the service needs for unread
// counters. A nil cache disables caching, the database stays authoritative.
type CounterCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CounterKey(scope, id string) string
}

// Service defines notification list/read operations.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID, notificationID uuid.UUID) error
}

// ServiceParams groups dependencies for the notification service.
type ServiceParams struct {
	Repo  Repository
	Cache CounterCache
	Log   *logger.Logger
}

type service struct {
	repo  Repository
	cache CounterCache
	log   *logger.Logger
}

// NewService wires notification dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: params.Repo, cache: params.Cache, log: params.Log}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	rows, err := s.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	return rows, nil
}

// UnreadCount serves the badge counter, preferring the cached value.
func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	if s.cache != nil {
		key := s.cache.CounterKey(unreadCounterScope, userID.String())
		if raw, err := s.cache.Get(ctx, key); err == nil {
			if count, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
				return count, nil
			}
		} else if !redis.IsNil(err) && s.log != nil {
			s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "unread counter cache read failed")
		}
	}

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}

	if s.cache != nil {
		key := s.cache.CounterKey(unreadCounterScope, userID.String())
		if err := s.cache.Set(ctx, key, count, unreadCounterTTL); err != nil && s.log != nil {
			s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "unread counter cache write failed")
		}
	}
	return count, nil
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	affected, err := s.repo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	s.invalidateCounter(ctx, userID)
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	affected, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark all notifications read")
	}
	s.invalidateCounter(ctx, userID)
	return affected, nil
}

func (s *service) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	affected, err := s.repo.Delete(ctx, userID, notificationID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete notification")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	s.invalidateCounter(ctx, userID)
	return nil
}

func (s *service) invalidateCounter(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	key := s.cache.CounterKey(unreadCounterScope, userID.String())
	if err := s.cache.Del(ctx, key); err != nil && s.log != nil {
		s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "unread counter invalidation failed")
	}
}
