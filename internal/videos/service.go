package videos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/internal/notifications"
	"github.com/logysma/logysma-backend/pkg/db"
	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/logger"
)

const (
	uniqueVideoLikeConstraint = "idx_video_likes_video_user"
	defaultRecentLimit        = 20
)

// UserSource resolves the liking user for notification copy.
type UserSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// PublishParams describes a new clip.
type PublishParams struct {
	UserID       uuid.UUID
	VideoURL     string
	ThumbnailURL *string
	Caption      *string
	ProductID    *uuid.UUID
	Price        *decimal.Decimal
	Currency     *string
	Stock        int
}

// Service manages the short-video feed.
type Service interface {
	Publish(ctx context.Context, params PublishParams) (*models.Video, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Video, error)
	ListRecent(ctx context.Context, limit int) ([]models.Video, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Video, error)
	Like(ctx context.Context, userID, videoID uuid.UUID) error
	Unlike(ctx context.Context, userID, videoID uuid.UUID) error
	RecordView(ctx context.Context, videoID uuid.UUID) error
	Delete(ctx context.Context, userID, videoID uuid.UUID) error
}

// ServiceParams groups dependencies for the video service.
type ServiceParams struct {
	Repo       Repository
	Users      UserSource
	Dispatcher notifications.Dispatcher
	Log        *logger.Logger
}

type service struct {
	repo       Repository
	users      UserSource
	dispatcher notifications.Dispatcher
	log        *logger.Logger
}

// NewService wires video dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "videos repository required")
	}
	return &service{
		repo:       params.Repo,
		users:      params.Users,
		dispatcher: params.Dispatcher,
		log:        params.Log,
	}, nil
}

func (s *service) Publish(ctx context.Context, params PublishParams) (*models.Video, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if strings.TrimSpace(params.VideoURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "video url required")
	}
	if params.Price != nil && params.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if params.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}

	video := &models.Video{
		UserID:       params.UserID,
		VideoURL:     strings.TrimSpace(params.VideoURL),
		ThumbnailURL: params.ThumbnailURL,
		Caption:      params.Caption,
		ProductID:    params.ProductID,
		Price:        params.Price,
		Currency:     params.Currency,
		Stock:        params.Stock,
	}
	if err := s.repo.Create(ctx, video); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create video")
	}
	return video, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "video id required")
	}
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "video not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load video")
	}
	return video, nil
}

func (s *service) ListRecent(ctx context.Context, limit int) ([]models.Video, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	videos, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list videos")
	}
	return videos, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Video, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	videos, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list videos")
	}
	return videos, nil
}

// Like records the like once. The existence check is a fast path, the unique
// index stays authoritative under concurrent likes.
func (s *service) Like(ctx context.Context, userID, videoID uuid.UUID) error {
	if userID == uuid.Nil || videoID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and video id required")
	}

	video, err := s.Get(ctx, videoID)
	if err != nil {
		return err
	}

	liked, err := s.repo.HasLiked(ctx, videoID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check like")
	}
	if liked {
		return pkgerrors.New(pkgerrors.CodeConflict, "video already liked")
	}

	if err := s.repo.AddLike(ctx, &models.VideoLike{VideoID: videoID, UserID: userID}); err != nil {
		if db.IsUniqueViolation(err, uniqueVideoLikeConstraint) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "video already liked")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store like")
	}
	if err := s.repo.AdjustLikes(ctx, videoID, 1); err != nil {
		s.logFailure(ctx, err, "like counter update failed")
	}

	s.notifyLike(ctx, userID, *video)
	return nil
}

// Unlike drops the like; removing an absent like is not an error.
func (s *service) Unlike(ctx context.Context, userID, videoID uuid.UUID) error {
	if userID == uuid.Nil || videoID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and video id required")
	}
	removed, err := s.repo.RemoveLike(ctx, videoID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove like")
	}
	if removed == 0 {
		return nil
	}
	if err := s.repo.AdjustLikes(ctx, videoID, -1); err != nil {
		s.logFailure(ctx, err, "like counter update failed")
	}
	return nil
}

func (s *service) RecordView(ctx context.Context, videoID uuid.UUID) error {
	if videoID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "video id required")
	}
	if err := s.repo.IncrementViews(ctx, videoID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record view")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, userID, videoID uuid.UUID) error {
	video, err := s.Get(ctx, videoID)
	if err != nil {
		return err
	}
	if video.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "video belongs to another user")
	}
	if err := s.repo.Delete(ctx, videoID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete video")
	}
	return nil
}

// notifyLike tells the clip's author about the like, skipping self-likes.
// Failures are logged, the like is already stored.
func (s *service) notifyLike(ctx context.Context, userID uuid.UUID, video models.Video) {
	if s.dispatcher == nil || video.UserID == userID {
		return
	}

	likerName := "Un utilisateur"
	if s.users != nil {
		if liker, err := s.users.FindByID(ctx, userID); err == nil {
			likerName = liker.FirstName
		}
	}
	if _, err := s.dispatcher.Dispatch(ctx, notifications.DispatchParams{
		UserID:     video.UserID,
		Kind:       enums.NotificationKindLike,
		Message:    fmt.Sprintf("<b>%s</b> a aimé votre vidéo.", likerName),
		CoverPhoto: video.ThumbnailURL,
	}); err != nil {
		s.logFailure(ctx, err, "video like notification failed")
	}
}

func (s *service) logFailure(ctx context.Context, err error, msg string) {
	if s.log == nil {
		return
	}
	s.log.Warn(s.log.WithField(ctx, "error", err.Error()), msg)
}
