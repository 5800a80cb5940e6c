package videos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
)

// Repository encapsulates video persistence and like bookkeeping.
type Repository interface {
	Create(ctx context.Context, video *models.Video) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	ListRecent(ctx context.Context, limit int) ([]models.Video, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Video, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddLike(ctx context.Context, like *models.VideoLike) error
	RemoveLike(ctx context.Context, videoID, userID uuid.UUID) (int64, error)
	HasLiked(ctx context.Context, videoID, userID uuid.UUID) (bool, error)
	AdjustLikes(ctx context.Context, videoID uuid.UUID, delta int) error
	IncrementViews(ctx context.Context, videoID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a video repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, video *models.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *gormRepository) ListRecent(ctx context.Context, limit int) ([]models.Video, error) {
	var videos []models.Video
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Video, error) {
	var videos []models.Video
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Video{}, "id = ?", id).Error
}

func (r *gormRepository) AddLike(ctx context.Context, like *models.VideoLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *gormRepository) RemoveLike(ctx context.Context, videoID, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("video_id = ? AND user_id = ?", videoID, userID).
		Delete(&models.VideoLike{})
	return result.RowsAffected, result.Error
}

func (r *gormRepository) HasLiked(ctx context.Context, videoID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VideoLike{}).
		Where("video_id = ? AND user_id = ?", videoID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) AdjustLikes(ctx context.Context, videoID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", videoID).
		UpdateColumn("likes", gorm.Expr("GREATEST(likes + ?, 0)", delta)).Error
}

func (r *gormRepository) IncrementViews(ctx context.Context, videoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", videoID).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}
