package favorites

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
)

// Repository encapsulates favorite persistence.
type Repository interface {
	Add(ctx context.Context, favorite *models.UserFavorite) error
	Remove(ctx context.Context, userID, propertyID uuid.UUID) (int64, error)
	Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserFavorite, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Add(ctx context.Context, favorite *models.UserFavorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *gormRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.UserFavorite{})
	return result.RowsAffected, result.Error
}

func (r *gormRepository) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserFavorite{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserFavorite, error) {
	var rows []models.UserFavorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
