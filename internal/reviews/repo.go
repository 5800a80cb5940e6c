package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
)

// Repository encapsulates property review persistence.
type Repository interface {
	Create(ctx context.Context, review *models.PropertyReview) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.PropertyReview, error)
	AverageRating(ctx context.Context, propertyID uuid.UUID) (float64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a review repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, review *models.PropertyReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *gormRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.PropertyReview, error) {
	var rows []models.PropertyReview
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) AverageRating(ctx context.Context, propertyID uuid.UUID) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.PropertyReview{}).
		Where("property_id = ?", propertyID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
