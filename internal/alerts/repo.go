package alerts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
)

// Repository encapsulates alert persistence.
type Repository interface {
	Create(ctx context.Context, alert *models.PropertyAlert) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.PropertyAlert, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PropertyAlert, error)
	ListActive(ctx context.Context) ([]models.PropertyAlert, error)
	Update(ctx context.Context, alert *models.PropertyAlert) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs an alert repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, alert *models.PropertyAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.PropertyAlert, error) {
	var alert models.PropertyAlert
	if err := r.db.WithContext(ctx).First(&alert, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PropertyAlert, error) {
	var alerts []models.PropertyAlert
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *gormRepository) ListActive(ctx context.Context) ([]models.PropertyAlert, error) {
	var alerts []models.PropertyAlert
	if err := r.db.WithContext(ctx).Where("active = true").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *gormRepository) Update(ctx context.Context, alert *models.PropertyAlert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PropertyAlert{}, "id = ?", id).Error
}
