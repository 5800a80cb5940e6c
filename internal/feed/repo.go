package feed

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
)

// CandidateFilter narrows the listings considered for scoring. Alert-derived
// bounds use minimums for rooms so a 3-bedroom alert still surfaces larger
// homes.
type CandidateFilter struct {
	Location     string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinBedrooms  *int
	MinBathrooms *int
	PropertyType *string
}

// Repository loads the rows the feed needs: candidates with their photos and
// reviews, the caller's favorites and first active alert, and agent cards.
type Repository interface {
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]models.Property, error)
	ListFavoriteProperties(ctx context.Context, userID uuid.UUID) ([]models.Property, error)
	FirstActiveAlert(ctx context.Context, userID uuid.UUID) (*models.PropertyAlert, error)
	FindUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a feed repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ListCandidates(ctx context.Context, filter CandidateFilter) ([]models.Property, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Preload("Photos").
		Preload("Reviews")

	if filter.Location != "" {
		pattern := "%" + filter.Location + "%"
		query = query.Where(
			"address ILIKE ? OR district ILIKE ? OR street ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinBedrooms != nil {
		query = query.Where("bedrooms >= ?", *filter.MinBedrooms)
	}
	if filter.MinBathrooms != nil {
		query = query.Where("bathrooms >= ?", *filter.MinBathrooms)
	}
	if filter.PropertyType != nil {
		query = query.Where("property_type = ?", *filter.PropertyType)
	}

	var properties []models.Property
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *gormRepository) ListFavoriteProperties(ctx context.Context, userID uuid.UUID) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Joins("JOIN user_favorites uf ON uf.property_id = properties.id").
		Where("uf.user_id = ?", userID).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *gormRepository) FirstActiveAlert(ctx context.Context, userID uuid.UUID) (*models.PropertyAlert, error) {
	var alert models.PropertyAlert
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = true", userID).
		Order("created_at ASC").
		First(&alert).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (r *gormRepository) FindUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
