package properties

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
)

// SearchFilter narrows a listing search. Room counts are tolerant: a search
// for 3 bedrooms also returns 2 and 4.
type SearchFilter struct {
	PriceMin        *decimal.Decimal
	PriceMax        *decimal.Decimal
	Bedrooms        *int
	Bathrooms       *int
	PropertyType    *string
	TransactionType *string
	Location        string
}

// LocationCount is one entry of the popular-locations ranking.
type LocationCount struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

// Repository encapsulates listing persistence.
type Repository interface {
	Create(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Search(ctx context.Context, filter SearchFilter) ([]models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddPhotos(ctx context.Context, propertyID uuid.UUID, urls []string) error
	PopularLocations(ctx context.Context, limit int) ([]LocationCount, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a listing repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Preload("Photos").
		Preload("Reviews").
		First(&property, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *gormRepository) Search(ctx context.Context, filter SearchFilter) ([]models.Property, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Preload("Photos")

	if filter.PriceMin != nil {
		query = query.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", *filter.PriceMax)
	}
	if filter.Bedrooms != nil {
		query = query.Where("bedrooms BETWEEN ? AND ?", *filter.Bedrooms-1, *filter.Bedrooms+1)
	}
	if filter.Bathrooms != nil {
		query = query.Where("bathrooms BETWEEN ? AND ?", *filter.Bathrooms-1, *filter.Bathrooms+1)
	}
	if filter.PropertyType != nil {
		query = query.Where("property_type = ?", *filter.PropertyType)
	}
	if filter.TransactionType != nil {
		query = query.Where("transaction_type = ?", *filter.TransactionType)
	}
	if location := strings.TrimSpace(filter.Location); location != "" {
		pattern := "%" + location + "%"
		conditions := r.db.Where("address ILIKE ? OR street ILIKE ? OR district ILIKE ?", pattern, pattern, pattern)
		for _, word := range strings.Fields(location) {
			if len(word) > 2 {
				conditions = conditions.Or("address ILIKE ?", "%"+word+"%")
			}
		}
		query = query.Where(conditions)
	}

	var results []models.Property
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *gormRepository) Update(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Photos", "Reviews").Delete(&models.Property{ID: id}).Error
}

func (r *gormRepository) AddPhotos(ctx context.Context, propertyID uuid.UUID, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	photos := make([]models.PropertyPhoto, 0, len(urls))
	for _, url := range urls {
		photos = append(photos, models.PropertyPhoto{PropertyID: propertyID, PhotoURL: url})
	}
	return r.db.WithContext(ctx).Create(&photos).Error
}

func (r *gormRepository) PopularLocations(ctx context.Context, limit int) ([]LocationCount, error) {
	var rows []LocationCount
	err := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Select("address AS location, COUNT(address) AS count").
		Group("address").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
