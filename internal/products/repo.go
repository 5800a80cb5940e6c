package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
)

// SortField enumerates the columns a product listing may sort on. Raw query
// values never reach the ORDER BY clause.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByPrice     SortField = "price"
	SortByName      SortField = "name"
)

var sortColumns = map[SortField]string{
	SortByCreatedAt: "created_at",
	SortByPrice:     "price",
	SortByName:      "name",
}

// ParseSortField validates a caller-supplied sort key.
func ParseSortField(value string) (SortField, error) {
	if value == "" {
		return SortByCreatedAt, nil
	}
	field := SortField(strings.ToLower(value))
	if _, ok := sortColumns[field]; !ok {
		return "", fmt.Errorf("unknown sort field %q", value)
	}
	return field, nil
}

// SearchFilter narrows a product search.
type SearchFilter struct {
	SellerID   *uuid.UUID
	ShopID     *uuid.UUID
	Category   *string
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	Query      string
	ActiveOnly bool
	SortBy     SortField
	Descending bool
}

// Repository encapsulates product persistence.
type Repository interface {
	Create(ctx context.Context, product *models.CommercialProduct) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.CommercialProduct, error)
	Search(ctx context.Context, filter SearchFilter) ([]models.CommercialProduct, error)
	Update(ctx context.Context, product *models.CommercialProduct) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddReview(ctx context.Context, review *models.CommercialProductReview) error
	ListReviews(ctx context.Context, productID uuid.UUID) ([]models.CommercialProductReview, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, product *models.CommercialProduct) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.CommercialProduct, error) {
	var product models.CommercialProduct
	err := r.db.WithContext(ctx).Preload("Photos").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormRepository) Search(ctx context.Context, filter SearchFilter) ([]models.CommercialProduct, error) {
	query := r.db.WithContext(ctx).Model(&models.CommercialProduct{}).Preload("Photos")

	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.ShopID != nil {
		query = query.Where("shop_id = ?", *filter.ShopID)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.PriceMin != nil {
		query = query.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", *filter.PriceMax)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = true")
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	var results []models.CommercialProduct
	if err := query.Order(column + " " + direction).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *gormRepository) Update(ctx context.Context, product *models.CommercialProduct) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Photos").Delete(&models.CommercialProduct{ID: id}).Error
}

func (r *gormRepository) AddReview(ctx context.Context, review *models.CommercialProductReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *gormRepository) ListReviews(ctx context.Context, productID uuid.UUID) ([]models.CommercialProductReview, error) {
	var rows []models.CommercialProductReview
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("posted_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
