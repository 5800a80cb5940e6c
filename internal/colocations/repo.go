package colocations

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/pagination"
)

// ListFilter narrows the paginated offer listing. Nil flags impose no
// constraint.
type ListFilter struct {
	Location string
	Active   *bool
	Boosted  *bool
}

// SearchFilter is the richer ad-hoc search: every tag must be present on the
// offer, preferences match by substring.
type SearchFilter struct {
	Location    string
	Tags        []string
	Active      *bool
	Preferences string
}

// Repository encapsulates colocation offer persistence.
type Repository interface {
	Create(ctx context.Context, colocation *models.Colocation) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Colocation, error)
	List(ctx context.Context, filter ListFilter, page pagination.Page) ([]models.Colocation, int64, error)
	Update(ctx context.Context, colocation *models.Colocation) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter SearchFilter) ([]models.Colocation, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a colocation repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, colocation *models.Colocation) error {
	return r.db.WithContext(ctx).Create(colocation).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Colocation, error) {
	var colocation models.Colocation
	if err := r.db.WithContext(ctx).First(&colocation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &colocation, nil
}

func (r *gormRepository) List(ctx context.Context, filter ListFilter, page pagination.Page) ([]models.Colocation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Colocation{})
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Boosted != nil {
		query = query.Where("boosted = ?", *filter.Boosted)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Colocation
	err := query.
		Order("boosted DESC, created_at DESC").
		Offset((page.Number - 1) * page.Size).
		Limit(page.Size).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *gormRepository) Update(ctx context.Context, colocation *models.Colocation) error {
	return r.db.WithContext(ctx).Save(colocation).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Colocation{}, "id = ?", id).Error
}

func (r *gormRepository) Search(ctx context.Context, filter SearchFilter) ([]models.Colocation, error) {
	query := r.db.WithContext(ctx).Model(&models.Colocation{})
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if len(filter.Tags) > 0 {
		query = query.Where("tags @> ?", pq.Array(filter.Tags))
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Preferences != "" {
		query = query.Where("colocator_preferences ILIKE ?", "%"+filter.Preferences+"%")
	}

	var rows []models.Colocation
	if err := query.Order("boosted DESC, created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
