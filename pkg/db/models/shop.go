package models

import (
	"time"

	"github.com/google/uuid"
)

// Shop is a seller storefront grouping commercial products.
type Shop struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	CategoryID  *uuid.UUID `gorm:"column:category_id;type:uuid"`
	Name        string     `gorm:"column:name;not null"`
	Description *string    `gorm:"column:description;type:text"`
	Address     *string    `gorm:"column:address"`
	City        *string    `gorm:"column:city"`
	Country     *string    `gorm:"column:country"`
	Phone       *string    `gorm:"column:phone"`
	Email       *string    `gorm:"column:email"`
	Logo        *string    `gorm:"column:logo"`
	CoverImage  *string    `gorm:"column:cover_image"`
	Subcategory *string    `gorm:"column:subcategory"`
	Website     *string    `gorm:"column:website"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
