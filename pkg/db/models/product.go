package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CommercialProduct represents a marketplace item sold alongside listings.
type CommercialProduct struct {
	ID          uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                   `gorm:"column:name;not null"`
	Description *string                  `gorm:"column:description;type:text"`
	SellerID    uuid.UUID                `gorm:"column:seller_id;type:uuid;not null;index"`
	ShopID      *uuid.UUID               `gorm:"column:shop_id;type:uuid;index"`
	Price       decimal.Decimal          `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL    *string                  `gorm:"column:image_url"`
	Poster      *string                  `gorm:"column:poster"`
	Stock       int                      `gorm:"column:stock;not null;default:0"`
	IsActive    bool                     `gorm:"column:is_active;not null;default:true"`
	Category    *string                  `gorm:"column:category"`
	Tags        pq.StringArray           `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	Photos      []CommercialProductPhoto `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
