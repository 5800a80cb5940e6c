package models

import (
	"time"

	"github.com/google/uuid"
)

// CommercialProductPhoto stores one gallery image for a product.
type CommercialProductPhoto struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	PhotoURL  string    `gorm:"column:photo_url;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
