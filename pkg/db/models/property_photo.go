package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyPhoto stores one gallery image for a listing.
type PropertyPhoto struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID uuid.UUID `gorm:"column:property_id;type:uuid;not null;index"`
	PhotoURL   string    `gorm:"column:photo_url;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
