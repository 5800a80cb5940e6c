package models

import (
	"time"

	"github.com/google/uuid"
)

// CommercialProductReview holds buyer feedback on a marketplace product.
type CommercialProductReview struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Rating     int       `gorm:"column:rating;not null"`
	ReviewText *string   `gorm:"column:review_text;type:text"`
	PostedAt   time.Time `gorm:"column:posted_at;autoCreateTime"`
}
