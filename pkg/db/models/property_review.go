package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyReview holds a 1-5 rating with an optional text body.
type PropertyReview struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID uuid.UUID `gorm:"column:property_id;type:uuid;not null;index"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Rating     int       `gorm:"column:rating;not null"`
	ReviewText *string   `gorm:"column:review_text;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
