package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/logysma/logysma-backend/pkg/enums"
	"github.com/logysma/logysma-backend/pkg/types"
)

// User represents the canonical identity entity for buyers, sellers and agents.
type User struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName   string           `gorm:"column:first_name;not null"`
	LastName    string           `gorm:"column:last_name;not null"`
	Email       string           `gorm:"type:text;not null;uniqueIndex"`
	Phone       *string          `gorm:"column:phone"`
	Address     *string          `gorm:"column:address;type:text"`
	Role        enums.UserRole   `gorm:"column:role;type:text;not null;default:'buyer'"`
	PhotoURL    *string          `gorm:"column:photo_url"`
	ContactInfo *string          `gorm:"column:contact_info;type:text"`
	Sectors     *string          `gorm:"column:sectors;type:text"`
	Reviews     types.ReviewList `gorm:"column:reviews;type:jsonb;not null;default:'[]'"`
	Rating      float64          `gorm:"column:rating;not null;default:0"`
	Followers   types.UUIDSet    `gorm:"column:followers;type:jsonb;not null;default:'[]'"`
	Likes       int              `gorm:"column:likes;not null;default:0"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
