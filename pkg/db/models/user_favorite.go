package models

import (
	"time"

	"github.com/google/uuid"
)

// UserFavorite links a user to a bookmarked listing. The composite unique
// index is the authoritative guard against duplicate bookmarks.
type UserFavorite struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_favorites_user_property"`
	PropertyID uuid.UUID `gorm:"column:property_id;type:uuid;not null;uniqueIndex:idx_user_favorites_user_property"`
	AddedAt    time.Time `gorm:"column:added_at;autoCreateTime"`
}
