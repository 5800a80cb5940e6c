package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/logysma/logysma-backend/pkg/enums"
)

// Notification stores the in-app copy of every dispatched event.
type Notification struct {
	ID         uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index"`
	Message    string                 `gorm:"column:message;type:text;not null"`
	Kind       enums.NotificationKind `gorm:"column:kind;type:text;not null;default:'info'"`
	IsRead     bool                   `gorm:"column:is_read;not null;default:false"`
	CoverPhoto *string                `gorm:"column:cover_photo;type:text"`
	CreatedAt  time.Time              `gorm:"column:created_at;autoCreateTime"`
}
