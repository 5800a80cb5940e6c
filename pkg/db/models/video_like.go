package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoLike records one user's like on a video. The composite unique index
// keeps likes idempotent per viewer.
type VideoLike struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	VideoID   uuid.UUID `gorm:"column:video_id;type:uuid;not null;uniqueIndex:idx_video_likes_video_user"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_video_likes_video_user"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
