package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/logysma/logysma-backend/pkg/enums"
)

// Message is one chat entry inside a conversation. Content may be empty for
// media-only messages.
type Message struct {
	ID             uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ConversationID uuid.UUID           `gorm:"column:conversation_id;type:uuid;not null;index"`
	SenderID       uuid.UUID           `gorm:"column:sender_id;type:uuid;not null"`
	ReceiverID     uuid.UUID           `gorm:"column:receiver_id;type:uuid;not null"`
	Content        *string             `gorm:"column:content;type:text"`
	MediaURL       *string             `gorm:"column:media_url"`
	MediaType      *enums.MediaKind    `gorm:"column:media_type;type:text"`
	Status         enums.MessageStatus `gorm:"column:status;type:text;not null;default:'sent'"`
	ReplyToID      *uuid.UUID          `gorm:"column:reply_to_id;type:uuid"`
	SentAt         time.Time           `gorm:"column:sent_at;autoCreateTime"`
	ReadAt         *time.Time          `gorm:"column:read_at"`
}
