package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is the thread shared by exactly two participants. ParticipantA
// always holds the smaller UUID so each pair maps to a single row.
type Conversation struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ParticipantA uuid.UUID `gorm:"column:participant_a;type:uuid;not null;uniqueIndex:idx_conversations_pair"`
	ParticipantB uuid.UUID `gorm:"column:participant_b;type:uuid;not null;uniqueIndex:idx_conversations_pair"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
