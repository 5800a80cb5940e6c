package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/logysma/logysma-backend/pkg/types"
)

// Colocation is a roommate-listing offer. Active mirrors whether the offer
// still accepts candidates; boosted offers surface first in the client.
type Colocation struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PosterID             uuid.UUID      `gorm:"column:poster_id;type:uuid;not null;index"`
	Description          string         `gorm:"column:description;type:text;not null"`
	Location             string         `gorm:"column:location;type:text;not null"`
	ImageURLs            pq.StringArray `gorm:"column:image_urls;type:text[];not null;default:ARRAY[]::text[]"`
	Tags                 pq.StringArray `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	ColocatorPreferences string         `gorm:"column:colocator_preferences;type:text;not null"`
	Requirements         types.JSONMap  `gorm:"column:requirements;type:jsonb;not null;default:'{}'"`
	Boosted              bool           `gorm:"column:boosted;not null;default:false"`
	Active               bool           `gorm:"column:active;not null;default:true"`
	PostTags             types.JSONMap  `gorm:"column:post_tags;type:jsonb;not null;default:'{}'"`
	CreatedAt            time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
