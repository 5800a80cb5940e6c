package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/logysma/logysma-backend/pkg/enums"
)

// Proposal is a seller's offer answering a buyer's property request.
type Proposal struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID  *uuid.UUID           `gorm:"column:property_id;type:uuid"`
	UserID      uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	RequestID   *uuid.UUID           `gorm:"column:request_id;type:uuid;index"`
	PriceOffer  decimal.Decimal      `gorm:"column:price_offer;type:numeric(20,2);not null"`
	Title       string               `gorm:"column:title;not null"`
	Description *string              `gorm:"column:description;type:text"`
	Location    string               `gorm:"column:location;not null"`
	Bedrooms    int                  `gorm:"column:bedrooms;not null;default:0"`
	Bathrooms   int                  `gorm:"column:bathrooms;not null;default:0"`
	SurfaceArea *decimal.Decimal     `gorm:"column:surface_area;type:numeric(10,2)"`
	Images      pq.StringArray       `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	Status      enums.ProposalStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
