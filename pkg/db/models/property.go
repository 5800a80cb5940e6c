package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/logysma/logysma-backend/pkg/enums"
)

// Property represents a published real-estate listing.
type Property struct {
	ID              uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title           string                `gorm:"column:title;not null"`
	Description     *string               `gorm:"column:description;type:text"`
	Address         string                `gorm:"column:address;type:text;not null"`
	Street          string                `gorm:"column:street;not null"`
	District        *string               `gorm:"column:district"`
	Price           decimal.Decimal       `gorm:"column:price;type:numeric(20,2);not null"`
	PropertyType    enums.PropertyType    `gorm:"column:property_type;type:text;not null"`
	TransactionType enums.TransactionKind `gorm:"column:transaction_type;type:text;not null"`
	Bedrooms        int                   `gorm:"column:bedrooms;not null;default:0"`
	Bathrooms       int                   `gorm:"column:bathrooms;not null;default:0"`
	Area            *decimal.Decimal      `gorm:"column:area;type:numeric(10,2)"`
	SellerID        uuid.UUID             `gorm:"column:seller_id;type:uuid;not null;index"`
	AgentID         *uuid.UUID            `gorm:"column:agent_id;type:uuid"`
	Latitude        *decimal.Decimal      `gorm:"column:latitude;type:numeric(9,6)"`
	Longitude       *decimal.Decimal      `gorm:"column:longitude;type:numeric(9,6)"`
	Tags            pq.StringArray        `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	Amenities       pq.StringArray        `gorm:"column:amenities;type:text[];not null;default:ARRAY[]::text[]"`
	Photos          []PropertyPhoto       `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Reviews         []PropertyReview      `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
