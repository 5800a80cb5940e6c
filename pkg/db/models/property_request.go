package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/logysma/logysma-backend/pkg/enums"
)

// PropertyRequest is a buyer's published wish for a property to rent or buy.
type PropertyRequest struct {
	ID                     uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID                 uuid.UUID          `gorm:"column:user_id;type:uuid;not null;index"`
	PropertyType           string             `gorm:"column:property_type;not null"`
	Bedrooms               *int               `gorm:"column:bedrooms"`
	Bathrooms              *int               `gorm:"column:bathrooms"`
	SurfaceArea            *int               `gorm:"column:surface_area"`
	Location               string             `gorm:"column:location;not null"`
	BudgetAmount           *decimal.Decimal   `gorm:"column:budget_amount;type:numeric(15,2)"`
	BudgetCurrency         string             `gorm:"column:budget_currency;not null;default:'XOF'"`
	AdditionalFeesAccepted bool               `gorm:"column:additional_fees_accepted;not null;default:false"`
	ContractType           enums.ContractKind `gorm:"column:contract_type;type:text;not null;default:'long_term'"`
	StartDate              *time.Time         `gorm:"column:start_date;type:date"`
	Amenities              pq.StringArray     `gorm:"column:amenities;type:text[];not null;default:ARRAY[]::text[]"`
	NearbyServices         pq.StringArray     `gorm:"column:nearby_services;type:text[];not null;default:ARRAY[]::text[]"`
	Occupation             *string            `gorm:"column:occupation"`
	FamilyStatus           *string            `gorm:"column:family_status"`
	RequestReason          *string            `gorm:"column:request_reason;type:text"`
	HideContactInfo        bool               `gorm:"column:hide_contact_info;not null;default:false"`
	CreatedAt              time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
