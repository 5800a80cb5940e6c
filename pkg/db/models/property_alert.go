package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyAlert is a saved-search subscription. Nil criteria are treated as
// unconstrained by the matcher.
type PropertyAlert struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	MinPrice        *decimal.Decimal `gorm:"column:min_price;type:numeric(20,2)"`
	MaxPrice        *decimal.Decimal `gorm:"column:max_price;type:numeric(20,2)"`
	Bedrooms        *int             `gorm:"column:bedrooms"`
	Bathrooms       *int             `gorm:"column:bathrooms"`
	PropertyType    *string          `gorm:"column:property_type"`
	Location        *string          `gorm:"column:location"`
	TransactionType *string          `gorm:"column:transaction_type"`
	Active          bool             `gorm:"column:active;not null;default:true"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
}
