package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction records a completed sale or rental of a listing.
type Transaction struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID      uuid.UUID        `gorm:"column:property_id;type:uuid;not null;index"`
	BuyerID         uuid.UUID        `gorm:"column:buyer_id;type:uuid;not null;index"`
	AgentID         *uuid.UUID       `gorm:"column:agent_id;type:uuid"`
	SalePrice       *decimal.Decimal `gorm:"column:sale_price;type:numeric(10,2)"`
	TransactionDate time.Time        `gorm:"column:transaction_date;autoCreateTime"`
}
