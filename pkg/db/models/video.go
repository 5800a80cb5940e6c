package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Video is a short promotional clip, optionally selling a product.
type Video struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	VideoURL      string           `gorm:"column:video_url;not null"`
	ThumbnailURL  *string          `gorm:"column:thumbnail_url"`
	Caption       *string          `gorm:"column:caption;type:text"`
	Likes         int              `gorm:"column:likes;not null;default:0"`
	CommentsCount int              `gorm:"column:comments_count;not null;default:0"`
	ViewsCount    int              `gorm:"column:views_count;not null;default:0"`
	ProductID     *uuid.UUID       `gorm:"column:product_id;type:uuid"`
	Price         *decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	Currency      *string          `gorm:"column:currency;type:varchar(3)"`
	Stock         int              `gorm:"column:stock;not null;default:0"`
	PurchaseCount int              `gorm:"column:purchase_count;not null;default:0"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
