package feed

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logysma/logysma-backend/pkg/enums"
	"github.com/logysma/logysma-backend/pkg/pagination"
)

// Query carries the caller's feed parameters.
type Query struct {
	Location string
	Page     pagination.Page
}

// AgentSummary is the compact agent card embedded in feed items.
type AgentSummary struct {
	ID          uuid.UUID `json:"agent_id"`
	DisplayName string    `json:"display_name"`
	PhotoURL    *string   `json:"profile_photo"`
}

// Item is one scored listing in the personalized feed.
type Item struct {
	PropertyID      uuid.UUID             `json:"property_id"`
	Title           string                `json:"title"`
	Description     *string               `json:"description"`
	Address         string                `json:"address"`
	Street          string                `json:"street"`
	District        *string               `json:"district"`
	Price           decimal.Decimal       `json:"price"`
	PropertyType    enums.PropertyType    `json:"property_type"`
	TransactionType enums.TransactionKind `json:"transaction_type"`
	Bedrooms        int                   `json:"bedrooms"`
	Bathrooms       int                   `json:"bathrooms"`
	Area            *decimal.Decimal      `json:"area"`
	SellerID        uuid.UUID             `json:"seller_id"`
	Agent           *AgentSummary         `json:"agent,omitempty"`
	Latitude        *decimal.Decimal      `json:"latitude"`
	Longitude       *decimal.Decimal      `json:"longitude"`
	Tags            []string              `json:"tags"`
	CoverPhoto      *string               `json:"cover_photo"`
	Photos          []string              `json:"photos"`
	TimePosted      time.Time             `json:"time_posted"`
	RelevanceScore  int                   `json:"relevance_score"`
	HasLiked        bool                  `json:"has_liked"`
}

// Page is the paginated feed response.
type Page struct {
	Properties  []Item `json:"properties"`
	Total       int    `json:"total"`
	Pages       int    `json:"pages"`
	CurrentPage int    `json:"current_page"`
}
