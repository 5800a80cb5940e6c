package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReviewEntry is one structured review left on a user profile.
type ReviewEntry struct {
	AuthorID uuid.UUID `json:"author_id"`
	Rating   int       `json:"rating"`
	Text     string    `json:"text,omitempty"`
	PostedAt time.Time `json:"posted_at"`
}

// ReviewList is the ordered review feed stored as a jsonb column on users.
type ReviewList []ReviewEntry

// Append adds an entry keeping insertion order.
func (l *ReviewList) Append(entry ReviewEntry) {
	*l = append(*l, entry)
}

// AverageRating returns the mean rating and whether any review exists.
func (l ReviewList) AverageRating() (float64, bool) {
	if len(l) == 0 {
		return 0, false
	}
	sum := 0
	for _, entry := range l {
		sum += entry.Rating
	}
	return float64(sum) / float64(len(l)), true
}

func (l ReviewList) Value() (driver.Value, error) {
	if l == nil {
		l = ReviewList{}
	}
	raw, err := json.Marshal([]ReviewEntry(l))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (l *ReviewList) Scan(value any) error {
	if value == nil {
		*l = ReviewList{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("review list: unsupported scan type %T", value)
	}

	var entries []ReviewEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("review list: %w", err)
	}
	*l = entries
	return nil
}

// GormDataType keeps GORM mapping the column as jsonb.
func (ReviewList) GormDataType() string {
	return "jsonb"
}
