package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// UUIDSet is an ordered, duplicate-free collection of ids stored as a jsonb
// array. The domain layer mutates it through Add/Remove; the storage layer
// only (de)serializes.
type UUIDSet []uuid.UUID

// Add appends the id and reports whether the set changed.
func (s *UUIDSet) Add(id uuid.UUID) bool {
	if s.Contains(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

// Remove drops the id and reports whether the set changed.
func (s *UUIDSet) Remove(id uuid.UUID) bool {
	for i, existing := range *s {
		if existing == id {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

func (s UUIDSet) Contains(id uuid.UUID) bool {
	for _, existing := range s {
		if existing == id {
			return true
		}
	}
	return false
}

func (s UUIDSet) Len() int {
	return len(s)
}

func (s UUIDSet) Value() (driver.Value, error) {
	if s == nil {
		s = UUIDSet{}
	}
	raw, err := json.Marshal([]uuid.UUID(s))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (s *UUIDSet) Scan(value any) error {
	if value == nil {
		*s = UUIDSet{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("uuid set: unsupported scan type %T", value)
	}

	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		return fmt.Errorf("uuid set: %w", err)
	}
	*s = ids
	return nil
}

// GormDataType keeps GORM mapping the column as jsonb.
func (UUIDSet) GormDataType() string {
	return "jsonb"
}
