package alerts

import (
	"strings"

	"github.com/logysma/logysma-backend/pkg/db/models"
)

// Match reports whether a listing satisfies every criterion set on the
// alert. Unset criteria always pass. Price bounds are inclusive, room counts
// match exactly, and location is a case-insensitive substring of the address.
func Match(alert models.PropertyAlert, property models.Property) bool {
	if alert.MinPrice != nil && property.Price.LessThan(*alert.MinPrice) {
		return false
	}
	if alert.MaxPrice != nil && property.Price.GreaterThan(*alert.MaxPrice) {
		return false
	}
	if alert.Bedrooms != nil && property.Bedrooms != *alert.Bedrooms {
		return false
	}
	if alert.Bathrooms != nil && property.Bathrooms != *alert.Bathrooms {
		return false
	}
	if alert.PropertyType != nil && string(property.PropertyType) != *alert.PropertyType {
		return false
	}
	if alert.Location != nil && !strings.Contains(strings.ToLower(property.Address), strings.ToLower(*alert.Location)) {
		return false
	}
	if alert.TransactionType != nil && string(property.TransactionType) != *alert.TransactionType {
		return false
	}
	return true
}

// MatchActive filters the given alerts down to the active ones the listing
// satisfies.
func MatchActive(alerts []models.PropertyAlert, property models.Property) []models.PropertyAlert {
	matched := make([]models.PropertyAlert, 0)
	for _, alert := range alerts {
		if !alert.Active {
			continue
		}
		if Match(alert, property) {
			matched = append(matched, alert)
		}
	}
	return matched
}
