package alerts

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
)

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func sampleProperty() models.Property {
	return models.Property{
		Title:           "Villa moderne",
		Address:         "Rue des Jardins, Cocody, Abidjan",
		Price:           decimal.NewFromInt(150000),
		PropertyType:    enums.PropertyTypeHouse,
		TransactionType: enums.TransactionKindSale,
		Bedrooms:        3,
		Bathrooms:       2,
	}
}

func TestMatchEmptyAlertMatchesEverything(t *testing.T) {
	if !Match(models.PropertyAlert{Active: true}, sampleProperty()) {
		t.Fatal("expected an alert without criteria to match any listing")
	}
}

func TestMatchPriceBoundsInclusive(t *testing.T) {
	property := sampleProperty()

	alert := models.PropertyAlert{MinPrice: decPtr(150000), MaxPrice: decPtr(150000)}
	if !Match(alert, property) {
		t.Fatal("expected inclusive bounds to match the exact price")
	}

	alert.MinPrice = decPtr(150001)
	if Match(alert, property) {
		t.Fatal("expected listing below min price to be rejected")
	}

	alert = models.PropertyAlert{MaxPrice: decPtr(149999)}
	if Match(alert, property) {
		t.Fatal("expected listing above max price to be rejected")
	}
}

func TestMatchRoomsExactly(t *testing.T) {
	property := sampleProperty()

	if !Match(models.PropertyAlert{Bedrooms: intPtr(3)}, property) {
		t.Fatal("expected exact bedroom count to match")
	}
	if Match(models.PropertyAlert{Bedrooms: intPtr(4)}, property) {
		t.Fatal("expected a four-bedroom alert to reject a three-bedroom listing")
	}
	if Match(models.PropertyAlert{Bathrooms: intPtr(3)}, property) {
		t.Fatal("expected bathroom mismatch to reject")
	}
}

func TestMatchTypeAndTransaction(t *testing.T) {
	property := sampleProperty()

	alert := models.PropertyAlert{MinPrice: decPtr(100000), PropertyType: strPtr("house")}
	if !Match(alert, property) {
		t.Fatal("expected min price and type alert to match")
	}

	alert.PropertyType = strPtr("apartment")
	if Match(alert, property) {
		t.Fatal("expected type mismatch to reject")
	}

	if Match(models.PropertyAlert{TransactionType: strPtr("rent")}, property) {
		t.Fatal("expected transaction mismatch to reject")
	}
}

func TestMatchLocationSubstring(t *testing.T) {
	property := sampleProperty()

	if !Match(models.PropertyAlert{Location: strPtr("cocody")}, property) {
		t.Fatal("expected case-insensitive substring to match")
	}
	if Match(models.PropertyAlert{Location: strPtr("Yopougon")}, property) {
		t.Fatal("expected an unrelated location to reject")
	}
}

func TestMatchActiveSkipsInactive(t *testing.T) {
	property := sampleProperty()
	alerts := []models.PropertyAlert{
		{Active: true},
		{Active: false},
		{Active: true, Bedrooms: intPtr(5)},
	}

	matched := MatchActive(alerts, property)
	if len(matched) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(matched))
	}
}
