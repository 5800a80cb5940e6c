package enums

import "fmt"

// PropertyType maps to the property_type enum in Postgres.
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeLand       PropertyType = "land"
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypeOffice     PropertyType = "office"
	PropertyTypeRooms      PropertyType = "rooms"
	PropertyTypeEventHall  PropertyType = "event_hall"
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeDuplex     PropertyType = "duplex"
)

var validPropertyTypes = []PropertyType{
	PropertyTypeHouse,
	PropertyTypeApartment,
	PropertyTypeLand,
	PropertyTypeCommercial,
	PropertyTypeOffice,
	PropertyTypeRooms,
	PropertyTypeEventHall,
	PropertyTypeVilla,
	PropertyTypeDuplex,
}

func (p PropertyType) IsValid() bool {
	for _, candidate := range validPropertyTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePropertyType converts raw strings into PropertyType.
func ParsePropertyType(value string) (PropertyType, error) {
	for _, candidate := range validPropertyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid property type %q", value)
}

// TransactionKind distinguishes rental listings from sales.
type TransactionKind string

const (
	TransactionKindRent TransactionKind = "rent"
	TransactionKindSale TransactionKind = "sale"
)

func (t TransactionKind) IsValid() bool {
	return t == TransactionKindRent || t == TransactionKindSale
}

// ParseTransactionKind converts raw strings into TransactionKind.
func ParseTransactionKind(value string) (TransactionKind, error) {
	switch TransactionKind(value) {
	case TransactionKindRent:
		return TransactionKindRent, nil
	case TransactionKindSale:
		return TransactionKindSale, nil
	}
	return "", fmt.Errorf("invalid transaction kind %q", value)
}
