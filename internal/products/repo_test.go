package products

import "testing"

func TestParseSortFieldDefaults(t *testing.T) {
	field, err := ParseSortField("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if field != SortByCreatedAt {
		t.Fatalf("expected created_at default, got %s", field)
	}
}

func TestParseSortFieldWhitelist(t *testing.T) {
	for _, valid := range []string{"price", "name", "created_at", "PRICE"} {
		if _, err := ParseSortField(valid); err != nil {
			t.Fatalf("expected %q accepted, got %v", valid, err)
		}
	}

	// anything outside the whitelist is rejected before reaching ORDER BY
	for _, invalid := range []string{"stock", "id; DROP TABLE", "seller_id"} {
		if _, err := ParseSortField(invalid); err == nil {
			t.Fatalf("expected %q rejected", invalid)
		}
	}
}
