package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	page := Normalize(0, 0)
	if page.Number != 1 {
		t.Fatalf("expected page 1, got %d", page.Number)
	}
	if page.Size != DefaultPageSize {
		t.Fatalf("expected default size, got %d", page.Size)
	}
}

func TestNormalizeCapsSize(t *testing.T) {
	page := Normalize(2, MaxPageSize+50)
	if page.Size != MaxPageSize {
		t.Fatalf("expected capped size %d, got %d", MaxPageSize, page.Size)
	}
}

func TestBounds(t *testing.T) {
	cases := []struct {
		name       string
		number     int
		size       int
		total      int
		start, end int
	}{
		{"first page", 1, 10, 15, 0, 10},
		{"tail page", 2, 10, 15, 10, 15},
		{"out of range", 4, 10, 15, 15, 15},
		{"empty input", 1, 10, 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := Normalize(tc.number, tc.size).Bounds(tc.total)
			if start != tc.start || end != tc.end {
				t.Fatalf("expected [%d,%d), got [%d,%d)", tc.start, tc.end, start, end)
			}
		})
	}
}

func TestPageCount(t *testing.T) {
	page := Normalize(1, 10)
	if got := page.PageCount(15); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}
	if got := page.PageCount(0); got != 0 {
		t.Fatalf("expected 0 pages, got %d", got)
	}
	if got := page.PageCount(20); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}
}
