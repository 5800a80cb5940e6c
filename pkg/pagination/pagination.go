package pagination

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 10
	// MaxPageSize caps how many rows any page can request.
	MaxPageSize = 100
)

// Page holds normalized page/size inputs from controllers.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page number and size to valid values. The feed scores
// every candidate in memory before slicing, so there is no cursor variant.
func Normalize(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Bounds returns the half-open [start, end) slice bounds for a list of total
// elements. Out-of-range pages collapse to an empty range, never an error.
func (p Page) Bounds(total int) (int, int) {
	start := (p.Number - 1) * p.Size
	if start >= total {
		return total, total
	}
	end := start + p.Size
	if end > total {
		end = total
	}
	return start, end
}

// PageCount returns how many pages a list of total elements spans.
func (p Page) PageCount(total int) int {
	if total == 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}
