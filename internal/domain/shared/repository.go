package shared

import "maps"

// Page size bounds shared by list endpoints
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter describes one page of a tenant-scoped listing. Criteria holds
// equality filters keyed by the name the repository understands.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Criteria map[string]any
}

// DefaultFilter returns the first page, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// Where returns a copy of f with one more criterion. f is not modified.
func (f Filter) Where(key string, value any) Filter {
	criteria := make(map[string]any, len(f.Criteria)+1)
	maps.Copy(criteria, f.Criteria)
	criteria[key] = value
	f.Criteria = criteria
	return f
}

// Offset returns the row offset for the current page
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
