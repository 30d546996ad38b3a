package dto

// SortOrder is the two-state rating sort toggle. It is passed explicitly
// into each search call and echoed back in the response envelope so the
// client owns the toggle state, not the engine.
type SortOrder string

const (
	SortDescending SortOrder = "desc" // initial/default: highest rating first
	SortAscending  SortOrder = "asc"
)

// Toggle flips the order. There are no other states.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// ParseSortOrder maps a query parameter to a SortOrder, falling back to
// the descending default for anything unrecognized.
func ParseSortOrder(s string) SortOrder {
	if s == string(SortAscending) {
		return SortAscending
	}
	return SortDescending
}

// SearchFilters carries the catalog filter predicate inputs.
type SearchFilters struct {
	Query      string   // substring, case-insensitive, against name/address/description
	ShopType   string   // "all" disables the filter
	Categories []string // empty disables; otherwise at least one must match
}
