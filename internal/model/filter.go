package model

// SortOrder controls the price ordering of query results.
type SortOrder string

// Sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterState is the set of criteria applied when listing properties.
// Nil price bounds mean "unbounded"; dates use YYYY-MM-DD.
type FilterState struct {
	MinPrice      *float64
	MaxPrice      *float64
	SearchQuery   string
	Provincia     string
	Canton        string
	TipoBien      TipoBien
	Juzgado       string
	MinDate       string
	MaxDate       string
	SortOrder     SortOrder
	OnlyFavorites bool
}

// DefaultFilters returns the initial filter state: everything, cheapest first.
func DefaultFilters() FilterState {
	return FilterState{SortOrder: SortAsc}
}
