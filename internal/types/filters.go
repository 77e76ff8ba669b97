package types

// SortMode selects exactly one comparator for course ordering.
type SortMode string

// Supported sort modes. All orders are descending unless noted.
const (
	SortAIScore      SortMode = "ai-score"
	SortMarketDemand SortMode = "market-demand"
	SortSalaryImpact SortMode = "salary-impact"
	SortTrending     SortMode = "trending"
	SortRating       SortMode = "rating"
	SortPriceLow     SortMode = "price-low"  // ascending
	SortPriceHigh    SortMode = "price-high"
	SortDuration     SortMode = "duration" // ascending
)

// ValidSortMode reports whether m is one of the supported sort modes.
func ValidSortMode(m SortMode) bool {
	switch m {
	case SortAIScore, SortMarketDemand, SortSalaryImpact, SortTrending,
		SortRating, SortPriceLow, SortPriceHigh, SortDuration:
		return true
	}
	return false
}

// FilterState holds the user-selected facet values and range bounds for course
// filtering. An empty facet slice means the facet is not constrained. The zero
// value of a range bound is interpreted by DefaultFilterState, not here.
type FilterState struct {
	Providers  []string `json:"providers,omitempty"`
	Levels     []string `json:"levels,omitempty"`
	Priorities []string `json:"priorities,omitempty"`
	Tags       []string `json:"tags,omitempty"`

	MinDuration int     `json:"min_duration"` // hours
	MaxDuration int     `json:"max_duration"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`

	SortBy SortMode `json:"sort_by"`
}

// Default range bounds: wide open so a fresh filter state matches everything.
const (
	DefaultMaxDuration = 1000
	DefaultMaxPrice    = 10000
)

// DefaultFilterState returns a FilterState with no facet constraints, open
// ranges, and ai-score ordering.
func DefaultFilterState() FilterState {
	return FilterState{
		MaxDuration: DefaultMaxDuration,
		MaxPrice:    DefaultMaxPrice,
		SortBy:      SortAIScore,
	}
}
