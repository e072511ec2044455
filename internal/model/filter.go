package model

// FilterOperator names a comparison applied by a search filter.
type FilterOperator string

const (
	OpEqual          FilterOperator = "eq"
	OpNotEqual       FilterOperator = "ne"
	OpGreaterThan    FilterOperator = "gt"
	OpGreaterOrEqual FilterOperator = "gte"
	OpLessThan       FilterOperator = "lt"
	OpLessOrEqual    FilterOperator = "lte"
	OpContains       FilterOperator = "contains"
)

// SearchFilter is one declarative criterion narrowing a user search.
// Filters supplied together are combined with logical AND.
type SearchFilter struct {
	Field    string         `json:"field"`
	Operator FilterOperator `json:"operator"`
	Value    string         `json:"value"`
}
