package reconcile

// Source tells the engine how to read an item of the system of record.
// Implementations decide which quantity counts as "system" and which fields
// the free-text filter looks at.
type Source[T any] interface {
	// Key returns the unique identifier of an item.
	Key(item T) string
	// SystemQty returns the quantity recorded for the item.
	SystemQty(item T) int
	// Matches reports whether the item matches a lowercase, trimmed needle.
	Matches(item T, needle string) bool
}

// Result is the reconciliation output for a single item.
type Result[T any] struct {
	// Key is the item identifier.
	Key string `json:"key"`
	// Item is the system-of-record entry; zero when InSystem is false.
	Item T `json:"item"`
	// InSystem is false for counted keys the system of record no longer knows.
	InSystem bool `json:"in_system"`
	// Counted is false for items included only through Filter.IncludeUncounted.
	Counted bool `json:"counted"`
	// SystemQty is the recorded quantity.
	SystemQty int `json:"system_qty"`
	// CountedQty is the physically counted quantity.
	CountedQty int `json:"counted_qty"`
	// Difference is CountedQty - SystemQty.
	Difference int `json:"difference"`
}

// Filter narrows a reconciliation view. Query and MinAbs are applied together.
type Filter struct {
	// Query is a case-insensitive free-text needle.
	Query string
	// MinAbs keeps only results with |Difference| >= MinAbs.
	MinAbs int
	// IncludeUncounted adds every system item that has no count (counted as 0).
	IncludeUncounted bool
}

// Summary provides aggregate statistics for a set of results.
type Summary struct {
	// TotalItems is the number of results.
	TotalItems int `json:"total_items"`
	// Matching counts results with no difference.
	Matching int `json:"matching"`
	// Surplus counts results with more counted than recorded.
	Surplus int `json:"surplus"`
	// Shortage counts results with fewer counted than recorded.
	Shortage int `json:"shortage"`
	// Uncounted counts system items without a count.
	Uncounted int `json:"uncounted"`
	// Unknown counts counted keys missing from the system of record.
	Unknown int `json:"unknown"`
	// NetDifference is the sum of all differences.
	NetDifference int `json:"net_difference"`
}

// Action is a planned correction for one item.
type Action struct {
	// Key is the item identifier.
	Key string `json:"key"`
	// DifferenceQty is the signed delta to apply to the system quantity.
	DifferenceQty int `json:"difference_qty"`
	// Reason explains why the action is planned.
	Reason string `json:"reason"`
}
