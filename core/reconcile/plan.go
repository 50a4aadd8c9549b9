package reconcile

import "fmt"

// Plan turns results into correction actions.
//
// Items without a difference, items unknown to the system of record and keys
// present in skip (typically items with a pending correction) get no action.
// The order of results is preserved.
func Plan[T any](results []Result[T], skip map[string]bool, reason string) []Action {
	var actions []Action
	for _, r := range results {
		if r.Difference == 0 || !r.InSystem || skip[r.Key] {
			continue
		}
		why := reason
		if why == "" {
			why = fmt.Sprintf("stock-take: counted %d, recorded %d", r.CountedQty, r.SystemQty)
		}
		actions = append(actions, Action{
			Key:           r.Key,
			DifferenceQty: r.Difference,
			Reason:        why,
		})
	}
	return actions
}
