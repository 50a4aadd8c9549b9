// Package reconcile is the difference engine of the stock-take service.
//
// It reconciles two sources: physically counted quantities (keyed by item)
// and the system of record (the tool registry). The engine is generic over
// the item type; a Source tells it how to key an item, which quantity is the
// recorded one and how the free-text filter matches.
//
// # Semantics
//
//   - Difference = CountedQty - SystemQty.
//   - Results are recomputed from the inputs on every call; nothing is cached,
//     so a changed count or registry quantity is visible immediately.
//   - Zero-difference results stay in the view unless MinAbs > 0.
//   - Ordering is by |Difference| descending with ties broken by key, which
//     keeps output deterministic.
//
// # Planning
//
// Plan converts a filtered view into correction actions (one per item with a
// non-zero difference), the basis of bulk correction proposals.
//
// # Usage Example
//
//	results := reconcile.Compute(source, toolsByID, countsByID, reconcile.Filter{MinAbs: 1})
//	summary := reconcile.Summarize(results)
//	actions := reconcile.Plan(results, pending, "")
package reconcile
