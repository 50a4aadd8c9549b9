package reconcile

import (
	"sort"
	"strings"
)

// Compute reconciles counted quantities against the system of record.
//
// The key set is the union of counted keys and, when f.IncludeUncounted is
// set, all system keys. Nothing is cached: every call reflects its inputs.
// Results are ordered by |Difference| descending, ties by Key ascending.
func Compute[T any](src Source[T], system map[string]T, counted map[string]int, f Filter) []Result[T] {
	union := buildUnion(system, counted, f.IncludeUncounted)
	needle := strings.ToLower(strings.TrimSpace(f.Query))

	results := make([]Result[T], 0, len(union))
	for key := range union {
		result := buildResult(src, key, system, counted)
		if !keep(src, result, needle, f.MinAbs) {
			continue
		}
		results = append(results, result)
	}

	Sort(results)
	return results
}

// Sort orders results by |Difference| descending, then Key ascending.
func Sort[T any](results []Result[T]) {
	sort.SliceStable(results, func(i, j int) bool {
		ai, aj := abs(results[i].Difference), abs(results[j].Difference)
		if ai != aj {
			return ai > aj
		}
		return results[i].Key < results[j].Key
	})
}

// Summarize aggregates results.
func Summarize[T any](results []Result[T]) Summary {
	s := Summary{TotalItems: len(results)}
	for _, r := range results {
		switch {
		case r.Difference > 0:
			s.Surplus++
		case r.Difference < 0:
			s.Shortage++
		default:
			s.Matching++
		}
		if !r.Counted {
			s.Uncounted++
		}
		if !r.InSystem {
			s.Unknown++
		}
		s.NetDifference += r.Difference
	}
	return s
}

func buildUnion[T any](system map[string]T, counted map[string]int, includeUncounted bool) map[string]struct{} {
	union := make(map[string]struct{}, len(counted))
	for key := range counted {
		union[key] = struct{}{}
	}
	if includeUncounted {
		for key := range system {
			union[key] = struct{}{}
		}
	}
	return union
}

func buildResult[T any](src Source[T], key string, system map[string]T, counted map[string]int) Result[T] {
	item, inSystem := system[key]
	qty, isCounted := counted[key]

	result := Result[T]{
		Key:        key,
		InSystem:   inSystem,
		Counted:    isCounted,
		CountedQty: qty,
	}
	if inSystem {
		result.Item = item
		result.SystemQty = src.SystemQty(item)
	}
	result.Difference = result.CountedQty - result.SystemQty
	return result
}

func keep[T any](src Source[T], r Result[T], needle string, minAbs int) bool {
	if minAbs > 0 && abs(r.Difference) < minAbs {
		return false
	}
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Key), needle) {
		return true
	}
	return r.InSystem && src.Matches(r.Item, needle)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
