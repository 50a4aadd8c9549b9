package reconcile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id   string
	name string
	qty  int
}

type itemSource struct{}

func (itemSource) Key(i item) string { return i.id }
func (itemSource) SystemQty(i item) int { return i.qty }
func (itemSource) Matches(i item, needle string) bool {
	return strings.Contains(strings.ToLower(i.name), needle)
}

func system(items ...item) map[string]item {
	out := make(map[string]item, len(items))
	for _, i := range items {
		out[i.id] = i
	}
	return out
}

func keys(results []Result[item]) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Key)
	}
	return out
}

func TestCompute(t *testing.T) {
	sys := system(
		item{id: "t1", name: "Drill D-1234", qty: 10},
		item{id: "t2", name: "Safety Helmet", qty: 5},
		item{id: "t3", name: "Gloves", qty: 3},
		item{id: "t4", name: "Hammer", qty: 2},
	)
	counted := map[string]int{"t1": 8, "t2": 5, "t4": 6, "gone": 1}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "counted only ordered by magnitude", filter: Filter{}, want: []string{"t4", "t1", "gone", "t2"}},
		{name: "min abs drops matching rows", filter: Filter{MinAbs: 1}, want: []string{"t4", "t1", "gone"}},
		{name: "min abs two", filter: Filter{MinAbs: 2}, want: []string{"t4", "t1"}},
		{name: "free text is case insensitive", filter: Filter{Query: "  HELMET "}, want: []string{"t2"}},
		{name: "free text matches key", filter: Filter{Query: "gon"}, want: []string{"gone"}},
		{name: "filters combine", filter: Filter{Query: "helmet", MinAbs: 1}, want: []string{}},
		{name: "include uncounted", filter: Filter{IncludeUncounted: true}, want: []string{"t4", "t3", "t1", "gone", "t2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Compute[item](itemSource{}, sys, counted, tt.filter)
			assert.Equal(t, tt.want, keys(results))
		})
	}
}

func TestCompute_Values(t *testing.T) {
	sys := system(item{id: "t1", name: "Drill", qty: 10}, item{id: "t3", name: "Gloves", qty: 3})
	results := Compute[item](itemSource{}, sys, map[string]int{"t1": 8, "gone": 2}, Filter{IncludeUncounted: true})
	require.Len(t, results, 3)

	byKey := map[string]Result[item]{}
	for _, r := range results {
		byKey[r.Key] = r
	}

	drill := byKey["t1"]
	assert.Equal(t, 10, drill.SystemQty)
	assert.Equal(t, 8, drill.CountedQty)
	assert.Equal(t, -2, drill.Difference)
	assert.True(t, drill.Counted)
	assert.True(t, drill.InSystem)

	gloves := byKey["t3"]
	assert.False(t, gloves.Counted)
	assert.Equal(t, -3, gloves.Difference)

	gone := byKey["gone"]
	assert.False(t, gone.InSystem)
	assert.Equal(t, 0, gone.SystemQty)
	assert.Equal(t, 2, gone.Difference)
}

func TestCompute_TiesByKey(t *testing.T) {
	sys := system(item{id: "b", qty: 1}, item{id: "a", qty: 3}, item{id: "c", qty: 1})
	counted := map[string]int{"b": 3, "a": 1, "c": 1}

	for i := 0; i < 5; i++ {
		assert.Equal(t, []string{"a", "b", "c"}, keys(Compute[item](itemSource{}, sys, counted, Filter{})))
	}
}

func TestCompute_Empty(t *testing.T) {
	results := Compute[item](itemSource{}, nil, nil, Filter{})
	assert.Empty(t, results)
	assert.Equal(t, Summary{}, Summarize(results))
}

func TestSummarize(t *testing.T) {
	sys := system(item{id: "t1", qty: 10}, item{id: "t2", qty: 5}, item{id: "t3", qty: 3})
	results := Compute[item](itemSource{}, sys, map[string]int{"t1": 8, "t2": 5, "x": 4}, Filter{IncludeUncounted: true})

	s := Summarize(results)
	assert.Equal(t, 4, s.TotalItems)
	assert.Equal(t, 1, s.Matching)
	assert.Equal(t, 1, s.Surplus)
	assert.Equal(t, 2, s.Shortage)
	assert.Equal(t, 1, s.Uncounted)
	assert.Equal(t, 1, s.Unknown)
	assert.Equal(t, -2+0+4-3, s.NetDifference)
}
