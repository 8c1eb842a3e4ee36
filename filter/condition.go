package filter

import (
	"fmt"
	"slices"

	"github.com/hugr-lab/tabprobe/table"
)

// Condition maps column names to required values. Entries are ANDed.
type Condition map[string]any

type equality struct {
	col int
	key string
}

// ByCondition returns the rows where every column in cond equals its value.
//
// Equality is type-aware: numbers compare by value (1 == 1.0), text by exact
// match, booleans by value. A value of a different kind than the column
// holds never matches, and a nil value matches nothing. An empty condition
// returns t itself, retained.
//
// Returns *table.UnknownColumnError if cond names a column the table lacks.
func ByCondition(t *table.Table, cond Condition) (*table.Table, error) {
	if len(cond) == 0 {
		t.Retain()
		return t, nil
	}

	preds := make([]equality, 0, len(cond))
	matchNone := false
	for _, name := range cond.columns() {
		idx, err := t.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		v, err := table.Normalize(cond[name])
		if err != nil {
			return nil, fmt.Errorf("condition on %q: %w", name, err)
		}
		if v == nil {
			matchNone = true
			continue
		}
		preds = append(preds, equality{col: idx, key: table.Key(v)})
	}
	if matchNone {
		return t.Take(nil)
	}

	var rows []int
	for r := 0; r < t.NumRows(); r++ {
		if matches(t, r, preds) {
			rows = append(rows, r)
		}
	}
	return t.Take(rows)
}

func matches(t *table.Table, row int, preds []equality) bool {
	for _, p := range preds {
		v := t.Value(p.col, row)
		if v == nil || table.Key(v) != p.key {
			return false
		}
	}
	return true
}

// columns returns the condition's column names in sorted order, so
// validation errors and rendered SQL are deterministic.
func (c Condition) columns() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
