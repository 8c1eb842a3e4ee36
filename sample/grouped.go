package sample

import (
	"github.com/hugr-lab/tabprobe/table"
)

// Grouped draws up to perGroup rows from every distinct value of groupKey.
//
// Partitions follow the first-seen order of their key, and all rows with a
// null key form one partition. Within a partition rows come back in draw
// order. A single generator drives every partition, so a seeded call is
// reproducible. perGroup <= 0 yields an empty table.
//
// Returns *table.UnknownColumnError if groupKey is not a column.
func Grouped(t *table.Table, groupKey string, perGroup int, opts ...Option) (*table.Table, error) {
	cfg := applyOptions(opts)

	col, err := t.ColumnIndex(groupKey)
	if err != nil {
		return nil, err
	}
	if perGroup <= 0 {
		return t.Take(nil)
	}

	rng := cfg.source()
	var rows []int
	for _, part := range partition(t, col) {
		rows = append(rows, draw(rng, part, perGroup)...)
	}
	return t.Take(rows)
}

// partition groups row indices by the type-aware key of column col, in
// first-seen key order.
func partition(t *table.Table, col int) [][]int {
	index := make(map[string]int)
	var parts [][]int
	for r := 0; r < t.NumRows(); r++ {
		key := table.Key(t.Value(col, r))
		p, ok := index[key]
		if !ok {
			p = len(parts)
			index[key] = p
			parts = append(parts, nil)
		}
		parts[p] = append(parts[p], r)
	}
	return parts
}
