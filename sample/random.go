package sample

import (
	"math/rand/v2"

	"github.com/hugr-lab/tabprobe/table"
)

// Random selects min(count, rows) distinct rows uniformly without
// replacement. Rows come back in draw order. count <= 0 yields an empty table.
func Random(t *table.Table, count int, opts ...Option) (*table.Table, error) {
	cfg := applyOptions(opts)

	if count <= 0 {
		return t.Take(nil)
	}

	rows := make([]int, t.NumRows())
	for i := range rows {
		rows[i] = i
	}
	return t.Take(draw(cfg.source(), rows, count))
}

// draw runs a partial Fisher-Yates shuffle over rows in place and returns
// the first min(k, len(rows)) positions.
func draw(rng *rand.Rand, rows []int, k int) []int {
	k = min(k, len(rows))
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(rows)-i)
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows[:k]
}
