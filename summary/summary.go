// Package summary computes per-column statistics and head/tail samples of a table.
//
//	report, err := summary.Summarize(tbl, summary.WithSampleSize(5))
//	if err != nil {
//	    return err
//	}
//	score, _ := report.Column("score")
//
// Numeric statistics (min, max, mean, sample standard deviation) are nil for
// non-numeric columns and whenever the result would not be a finite number,
// so a report always serializes cleanly to JSON or msgpack.
package summary

import (
	"github.com/hugr-lab/tabprobe/table"
)

// DefaultSampleSize is the number of head and tail rows included by default.
const DefaultSampleSize = 10

// Option configures Summarize.
type Option func(*config)

type config struct {
	sampleSize int
}

// WithSampleSize sets how many rows the head and tail samples hold.
func WithSampleSize(n int) Option {
	return func(c *config) {
		c.sampleSize = n
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{sampleSize: DefaultSampleSize}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Summarize builds the report for t.
// Returns *table.InvalidParameterError for a negative sample size.
func Summarize(t *table.Table, opts ...Option) (*Report, error) {
	cfg := applyOptions(opts)
	if cfg.sampleSize < 0 {
		return nil, table.InvalidParameter("sample_size", "must be >= 0, got %d", cfg.sampleSize)
	}

	n := t.NumRows()
	report := &Report{
		RowCount: n,
		Columns:  make([]ColumnStats, t.NumCols()),
	}
	for c := range report.Columns {
		report.Columns[c] = columnStats(t, c)
	}

	k := min(cfg.sampleSize, n)
	report.Head = make([]table.Record, 0, k)
	report.Tail = make([]table.Record, 0, k)
	for r := 0; r < k; r++ {
		report.Head = append(report.Head, t.Row(r))
	}
	for r := n - k; r < n; r++ {
		report.Tail = append(report.Tail, t.Row(r))
	}
	return report, nil
}
