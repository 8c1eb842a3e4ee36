package summary

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/hugr-lab/tabprobe/table"
)

// moments accumulates count, extrema, mean and variance in one pass (Welford).
type moments struct {
	n        int
	mean, m2 float64
	min, max float64
}

func (m *moments) add(x float64) {
	m.n++
	if m.n == 1 {
		m.min, m.max = x, x
	} else {
		m.min = math.Min(m.min, x)
		m.max = math.Max(m.max, x)
	}
	delta := x - m.mean
	m.mean += delta / float64(m.n)
	m.m2 += delta * (x - m.mean)
}

func (m *moments) fill(st *ColumnStats) {
	if m.n == 0 {
		return
	}
	st.Min = finite(m.min)
	st.Max = finite(m.max)
	st.Mean = finite(m.mean)
	if m.n >= 2 {
		st.StdDev = finite(math.Sqrt(m.m2 / float64(m.n-1)))
	}
}

// finite returns nil for NaN and infinities.
func finite(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}

// frequencies counts values by type-aware key and remembers first-seen order.
type frequencies struct {
	counts map[string]int
	order  []string
	values map[string]any
}

func newFrequencies() *frequencies {
	return &frequencies{counts: make(map[string]int), values: make(map[string]any)}
}

func (f *frequencies) add(v any) {
	key := table.Key(v)
	if _, ok := f.counts[key]; !ok {
		f.order = append(f.order, key)
		f.values[key] = v
	}
	f.counts[key]++
}

// mode returns the most frequent value; ties go to the value seen first.
func (f *frequencies) mode() any {
	var (
		best  any
		count int
	)
	for _, key := range f.order {
		if c := f.counts[key]; c > count {
			best, count = f.values[key], c
		}
	}
	return best
}

// columnStats computes the stats of column c.
func columnStats(t *table.Table, c int) ColumnStats {
	col := t.Column(c)
	st := ColumnStats{Name: col.Name, Type: col.Type}

	freq := newFrequencies()
	var m moments
	arr := t.RecordBatch().Column(c)

	for r := 0; r < t.NumRows(); r++ {
		if t.IsNull(c, r) {
			st.NullCount++
			continue
		}
		switch a := arr.(type) {
		case *array.Int64:
			v := a.Value(r)
			m.add(float64(v))
			freq.add(v)
		case *array.Float64:
			v := a.Value(r)
			m.add(v)
			freq.add(v)
		default:
			freq.add(t.Value(c, r))
		}
	}

	st.Distinct = len(freq.order)
	st.Mode = freq.mode()
	if col.Type == table.TypeNumeric {
		m.fill(&st)
	}
	return st
}
