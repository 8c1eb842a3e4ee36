package sample

import (
	"github.com/hugr-lab/tabprobe/filter"
	"github.com/hugr-lab/tabprobe/table"
)

// Range returns every row whose column value lies in [low, high].
// It is filter.Range under its sampling name: there is no size cap.
func Range(t *table.Table, column string, low, high any) (*table.Table, error) {
	return filter.Range(t, column, low, high)
}

// Kind selects the sampling strategy of a Spec.
type Kind uint8

const (
	// KindUniform draws Count rows uniformly without replacement.
	KindUniform Kind = iota + 1
	// KindGrouped draws up to PerGroup rows for each value of GroupKey.
	KindGrouped
	// KindRange returns the rows whose Column value lies in [Low, High].
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindUniform:
		return "uniform"
	case KindGrouped:
		return "grouped"
	case KindRange:
		return "range"
	default:
		return "unknown"
	}
}

// Spec describes one sampling request. Only the fields of its Kind are read.
type Spec struct {
	Kind Kind

	// KindUniform
	Count int
	Seed  *int64

	// KindGrouped (Seed applies as well)
	GroupKey string
	PerGroup int

	// KindRange
	Column string
	Low    any
	High   any
}

// Uniform returns a uniform sampling spec. seed may be nil.
func Uniform(count int, seed *int64) Spec {
	return Spec{Kind: KindUniform, Count: count, Seed: seed}
}

// ByGroup returns a grouped sampling spec.
func ByGroup(groupKey string, perGroup int, seed *int64) Spec {
	return Spec{Kind: KindGrouped, GroupKey: groupKey, PerGroup: perGroup, Seed: seed}
}

// InRange returns a range sampling spec.
func InRange(column string, low, high any) Spec {
	return Spec{Kind: KindRange, Column: column, Low: low, High: high}
}

// Apply runs the sampling strategy described by spec.
func Apply(t *table.Table, spec Spec) (*table.Table, error) {
	var opts []Option
	if spec.Seed != nil {
		opts = append(opts, WithSeed(*spec.Seed))
	}

	switch spec.Kind {
	case KindUniform:
		return Random(t, spec.Count, opts...)
	case KindGrouped:
		return Grouped(t, spec.GroupKey, spec.PerGroup, opts...)
	case KindRange:
		return Range(t, spec.Column, spec.Low, spec.High)
	default:
		return nil, table.InvalidParameter("kind", "unknown sampling kind %d", spec.Kind)
	}
}
