package filter

import (
	"github.com/hugr-lab/tabprobe/table"
)

// RangeSpec selects rows whose Column value lies in [Low, High].
type RangeSpec struct {
	Column string
	Low    any
	High   any
}

// Range is ByRange with the spec fields passed positionally.
func Range(t *table.Table, column string, low, high any) (*table.Table, error) {
	return ByRange(t, RangeSpec{Column: column, Low: low, High: high})
}

// ByRange returns the rows where Low <= value <= High under the column's
// natural ordering: numeric by value, text lexicographically by bytes.
// Null values never match. Low > High yields an empty table.
//
// Returns *table.UnknownColumnError for a missing column,
// *table.UnsupportedTypeError for a boolean or mixed column, and
// *table.InvalidParameterError when a bound is nil or of another kind than the column.
func ByRange(t *table.Table, spec RangeSpec) (*table.Table, error) {
	idx, err := t.ColumnIndex(spec.Column)
	if err != nil {
		return nil, err
	}
	col := t.Column(idx)
	if !col.Type.Orderable() {
		return nil, &table.UnsupportedTypeError{Column: col.Name, Type: col.Type, Op: "range filter"}
	}

	low, err := rangeBound("min_value", spec.Low, col)
	if err != nil {
		return nil, err
	}
	high, err := rangeBound("max_value", spec.High, col)
	if err != nil {
		return nil, err
	}
	if c, ok := table.Compare(low, high); !ok {
		return nil, table.InvalidParameter("max_value", "bounds %v and %v are not comparable", low, high)
	} else if c > 0 {
		return t.Take(nil)
	}

	var rows []int
	for r := 0; r < t.NumRows(); r++ {
		v := t.Value(idx, r)
		if v == nil {
			continue
		}
		lo, _ := table.Compare(low, v)
		hi, _ := table.Compare(v, high)
		if lo <= 0 && hi <= 0 {
			rows = append(rows, r)
		}
	}
	return t.Take(rows)
}

// rangeBound normalizes a bound and checks it against the column type.
// A null column accepts any orderable bound.
func rangeBound(param string, v any, col table.Column) (any, error) {
	nv, err := table.Normalize(v)
	if err != nil {
		return nil, err
	}
	kind := table.KindOf(nv)
	switch {
	case nv == nil:
		return nil, table.InvalidParameter(param, "bound for column %q is null", col.Name)
	case kind != table.TypeNumeric && kind != table.TypeText:
		return nil, table.InvalidParameter(param, "bound %v is not orderable", nv)
	case col.Type != table.TypeNull && kind != col.Type:
		return nil, table.InvalidParameter(param, "%s bound for %s column %q", kind, col.Type, col.Name)
	}
	return nv, nil
}
