package filter

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/hugr-lab/tabprobe/table"
)

// SelectColumns returns a table holding only the given columns, in the given order.
// Row count and row order are unchanged; column types carry over.
//
// Returns *table.UnknownColumnError if a name is not in the table and
// *table.InvalidParameterError if a name is listed twice.
func SelectColumns(t *table.Table, columns []string) (*table.Table, error) {
	schema := t.Schema()
	batch := t.RecordBatch()

	fields := make([]arrow.Field, 0, len(columns))
	arrays := make([]arrow.Array, 0, len(columns))
	seen := make(map[string]struct{}, len(columns))
	for _, name := range columns {
		if _, dup := seen[name]; dup {
			return nil, table.InvalidParameter("fields", "duplicate column %q", name)
		}
		seen[name] = struct{}{}

		idx, err := t.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, schema.Field(idx))
		arrays = append(arrays, batch.Column(idx))
	}

	// Arrays are immutable; the projection shares them by reference count.
	meta := schema.Metadata()
	projected := array.NewRecordBatch(arrow.NewSchema(fields, &meta), arrays, batch.NumRows())
	defer projected.Release()

	return table.FromRecordBatch(projected, table.WithAllocator(t.Allocator()))
}
