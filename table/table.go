// Package table provides the immutable, column-typed table the engine operates on.
//
// A Table is stored column by column in an Arrow record batch. The public
// contract is row-oriented: tables are built from records and read back as
// records, but every per-column aggregation runs over the Arrow arrays.
//
// Each column gets a Type (null, numeric, text, boolean, mixed). The type is
// inferred once at construction from the values observed in that column and
// is stored in the Arrow field metadata.
//
// Tables are never mutated. Operations in the filter, sample and summary
// packages return new tables. Tables hold reference-counted Arrow memory:
// call Release on every table you receive.
//
//	tbl, err := table.FromRecords([]table.Record{
//	    {"id": 1, "grade": "A"},
//	    {"id": 2, "grade": "B"},
//	}, table.WithColumns("id", "grade"))
//	if err != nil {
//	    return err
//	}
//	defer tbl.Release()
package table

import (
	"fmt"
	"slices"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Record is one row in row-oriented form: column name to scalar value.
type Record map[string]any

// Option configures table construction.
type Option func(*options)

type options struct {
	mem     memory.Allocator
	columns []string
}

// WithAllocator sets the Arrow allocator for the table's buffers.
// Tables derived from it by engine operations reuse the same allocator.
func WithAllocator(mem memory.Allocator) Option {
	return func(o *options) {
		o.mem = mem
	}
}

// WithColumns fixes the column order for FromRecords and ReadJSON.
// Records carrying a key outside this list are rejected.
func WithColumns(columns ...string) Option {
	return func(o *options) {
		o.columns = columns
	}
}

func applyOptions(opts []Option) *options {
	o := &options{mem: memory.DefaultAllocator}
	for _, opt := range opts {
		opt(o)
	}
	if o.mem == nil {
		o.mem = memory.DefaultAllocator
	}
	return o
}

// Table is an immutable, column-typed, row-ordered collection of uniform records.
type Table struct {
	mem     memory.Allocator
	batch   arrow.RecordBatch
	columns []Column
	index   map[string]int
}

// New builds a table from an ordered header and positional rows.
// Every row must have exactly len(columns) values.
func New(columns []string, rows [][]any, opts ...Option) (*Table, error) {
	o := applyOptions(opts)

	if _, err := indexColumns(columns); err != nil {
		return nil, err
	}

	values := make([][]any, len(columns))
	for c := range values {
		values[c] = make([]any, len(rows))
	}
	for r, row := range rows {
		if len(row) != len(columns) {
			return nil, InvalidParameter("rows", "row %d has %d values, want %d", r, len(row), len(columns))
		}
		for c, v := range row {
			nv, err := Normalize(v)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", r, columns[c], err)
			}
			values[c][r] = nv
		}
	}

	return build(o.mem, columns, values, len(rows))
}

// FromRecords builds a table from row-oriented records.
//
// Without WithColumns the column order is the order in which keys are first
// seen across records; keys within a single record are visited in sorted
// order since Go maps are unordered. A key missing from a record is null.
func FromRecords(records []Record, opts ...Option) (*Table, error) {
	o := applyOptions(opts)

	columns := o.columns
	if columns == nil {
		columns = recordColumns(records)
	} else {
		known := make(map[string]struct{}, len(columns))
		for _, name := range columns {
			known[name] = struct{}{}
		}
		for i, rec := range records {
			for key := range rec {
				if _, ok := known[key]; !ok {
					return nil, InvalidParameter("records", "record %d has column %q outside the column list", i, key)
				}
			}
		}
	}

	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(columns))
		for c, name := range columns {
			row[c] = rec[name]
		}
		rows[i] = row
	}

	return New(columns, rows, WithAllocator(o.mem))
}

// FromRecordBatch wraps an existing Arrow record batch. The batch is
// retained; the caller keeps its own reference.
//
// Column types come from the tabprobe.type field metadata when present and
// are otherwise derived from the Arrow type. Only the storage types this
// package produces are accepted (null, int64, float64, utf8, bool).
func FromRecordBatch(batch arrow.RecordBatch, opts ...Option) (*Table, error) {
	o := applyOptions(opts)

	schema := batch.Schema()
	names := make([]string, schema.NumFields())
	columns := make([]Column, schema.NumFields())
	for i, field := range schema.Fields() {
		names[i] = field.Name
		typ, ok := typeFromArrow(field.Type)
		if !ok {
			return nil, &UnsupportedTypeError{Column: field.Name, Type: TypeMixed, Op: "load " + field.Type.String()}
		}
		if idx := field.Metadata.FindKey(MetadataTypeKey); idx >= 0 {
			parsed, err := ParseType(field.Metadata.Values()[idx])
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", field.Name, err)
			}
			typ = parsed
		}
		columns[i] = Column{Name: field.Name, Type: typ}
	}

	index, err := indexColumns(names)
	if err != nil {
		return nil, err
	}

	batch.Retain()
	return &Table{mem: o.mem, batch: batch, columns: columns, index: index}, nil
}

// Retain increases the reference count of the underlying Arrow data.
func (t *Table) Retain() {
	t.batch.Retain()
}

// Release decreases the reference count and frees Arrow memory when it reaches zero.
func (t *Table) Release() {
	t.batch.Release()
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return int(t.batch.NumRows())
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.columns)
}

// Columns returns the column descriptors in table order.
func (t *Table) Columns() []Column {
	return slices.Clone(t.columns)
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the descriptor of the column at index i.
func (t *Table) Column(i int) Column {
	return t.columns[i]
}

// ColumnIndex returns the position of the named column.
// Returns *UnknownColumnError if the table has no such column.
func (t *Table) ColumnIndex(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return -1, &UnknownColumnError{Column: name}
	}
	return i, nil
}

// IsNull reports whether the value at (col, row) is null.
// Arrow null arrays carry no validity bitmap, so their IsNull is always false.
func (t *Table) IsNull(col, row int) bool {
	arr := t.batch.Column(col)
	return arr.DataType().ID() == arrow.NULL || arr.IsNull(row)
}

// Value returns the normalized value at (col, row): nil, int64, float64, string or bool.
func (t *Table) Value(col, row int) any {
	if t.IsNull(col, row) {
		return nil
	}
	arr := t.batch.Column(col)

	switch a := arr.(type) {
	case *array.Int64:
		return a.Value(row)
	case *array.Float64:
		return a.Value(row)
	case *array.Boolean:
		return a.Value(row)
	case *array.String:
		if t.columns[col].Type == TypeMixed {
			v, err := decodeMixed(a.Value(row))
			if err != nil {
				return nil
			}
			return v
		}
		return a.Value(row)
	default:
		return nil
	}
}

// Row returns row i as a record.
func (t *Table) Row(i int) Record {
	rec := make(Record, len(t.columns))
	for c, col := range t.columns {
		rec[col.Name] = t.Value(c, i)
	}
	return rec
}

// Records returns every row as a record, in table order.
func (t *Table) Records() []Record {
	n := t.NumRows()
	out := make([]Record, n)
	for i := 0; i < n; i++ {
		out[i] = t.Row(i)
	}
	return out
}

// Schema returns the Arrow schema, including the type metadata of each field.
func (t *Table) Schema() *arrow.Schema {
	return t.batch.Schema()
}

// RecordBatch returns the underlying Arrow data. It is not retained:
// call Retain if it must outlive the table.
func (t *Table) RecordBatch() arrow.RecordBatch {
	return t.batch
}

// Allocator returns the allocator the table was built with.
func (t *Table) Allocator() memory.Allocator {
	return t.mem
}

// Take returns a new table holding the given rows, in the given order.
// Row indices may repeat. An empty slice yields an empty table with the same columns.
func (t *Table) Take(rows []int) (*Table, error) {
	n := t.NumRows()
	for _, r := range rows {
		if r < 0 || r >= n {
			return nil, InvalidParameter("rows", "row index %d out of range [0, %d)", r, n)
		}
	}

	arrays := make([]arrow.Array, len(t.columns))
	defer func() {
		for _, arr := range arrays {
			if arr != nil {
				arr.Release()
			}
		}
	}()
	for c := range t.columns {
		arr, err := takeArray(t.mem, t.batch.Column(c), rows)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", t.columns[c].Name, err)
		}
		arrays[c] = arr
	}

	batch := array.NewRecordBatch(t.batch.Schema(), arrays, int64(len(rows)))
	return &Table{
		mem:     t.mem,
		batch:   batch,
		columns: slices.Clone(t.columns),
		index:   t.index,
	}, nil
}

// indexColumns maps names to positions and rejects duplicates.
func indexColumns(names []string) (map[string]int, error) {
	index := make(map[string]int, len(names))
	for i, name := range names {
		if _, dup := index[name]; dup {
			return nil, InvalidParameter("columns", "duplicate column %q", name)
		}
		index[name] = i
	}
	return index, nil
}

// recordColumns returns the first-seen key order across records.
func recordColumns(records []Record) []string {
	seen := make(map[string]struct{})
	var columns []string
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for key := range rec {
			if _, ok := seen[key]; !ok {
				keys = append(keys, key)
			}
		}
		slices.Sort(keys)
		for _, key := range keys {
			seen[key] = struct{}{}
			columns = append(columns, key)
		}
	}
	return columns
}
