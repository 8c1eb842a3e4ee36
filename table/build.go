package table

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// build assembles a table from normalized column-major values.
// nrows is explicit so a table with zero columns keeps its row count.
func build(mem memory.Allocator, names []string, values [][]any, nrows int) (*Table, error) {
	index, err := indexColumns(names)
	if err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, len(names))
	columns := make([]Column, len(names))
	arrays := make([]arrow.Array, len(names))
	defer func() {
		for _, arr := range arrays {
			if arr != nil {
				arr.Release()
			}
		}
	}()

	for c, name := range names {
		typ, allInt := inferColumn(values[c])
		arr, err := buildArray(mem, typ, allInt, values[c])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		arrays[c] = arr
		columns[c] = Column{Name: name, Type: typ}
		fields[c] = arrow.Field{
			Name:     name,
			Type:     arr.DataType(),
			Nullable: true,
			Metadata: arrow.NewMetadata([]string{MetadataTypeKey}, []string{typ.String()}),
		}
	}

	schema := arrow.NewSchema(fields, nil)
	batch := array.NewRecordBatch(schema, arrays, int64(nrows))
	return &Table{mem: mem, batch: batch, columns: columns, index: index}, nil
}

// inferColumn returns the column type and whether every number is an integer.
func inferColumn(vals []any) (Type, bool) {
	typ := TypeNull
	allInt := true
	for _, v := range vals {
		typ = typ.merge(KindOf(v))
		if _, ok := v.(float64); ok {
			allInt = false
		}
	}
	return typ, allInt
}

func buildArray(mem memory.Allocator, typ Type, allInt bool, vals []any) (arrow.Array, error) {
	switch typ {
	case TypeNull:
		b := array.NewNullBuilder(mem)
		defer b.Release()
		b.AppendNulls(len(vals))
		return b.NewArray(), nil

	case TypeNumeric:
		if allInt {
			b := array.NewInt64Builder(mem)
			defer b.Release()
			b.Reserve(len(vals))
			for _, v := range vals {
				if v == nil {
					b.AppendNull()
					continue
				}
				b.Append(v.(int64))
			}
			return b.NewArray(), nil
		}
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.Reserve(len(vals))
		for _, v := range vals {
			f, ok := AsFloat(v)
			if !ok {
				b.AppendNull()
				continue
			}
			b.Append(f)
		}
		return b.NewArray(), nil

	case TypeText:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.Reserve(len(vals))
		for _, v := range vals {
			if v == nil {
				b.AppendNull()
				continue
			}
			b.Append(v.(string))
		}
		return b.NewArray(), nil

	case TypeBoolean:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		b.Reserve(len(vals))
		for _, v := range vals {
			if v == nil {
				b.AppendNull()
				continue
			}
			b.Append(v.(bool))
		}
		return b.NewArray(), nil

	case TypeMixed:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.Reserve(len(vals))
		for _, v := range vals {
			if v == nil {
				b.AppendNull()
				continue
			}
			s, err := encodeMixed(v)
			if err != nil {
				return nil, err
			}
			b.Append(s)
		}
		return b.NewArray(), nil

	default:
		return nil, fmt.Errorf("unknown column type %s", typ)
	}
}

// takeArray gathers rows of arr into a new array of the same data type.
func takeArray(mem memory.Allocator, arr arrow.Array, rows []int) (arrow.Array, error) {
	switch a := arr.(type) {
	case *array.Null:
		return array.NewNull(len(rows)), nil

	case *array.Int64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.Reserve(len(rows))
		for _, r := range rows {
			if a.IsNull(r) {
				b.AppendNull()
				continue
			}
			b.Append(a.Value(r))
		}
		return b.NewArray(), nil

	case *array.Float64:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.Reserve(len(rows))
		for _, r := range rows {
			if a.IsNull(r) {
				b.AppendNull()
				continue
			}
			b.Append(a.Value(r))
		}
		return b.NewArray(), nil

	case *array.String:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.Reserve(len(rows))
		for _, r := range rows {
			if a.IsNull(r) {
				b.AppendNull()
				continue
			}
			b.Append(a.Value(r))
		}
		return b.NewArray(), nil

	case *array.Boolean:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		b.Reserve(len(rows))
		for _, r := range rows {
			if a.IsNull(r) {
				b.AppendNull()
				continue
			}
			b.Append(a.Value(r))
		}
		return b.NewArray(), nil

	default:
		return nil, fmt.Errorf("unsupported arrow type %s", arr.DataType())
	}
}
