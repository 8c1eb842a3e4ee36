// Package serialize converts tables to and from Arrow IPC streams and
// compresses action results with ZStandard.
package serialize

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/tabprobe/table"
)

// EncodeTable writes t as an Arrow IPC stream holding one record batch.
// Column types travel in the field metadata.
func EncodeTable(t *table.Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := ipc.NewWriter(&buf, ipc.WithSchema(t.Schema()), ipc.WithAllocator(t.Allocator()))
	defer writer.Close()

	if err := writer.Write(t.RecordBatch()); err != nil {
		return nil, fmt.Errorf("failed to write IPC record: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close IPC writer: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeTable reads an Arrow IPC stream produced by EncodeTable.
// A stream with several batches is concatenated; a stream with none
// yields an empty table with the stream's schema.
func DecodeTable(data []byte, mem memory.Allocator) (*table.Table, error) {
	reader, err := ipc.NewReader(bytes.NewReader(data), ipc.WithAllocator(mem))
	if err != nil {
		return nil, fmt.Errorf("failed to open IPC stream: %w", err)
	}
	defer reader.Release()

	var batches []arrow.RecordBatch
	defer func() {
		for _, b := range batches {
			b.Release()
		}
	}()
	for reader.Next() {
		batch := reader.RecordBatch()
		batch.Retain()
		batches = append(batches, batch)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("failed to read IPC stream: %w", err)
	}

	schema := reader.Schema()
	switch len(batches) {
	case 0:
		cols := emptyColumns(mem, schema)
		empty := array.NewRecordBatch(schema, cols, 0)
		for _, c := range cols {
			c.Release()
		}
		defer empty.Release()
		return table.FromRecordBatch(empty, table.WithAllocator(mem))
	case 1:
		return table.FromRecordBatch(batches[0], table.WithAllocator(mem))
	default:
		merged, err := concat(mem, schema, batches)
		if err != nil {
			return nil, err
		}
		defer merged.Release()
		return table.FromRecordBatch(merged, table.WithAllocator(mem))
	}
}

func emptyColumns(mem memory.Allocator, schema *arrow.Schema) []arrow.Array {
	cols := make([]arrow.Array, schema.NumFields())
	for i, f := range schema.Fields() {
		b := array.NewBuilder(mem, f.Type)
		cols[i] = b.NewArray()
		b.Release()
	}
	return cols
}

func concat(mem memory.Allocator, schema *arrow.Schema, batches []arrow.RecordBatch) (arrow.RecordBatch, error) {
	cols := make([]arrow.Array, schema.NumFields())
	defer func() {
		for _, c := range cols {
			if c != nil {
				c.Release()
			}
		}
	}()

	var rows int64
	for _, b := range batches {
		rows += b.NumRows()
	}
	for i := range cols {
		parts := make([]arrow.Array, len(batches))
		for j, b := range batches {
			parts[j] = b.Column(i)
		}
		merged, err := array.Concatenate(parts, mem)
		if err != nil {
			return nil, fmt.Errorf("failed to concatenate column %q: %w", schema.Field(i).Name, err)
		}
		cols[i] = merged
	}
	return array.NewRecordBatch(schema, cols, rows), nil
}
