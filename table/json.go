package table

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

const jsonBufferSize = 4096

// ReadJSON builds a table from a JSON array of flat objects.
//
// Unlike FromRecords, the column order follows the key order in the
// document: keys are taken in the order they are first seen. Numbers keep
// their integer or float form. Nested arrays or objects are rejected.
func ReadJSON(r io.Reader, opts ...Option) (*Table, error) {
	iter := jsoniter.Parse(valueJSON, r, jsonBufferSize)

	if next := iter.WhatIsNext(); next != jsoniter.ArrayValue {
		if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
			return nil, fmt.Errorf("failed to read records: %w", iter.Error)
		}
		return nil, InvalidParameter("records", "expected a JSON array of objects")
	}

	var (
		columns []string
		seen    = make(map[string]struct{})
		records []Record
		bad     error
	)
	for i := 0; iter.ReadArray(); i++ {
		if iter.WhatIsNext() != jsoniter.ObjectValue {
			return nil, InvalidParameter("records", "element %d is not an object", i)
		}
		rec := make(Record)
		iter.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				columns = append(columns, key)
			}
			switch it.WhatIsNext() {
			case jsoniter.ArrayValue, jsoniter.ObjectValue:
				bad = InvalidParameter("records", "element %d: column %q holds a nested value", i, key)
				return false
			}
			rec[key] = it.Read()
			return it.Error == nil
		})
		if bad != nil {
			return nil, bad
		}
		if iter.Error != nil {
			return nil, fmt.Errorf("failed to read records: %w", iter.Error)
		}
		records = append(records, rec)
	}
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return nil, fmt.Errorf("failed to read records: %w", iter.Error)
	}

	o := applyOptions(opts)
	if o.columns == nil {
		opts = append(opts, WithColumns(columns...))
	}
	return FromRecords(records, opts...)
}

// WriteJSON writes the table as a JSON array of objects in column order.
func (t *Table) WriteJSON(w io.Writer) error {
	stream := jsoniter.NewStream(valueJSON, w, jsonBufferSize)

	stream.WriteArrayStart()
	for r := 0; r < t.NumRows(); r++ {
		if r > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectStart()
		for c, col := range t.columns {
			if c > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(col.Name)
			stream.WriteVal(t.Value(c, r))
		}
		stream.WriteObjectEnd()
	}
	stream.WriteArrayEnd()

	if stream.Error != nil {
		return fmt.Errorf("failed to write records: %w", stream.Error)
	}
	return stream.Flush()
}
