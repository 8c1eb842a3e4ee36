package msgpack

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ActionBody is the decoded body of a DoAction request.
//
// On the wire it is a map with the keys:
//   - rows: array of maps, one per record; key order is kept
//   - columns: optional array of column names fixing the order
//   - params: map of action parameters
//   - compress: bool, zstd-compress the response
type ActionBody struct {
	Columns  []string
	Rows     [][]any
	Params   map[string]any
	Compress bool
}

type orderedRow struct {
	keys   []string
	values []any
}

// DecodeActionBody decodes a DoAction body.
//
// Without an explicit columns list the column order is the first-seen order
// of keys across rows. Rows are aligned to that order, with nil for a key a
// row lacks. Numbers decode to int64, uint64 or float64.
func DecodeActionBody(data []byte) (*ActionBody, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty MessagePack data")
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)

	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, fmt.Errorf("failed to decode action body: %w", err)
	}

	var (
		body    ActionBody
		rows    []orderedRow
		columns []string
	)
	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return nil, fmt.Errorf("failed to decode action body key: %w", err)
		}
		switch key {
		case "rows":
			rows, err = decodeRows(dec)
		case "columns":
			columns, err = decodeStrings(dec)
		case "params":
			body.Params, err = dec.DecodeMap()
		case "compress":
			body.Compress, err = dec.DecodeBool()
		default:
			err = dec.Skip()
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode action body %q: %w", key, err)
		}
	}

	if columns == nil {
		columns = firstSeen(rows)
	}
	body.Columns = columns
	body.Rows, err = align(columns, rows)
	if err != nil {
		return nil, err
	}
	if body.Params == nil {
		body.Params = map[string]any{}
	}
	return &body, nil
}

func decodeRows(dec *msgpack.Decoder) ([]orderedRow, error) {
	n, err := dec.DecodeArrayLen()
	if err != nil || n < 0 {
		return nil, err
	}

	rows := make([]orderedRow, n)
	for r := range rows {
		m, err := dec.DecodeMapLen()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		if m < 0 {
			continue
		}
		row := orderedRow{keys: make([]string, m), values: make([]any, m)}
		for i := 0; i < m; i++ {
			if row.keys[i], err = dec.DecodeString(); err != nil {
				return nil, fmt.Errorf("row %d key: %w", r, err)
			}
			if row.values[i], err = dec.DecodeInterfaceLoose(); err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", r, row.keys[i], err)
			}
		}
		rows[r] = row
	}
	return rows, nil
}

func decodeStrings(dec *msgpack.Decoder) ([]string, error) {
	n, err := dec.DecodeArrayLen()
	if err != nil || n < 0 {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		if out[i], err = dec.DecodeString(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func firstSeen(rows []orderedRow) []string {
	seen := make(map[string]struct{})
	columns := []string{}
	for _, row := range rows {
		for _, key := range row.keys {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				columns = append(columns, key)
			}
		}
	}
	return columns
}

func align(columns []string, rows []orderedRow) ([][]any, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		index[name] = i
	}

	out := make([][]any, len(rows))
	for r, row := range rows {
		values := make([]any, len(columns))
		for i, key := range row.keys {
			c, ok := index[key]
			if !ok {
				return nil, fmt.Errorf("row %d has column %q outside the column list", r, key)
			}
			values[c] = row.values[i]
		}
		out[r] = values
	}
	return out, nil
}

// EncodeActionBody encodes a DoAction body, writing each row as a map in column order.
func EncodeActionBody(body *ActionBody) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	if err := enc.EncodeMapLen(4); err != nil {
		return nil, err
	}

	if err := enc.EncodeString("columns"); err != nil {
		return nil, err
	}
	if err := enc.Encode(body.Columns); err != nil {
		return nil, fmt.Errorf("failed to encode columns: %w", err)
	}

	if err := enc.EncodeString("rows"); err != nil {
		return nil, err
	}
	if err := enc.EncodeArrayLen(len(body.Rows)); err != nil {
		return nil, err
	}
	for r, row := range body.Rows {
		if len(row) != len(body.Columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", r, len(row), len(body.Columns))
		}
		if err := enc.EncodeMapLen(len(row)); err != nil {
			return nil, err
		}
		for c, v := range row {
			if err := enc.EncodeString(body.Columns[c]); err != nil {
				return nil, err
			}
			if err := enc.Encode(v); err != nil {
				return nil, fmt.Errorf("failed to encode row %d column %q: %w", r, body.Columns[c], err)
			}
		}
	}

	if err := enc.EncodeString("params"); err != nil {
		return nil, err
	}
	if err := enc.Encode(body.Params); err != nil {
		return nil, fmt.Errorf("failed to encode params: %w", err)
	}

	if err := enc.EncodeString("compress"); err != nil {
		return nil, err
	}
	if err := enc.EncodeBool(body.Compress); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
