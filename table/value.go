package table

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// valueJSON is shared by ReadJSON, WriteJSON and the mixed-column codec.
// UseNumber keeps integers exact until Normalize decides their storage.
var valueJSON = jsoniter.Config{
	UseNumber:   true,
	EscapeHTML:  false,
	SortMapKeys: true,
}.Froze()

// Normalize converts a caller-supplied scalar to the engine's canonical form:
//   - nil stays nil
//   - every Go integer kind becomes int64 (uint64 above MaxInt64 becomes float64)
//   - float32/float64 become float64; NaN becomes nil
//   - json.Number becomes int64 when integral, float64 otherwise
//   - string and bool are kept as is
//
// Any other type is rejected with an *InvalidParameterError.
func Normalize(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return x, nil
	case bool:
		return x, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return normalizeUint(uint64(x)), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return normalizeUint(x), nil
	case float32:
		return normalizeFloat(float64(x)), nil
	case float64:
		return normalizeFloat(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, InvalidParameter("value", "malformed number %q", x.String())
		}
		return normalizeFloat(f), nil
	default:
		return nil, InvalidParameter("value", "unsupported value type %T", v)
	}
}

func normalizeUint(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

func normalizeFloat(f float64) any {
	if math.IsNaN(f) {
		return nil
	}
	return f
}

// KindOf returns the column type a single normalized value contributes.
func KindOf(v any) Type {
	switch v.(type) {
	case int64, float64:
		return TypeNumeric
	case string:
		return TypeText
	case bool:
		return TypeBoolean
	default:
		return TypeNull
	}
}

// Key returns a type-aware identity for a normalized value.
// Numbers with the same value share a key regardless of int64/float64 storage;
// a number never shares a key with text ("1" vs 1) or a boolean.
// Null has its own key, so it can form a group of its own.
func Key(v any) string {
	switch x := v.(type) {
	case nil:
		return "\x00"
	case int64:
		return "n" + strconv.FormatInt(x, 10)
	case float64:
		if x == 0 {
			return "n0"
		}
		if x == math.Trunc(x) && x >= math.MinInt64 && x < math.MaxInt64 {
			return "n" + strconv.FormatInt(int64(x), 10)
		}
		return "n" + strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return "s" + x
	case bool:
		if x {
			return "bt"
		}
		return "bf"
	default:
		return fmt.Sprintf("?%v", x)
	}
}

// Equal reports strict, type-aware equality of two normalized values.
// Null is never equal to anything, including another null.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	return Key(a) == Key(b)
}

// Compare orders two normalized values of the same orderable kind.
// ok is false when the kinds differ or are not orderable.
func Compare(a, b any) (cmp int, ok bool) {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return compareOrdered(x, y), true
		case float64:
			return compareOrdered(float64(x), y), true
		}
	case float64:
		switch y := b.(type) {
		case int64:
			return compareOrdered(x, float64(y)), true
		case float64:
			return compareOrdered(x, y), true
		}
	case string:
		if y, isString := b.(string); isString {
			return strings.Compare(x, y), true
		}
	}
	return 0, false
}

func compareOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AsFloat returns a numeric value as float64.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// encodeMixed stores one value of a mixed column as its JSON text.
func encodeMixed(v any) (string, error) {
	s, err := valueJSON.MarshalToString(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode mixed value: %w", err)
	}
	return s, nil
}

// decodeMixed reverses encodeMixed.
func decodeMixed(s string) (any, error) {
	var v any
	if err := valueJSON.UnmarshalFromString(s, &v); err != nil {
		return nil, fmt.Errorf("failed to decode mixed value: %w", err)
	}
	return Normalize(v)
}
