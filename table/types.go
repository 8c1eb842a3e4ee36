package table

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// MetadataTypeKey is the Arrow field metadata key carrying the inferred column type.
// It lets a table survive an IPC round trip with its type map intact.
const MetadataTypeKey = "tabprobe.type"

// Type is the inferred scalar type of a column.
type Type uint8

const (
	// TypeNull marks a column with no non-null values (including empty tables).
	TypeNull Type = iota
	// TypeNumeric marks a column whose non-null values are all numbers.
	TypeNumeric
	// TypeText marks a column whose non-null values are all strings.
	TypeText
	// TypeBoolean marks a column whose non-null values are all booleans.
	TypeBoolean
	// TypeMixed marks a column holding more than one kind of value.
	TypeMixed
)

var typeNames = [...]string{
	TypeNull:    "null",
	TypeNumeric: "numeric",
	TypeText:    "text",
	TypeBoolean: "boolean",
	TypeMixed:   "mixed",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// ParseType converts a type name produced by Type.String back to a Type.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return TypeNull, fmt.Errorf("unknown column type %q", s)
}

// Orderable reports whether values of the type have a natural total order.
// Null columns are trivially orderable: they hold no values to compare.
func (t Type) Orderable() bool {
	return t == TypeNumeric || t == TypeText || t == TypeNull
}

// MarshalText implements encoding.TextMarshaler so reports encode the type name.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Column describes one column of a table.
type Column struct {
	Name string
	Type Type
}

// merge folds the kind of one more observed value into the column type.
func (t Type) merge(kind Type) Type {
	switch {
	case kind == TypeNull:
		return t
	case t == TypeNull:
		return kind
	case t == kind:
		return t
	default:
		return TypeMixed
	}
}

// typeFromArrow infers a column type for Arrow data that carries no
// tabprobe metadata. Only the storage types produced by this package are accepted.
func typeFromArrow(dt arrow.DataType) (Type, bool) {
	switch dt.ID() {
	case arrow.NULL:
		return TypeNull, true
	case arrow.INT64, arrow.FLOAT64:
		return TypeNumeric, true
	case arrow.STRING:
		return TypeText, true
	case arrow.BOOL:
		return TypeBoolean, true
	default:
		return TypeNull, false
	}
}
