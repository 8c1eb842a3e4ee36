package table

import (
	"errors"
	"fmt"
)

// Standard errors returned by the engine packages.
// Match them with errors.Is; use errors.As to get the typed detail.
var (
	// ErrUnknownColumn indicates a referenced column is absent from the table.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnsupportedType indicates an operation needs ordering or numeric
	// semantics the column type does not have.
	ErrUnsupportedType = errors.New("unsupported column type")

	// ErrInvalidParameter indicates a caller-supplied parameter is invalid.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// UnknownColumnError is returned when a column name does not exist in the table.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

func (e *UnknownColumnError) Is(target error) bool {
	return target == ErrUnknownColumn
}

// UnsupportedTypeError is returned when an operation cannot be applied to
// the column's inferred type (e.g. a range filter over a mixed column).
type UnsupportedTypeError struct {
	Column string
	Type   Type
	Op     string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: column %q of type %s is not supported", e.Op, e.Column, e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// InvalidParameterError is returned for malformed caller input.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	if e.Param == "" {
		return "invalid parameter: " + e.Reason
	}
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// InvalidParameter is a shorthand for building an *InvalidParameterError.
func InvalidParameter(param, format string, args ...any) error {
	return &InvalidParameterError{Param: param, Reason: fmt.Sprintf(format, args...)}
}
