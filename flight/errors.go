package flight

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hugr-lab/tabprobe/table"
)

var (
	// ErrRowLimit is returned when a request carries more rows than the server accepts.
	ErrRowLimit = errors.New("row limit exceeded")
	// ErrMalformedBody is returned when a DoAction body cannot be decoded.
	ErrMalformedBody = errors.New("malformed action body")
)

// statusCode maps engine errors to gRPC codes.
func statusCode(err error) codes.Code {
	switch {
	case errors.Is(err, table.ErrUnknownColumn):
		return codes.NotFound
	case errors.Is(err, table.ErrUnsupportedType):
		return codes.FailedPrecondition
	case errors.Is(err, table.ErrInvalidParameter),
		errors.Is(err, ErrMalformedBody):
		return codes.InvalidArgument
	case errors.Is(err, ErrRowLimit):
		return codes.ResourceExhausted
	default:
		// Includes recovered panics (recovery.ErrPanic).
		return codes.Internal
	}
}

// toStatus converts err to a gRPC status error, leaving status errors untouched.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(statusCode(err), err.Error())
}
