// Package flight provides the Arrow Flight handlers of the tabprobe service.
package flight

import (
	"fmt"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"

	"github.com/hugr-lab/tabprobe/internal/serialize"
)

// Server implements the Flight service handlers.
// Embeds BaseFlightServer for forward compatibility with protocol changes;
// only DoAction and ListActions are served.
type Server struct {
	flight.BaseFlightServer

	allocator  memory.Allocator
	logger     *slog.Logger
	compressor *serialize.Compressor
	metrics    *metrics
	maxRows    int
}

// NewServer creates a Flight server.
// Tables decoded from requests are allocated from allocator. maxRows caps
// the rows accepted per request; 0 means no limit. Metrics are registered
// on reg when it is not nil.
func NewServer(allocator memory.Allocator, logger *slog.Logger, maxRows int, reg prometheus.Registerer) (*Server, error) {
	compressor, err := serialize.NewCompressor()
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}

	return &Server{
		allocator:  allocator,
		logger:     logger,
		compressor: compressor,
		metrics:    newMetrics(reg),
		maxRows:    maxRows,
	}, nil
}

// Close releases the server's compression resources.
func (s *Server) Close() error {
	return s.compressor.Close()
}

// RegisterFlightServer registers the Flight service on the provided gRPC server.
// This follows the standard gRPC service registration pattern.
func RegisterFlightServer(grpcServer *grpc.Server, flightServer *Server) {
	flight.RegisterFlightServiceServer(grpcServer, flightServer)
}
