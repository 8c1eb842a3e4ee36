package tabprobe

import (
	"fmt"

	"google.golang.org/grpc"

	"github.com/hugr-lab/tabprobe/flight"
)

// NewServer registers the tabprobe Flight service handlers on the provided gRPC server.
//
// The function:
//  1. Validates the ServerConfig
//  2. Creates the Flight service implementation
//  3. Registers it on grpcServer
//
// Does NOT start the gRPC server - user controls lifecycle via grpcServer.Serve().
// The returned server holds compression resources: call Close after the
// gRPC server has stopped.
//
// For authentication, use ServerOptions() to create a gRPC server with auth interceptors:
//
//	config := tabprobe.ServerConfig{
//	    Auth: tabprobe.StaticTokens(map[string]string{"secret": "analyst"}),
//	}
//	grpcServer := grpc.NewServer(tabprobe.ServerOptions(config)...)
//	srv, err := tabprobe.NewServer(grpcServer, config)
//	if err != nil {
//	    return err
//	}
//	defer srv.Close()
func NewServer(grpcServer *grpc.Server, config ServerConfig) (*flight.Server, error) {
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	logger := config.logger()

	flightServer, err := flight.NewServer(config.allocator(), logger, config.MaxRows, config.Registerer)
	if err != nil {
		return nil, err
	}

	flight.RegisterFlightServer(grpcServer, flightServer)

	logger.Info("tabprobe Flight server registered",
		"has_auth", config.Auth != nil,
		"max_message_size", config.MaxMessageSize,
		"max_rows", config.MaxRows,
	)

	return flightServer, nil
}

// ServerOptions returns gRPC server options with authentication interceptors
// and message size limits taken from config.
//
// Example:
//
//	config := tabprobe.ServerConfig{
//	    Auth:           tabprobe.BearerAuth(validateToken),
//	    MaxMessageSize: 16 << 20,
//	}
//	grpcServer := grpc.NewServer(tabprobe.ServerOptions(config)...)
//	srv, err := tabprobe.NewServer(grpcServer, config)
func ServerOptions(config ServerConfig) []grpc.ServerOption {
	var opts []grpc.ServerOption

	if config.Auth != nil {
		opts = append(opts,
			grpc.UnaryInterceptor(flight.UnaryServerInterceptor(config.Auth)),
			grpc.StreamInterceptor(flight.StreamServerInterceptor(config.Auth)),
		)
	}

	if config.MaxMessageSize > 0 {
		opts = append(opts,
			grpc.MaxRecvMsgSize(config.MaxMessageSize),
			grpc.MaxSendMsgSize(config.MaxMessageSize),
		)
	}

	return opts
}
