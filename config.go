package tabprobe

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hugr-lab/tabprobe/auth"
)

// ServerConfig contains configuration for the tabprobe Flight server.
type ServerConfig struct {
	// Auth provides authentication logic.
	// OPTIONAL: If nil, no authentication (all requests allowed).
	Auth auth.Authenticator

	// Allocator for Arrow memory management.
	// OPTIONAL: Uses memory.DefaultAllocator if nil.
	Allocator memory.Allocator

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	// Note: If LogLevel is specified, a new logger will be created with that level.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: If nil, uses Info level.
	// Valid values: slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError
	// If Logger is also provided, LogLevel is ignored (use pre-configured logger).
	LogLevel *slog.Level

	// MaxMessageSize sets maximum gRPC message size in bytes.
	// OPTIONAL: If 0, uses gRPC default (4MB).
	// Recommended: 16MB when callers send large tables.
	MaxMessageSize int

	// Registerer receives the DoAction metrics.
	// OPTIONAL: If nil, metrics are collected but not registered.
	Registerer prometheus.Registerer

	// MaxRows caps the rows accepted in a single DoAction body.
	// OPTIONAL: If 0, there is no limit.
	// Larger requests fail with codes.ResourceExhausted.
	MaxRows int
}

// Standard errors returned by the tabprobe package.
var (
	// ErrUnauthorized indicates authentication failed.
	// Return this from Authenticator.Authenticate() for invalid tokens.
	ErrUnauthorized = auth.ErrUnauthenticated

	// ErrInvalidConfig indicates ServerConfig validation failed.
	ErrInvalidConfig = errors.New("invalid server config")
)

// validateConfig checks that ServerConfig fields are valid.
func validateConfig(config ServerConfig) error {
	if config.MaxMessageSize < 0 {
		return fmt.Errorf("max message size must be >= 0, got %d", config.MaxMessageSize)
	}
	if config.MaxRows < 0 {
		return fmt.Errorf("max rows must be >= 0, got %d", config.MaxRows)
	}
	return nil
}

func (config ServerConfig) logger() *slog.Logger {
	if config.Logger != nil {
		return config.Logger
	}
	if config.LogLevel != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: *config.LogLevel}))
	}
	return slog.Default()
}

func (config ServerConfig) allocator() memory.Allocator {
	if config.Allocator != nil {
		return config.Allocator
	}
	return memory.DefaultAllocator
}
