package flight

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hugr-lab/tabprobe/action"
	"github.com/hugr-lab/tabprobe/auth"
	"github.com/hugr-lab/tabprobe/internal/msgpack"
	"github.com/hugr-lab/tabprobe/internal/recovery"
	"github.com/hugr-lab/tabprobe/internal/serialize"
	"github.com/hugr-lab/tabprobe/table"
)

// DoAction runs one engine action against the table carried in the body.
//
// Request body (MessagePack):
//
//	{
//	  "columns": ["name", "grade"],          // optional
//	  "rows": [{"name": "Ann", "grade": "A"}],
//	  "params": {"by": "grade", "n": 2},
//	  "compress": false
//	}
//
// The response is a single result: an Arrow IPC stream for table actions,
// a msgpack report for summary. With compress set the body is wrapped in
// the compressed-content envelope.
func (s *Server) DoAction(act *flight.Action, stream flight.FlightService_DoActionServer) error {
	ctx := EnrichContextMetadata(stream.Context())
	logger := s.logger.With(
		"request_id", RequestIDFromContext(ctx),
		"action", act.GetType(),
	)
	if identity := auth.IdentityFromContext(ctx); identity != "" {
		logger = logger.With("identity", identity)
	}

	logger.Info("DoAction called", "body_size", len(act.GetBody()))

	start := time.Now()
	err := toStatus(recovery.RecoverToError(logger, "DoAction", func() error {
		return s.doAction(ctx, logger, act, stream)
	}))
	s.metrics.requestDuration.
		WithLabelValues(actionLabel(act.GetType()), status.Code(err).String()).
		Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Error("DoAction failed", "error", err)
		return err
	}

	logger.Info("DoAction completed", "duration", time.Since(start))
	return nil
}

func (s *Server) doAction(ctx context.Context, logger *slog.Logger, act *flight.Action, stream flight.FlightService_DoActionServer) error {
	body, err := msgpack.DecodeActionBody(act.GetBody())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	s.metrics.rowsTotal.WithLabelValues(actionLabel(act.GetType())).Add(float64(len(body.Rows)))
	if s.maxRows > 0 && len(body.Rows) > s.maxRows {
		return fmt.Errorf("%w: %d rows, limit is %d", ErrRowLimit, len(body.Rows), s.maxRows)
	}

	tbl, err := table.New(body.Columns, body.Rows, table.WithAllocator(s.allocator))
	if err != nil {
		return err
	}
	defer tbl.Release()

	req := action.Request{
		Action: act.GetType(),
		Params: action.Params(body.Params),
	}
	if where, ok := req.Where(); ok {
		logger.Debug("Action predicate", "where", where)
	}

	res, err := recovery.RecoverToValue(logger, act.GetType(), func() (*action.Result, error) {
		return action.Execute(tbl, req)
	})
	if err != nil {
		return err
	}
	defer recovery.Recover(s.logger, "release result", res.Release)

	payload, err := s.encodeResult(res)
	if err != nil {
		return err
	}
	if body.Compress {
		payload, err = s.compressor.Envelope(payload)
		if err != nil {
			return fmt.Errorf("failed to compress result: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return status.FromContextError(err).Err()
	}
	if err := stream.Send(&flight.Result{Body: payload}); err != nil {
		return status.Errorf(codes.Internal, "failed to send result: %v", err)
	}
	s.metrics.resultBytes.WithLabelValues(actionLabel(act.GetType())).Add(float64(len(payload)))
	return nil
}

func (s *Server) encodeResult(res *action.Result) ([]byte, error) {
	if res.Report != nil {
		data, err := msgpack.Encode(res.Report)
		if err != nil {
			return nil, fmt.Errorf("failed to encode report: %w", err)
		}
		return data, nil
	}
	return serialize.EncodeTable(res.Table)
}

// ListActions advertises the engine actions.
func (s *Server) ListActions(_ *flight.Empty, stream flight.FlightService_ListActionsServer) error {
	for _, d := range action.Actions() {
		if err := stream.Send(&flight.ActionType{
			Type:        d.Name,
			Description: d.Description,
		}); err != nil {
			return status.Errorf(codes.Internal, "failed to send action: %v", err)
		}
	}
	return nil
}
