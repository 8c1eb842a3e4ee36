// Package tabprobe serves an in-memory table engine over Apache Arrow Flight.
//
// The engine itself lives in the table, filter, sample and summary packages and
// can be used directly as a library:
//
//	tbl, err := table.FromRecords(records)
//	if err != nil {
//	    return err
//	}
//	defer tbl.Release()
//
//	top, err := filter.ByRange(tbl, filter.RangeSpec{Column: "score", Low: 80, High: 100})
//	report, err := summary.Summarize(tbl, summary.WithSampleSize(5))
//
// This package adds the transport: NewServer registers a Flight service whose
// DoAction runs one engine action per call over the rows carried in the body.
//
// # Quick Start
//
//	grpcServer := grpc.NewServer()
//	srv, err := tabprobe.NewServer(grpcServer, tabprobe.ServerConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
//	lis, _ := net.Listen("tcp", ":50051")
//	grpcServer.Serve(lis)
//
// # Actions
//
// The action type names the operation, ListActions enumerates them:
//
//	filter_by_fields     fields
//	filter_by_condition  condition
//	filter_by_range      field, min_value, max_value
//	random_sample        n (default 10), seed
//	groupby_sample       by, n (default 3), seed
//	range_sample         field, min_value, max_value
//	summary              sample_size (default 10)
//
// The body is a MessagePack map with "rows" (array of maps), an optional
// "columns" order, "params" and "compress". Table results come back as an
// Arrow IPC stream, summaries as a MessagePack report. When compress is set
// the result is zstd-compressed and wrapped as [length, data].
//
// # Errors
//
// Engine errors map to gRPC codes: an unknown column is NotFound, an
// unsupported column type is FailedPrecondition, a bad parameter or body is
// InvalidArgument and a request over ServerConfig.MaxRows is ResourceExhausted.
//
// # Server Lifecycle
//
// The package registers Flight service handlers on a user-provided grpc.Server
// but does NOT manage server lifecycle (start/stop/listen). TLS, interceptors
// and graceful shutdown stay under the caller's control.
//
// # Memory Management
//
// Tables are Arrow-backed and reference counted. Callers of the engine
// packages MUST call Release() on every table they receive.
package tabprobe
