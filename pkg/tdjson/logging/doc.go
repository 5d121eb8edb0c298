// Package logging provides a minimal logging facade for the tdjson wrapper.
//
// This package defines a Logger interface that wraps a subset of the standard
// library's log/slog functionality. The interface is intentionally small to
// allow applications to provide custom implementations for testing, redaction,
// or integration with existing logging systems.
//
// # Logger Interface
//
//	type Logger interface {
//	    Debug(ctx context.Context, msg string, args ...any)
//	    Info(ctx context.Context, msg string, args ...any)
//	    Warn(ctx context.Context, msg string, args ...any)
//	    Error(ctx context.Context, msg string, args ...any)
//	    With(args ...any) Logger
//	}
//
// # Implementations
//
// New wraps a *slog.Logger (nil binds to slog.Default()). NewZap wraps a
// *zap.Logger for hosts that already run zap. Nop discards everything and is
// what clients use when no logger is configured.
//
//	logger := logging.New(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
//	client, err := tdjson.NewClient(tdjson.WithLogger(logger))
//
// # Redaction Support
//
// Bot tokens, API hashes and database encryption keys must never reach a log:
//
//	logger.Info(ctx, "checking bot token", logging.Redacted("token"))
//	// Logs: token="[redacted]"
//
// # What the Wrapper Logs
//
// Clients log handle creation and destruction at debug level. The polling
// iterator logs every error it drops at debug level, which is the only place
// those errors remain visible.
package logging
