// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID is the context key for request correlation.
const CorrelationID LogContextKey = "correlation_id"

// GenerateCorrelationID creates a new unique correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id := ctx.Value(CorrelationID); id != nil {
		return id.(string)
	}
	return ""
}

// EvalSink is the structured-event sink attached to the comment evaluator.
// It satisfies the evaluator's EventSink interface.
type EvalSink struct {
	logger *Logger
}

// NewEvalSink creates an EvalSink backed by the global logger.
func NewEvalSink() *EvalSink {
	return &EvalSink{logger: GlobalLogger}
}

// Event logs an evaluation event with its correlation ID.
func (s *EvalSink) Event(ctx context.Context, name string, fields map[string]interface{}) {
	attrs := []any{
		slog.String("event", name),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	s.logger.InfoContext(ctx, "comment evaluation", attrs...)
}

// LedgerLogger provides structured logging for points-ledger mutations.
type LedgerLogger struct {
	logger *Logger
}

// NewLedgerLogger creates a LedgerLogger backed by the global logger.
func NewLedgerLogger() *LedgerLogger {
	return &LedgerLogger{logger: GlobalLogger}
}

// LogMutation logs a points mutation applied to an account.
func (l *LedgerLogger) LogMutation(ctx context.Context, userID uint, delta int, reason string) {
	l.logger.InfoContext(ctx, "points mutation",
		slog.Uint64("user_id", uint64(userID)),
		slog.Int("delta", delta),
		slog.String("reason", reason),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}
