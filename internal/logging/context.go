package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type contextKey int

const (
	runIDKey contextKey = iota
	stepKey
)

// NewRunID produces the correlation identifier attached to every log line of
// a single checkrun invocation.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID stores the run correlation identifier on the context. A nil
// context is treated as context.Background, so callers holding a not-yet
// initialized command context stay safe.
func WithRunID(ctx context.Context, runID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run correlation identifier, if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// WithStep stores the active check step identifier on the context. Like
// WithRunID it accepts a nil context.
func WithStep(ctx context.Context, step string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	step = strings.TrimSpace(step)
	if step == "" {
		return ctx
	}
	return context.WithValue(ctx, stepKey, step)
}

// StepFromContext extracts the active check step identifier, if present.
func StepFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	step, ok := ctx.Value(stepKey).(string)
	return step, ok && step != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if step, ok := StepFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStep, step))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
