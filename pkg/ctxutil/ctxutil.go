package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	runIDKey  ctxKey = "run_id"
	sourceKey ctxKey = "source"
)

// WithRunID stores the batch run ID in the context.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromCtx extracts the run ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func RunIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithSource stores the item currently being processed (a dictionary file
// or identifier) in the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// SourceFromCtx extracts the current source from the context.
// Returns an empty string if absent.
func SourceFromCtx(ctx context.Context) string {
	s, _ := ctx.Value(sourceKey).(string)
	return s
}

// RunIDString returns the run ID as a string, or "" if absent. Used for log attributes.
func RunIDString(ctx context.Context) string {
	if id, ok := RunIDFromCtx(ctx); ok {
		return id.String()
	}
	return ""
}
