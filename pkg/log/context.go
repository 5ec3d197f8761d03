package log

import (
	"context"
	"maps"
)

type ctxKey struct{ name string }

var (
	requestIDKey = ctxKey{"request_id"}
	fieldsKey    = ctxKey{"fields"}
)

// WithRequestID stores the request ID that every *Ctx call will attach.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns "" when ctx is nil or carries no ID.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithFields returns a context whose fields are the parent's plus the given
// pairs. The parent's map is never modified.
func WithFields(ctx context.Context, keysAndValues ...any) context.Context {
	fields := maps.Clone(FieldsFromContext(ctx))
	if fields == nil {
		fields = make(map[string]any, len(keysAndValues)/2)
	}
	mergePairs(fields, keysAndValues)
	return context.WithValue(ctx, fieldsKey, fields)
}

// FieldsFromContext returns nil when no fields were attached.
func FieldsFromContext(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey).(map[string]any)
	return fields
}
