// Package log is a small structured logger with asynchronous delivery.
// Entries carry the request ID and trace ID found in the context passed to
// the *Ctx methods.
package log

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
)

const defaultBufferSize = 1000

// Logger writes entries at or above its level to a shared Buffer.
// Loggers derived with With share the buffer and the level.
type Logger struct {
	level  *atomic.Int32
	buffer *Buffer
	fields map[string]any
}

// New creates a logger delivering to transporters.
func New(level Level, transporters ...Transporter) *Logger {
	lv := new(atomic.Int32)
	lv.Store(int32(level))
	return &Logger{
		level:  lv,
		buffer: NewBuffer(defaultBufferSize, transporters...),
		fields: map[string]any{},
	}
}

// SetLevel changes the minimum level for this logger and all derived loggers.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// With returns a logger that adds the given pairs to every entry.
func (l *Logger) With(keysAndValues ...any) *Logger {
	fields := make(map[string]any, len(l.fields)+len(keysAndValues)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	mergePairs(fields, keysAndValues)
	return &Logger{level: l.level, buffer: l.buffer, fields: fields}
}

// Close flushes queued entries and closes the transporters.
func (l *Logger) Close() {
	l.buffer.Close()
}

func (l *Logger) emit(ctx context.Context, level Level, msg string, keysAndValues []any) {
	if !l.Level().Enables(level) {
		return
	}

	e := NewEntry(level, msg)
	e.Caller = caller(3)
	for k, v := range l.fields {
		e.Fields[k] = v
	}
	if ctx != nil {
		e.RequestID = RequestIDFromContext(ctx)
		for k, v := range FieldsFromContext(ctx) {
			e.Fields[k] = v
		}
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			e.TraceID = sc.TraceID().String()
		}
	}
	mergePairs(e.Fields, keysAndValues)

	l.buffer.Send(*e)
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

func (l *Logger) Trace(msg string, kv ...any) { l.emit(nil, Trace, msg, kv) }
func (l *Logger) Debug(msg string, kv ...any) { l.emit(nil, Debug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.emit(nil, Info, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.emit(nil, Warn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.emit(nil, Error, msg, kv) }

// Fatal records at Fatal level. Exiting is left to the caller.
func (l *Logger) Fatal(msg string, kv ...any) { l.emit(nil, Fatal, msg, kv) }

func (l *Logger) DebugCtx(ctx context.Context, msg string, kv ...any) { l.emit(ctx, Debug, msg, kv) }
func (l *Logger) InfoCtx(ctx context.Context, msg string, kv ...any)  { l.emit(ctx, Info, msg, kv) }
func (l *Logger) WarnCtx(ctx context.Context, msg string, kv ...any)  { l.emit(ctx, Warn, msg, kv) }
func (l *Logger) ErrorCtx(ctx context.Context, msg string, kv ...any) { l.emit(ctx, Error, msg, kv) }

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
	nopLogger     = newNop()
)

func newNop() *Logger {
	lv := new(atomic.Int32)
	lv.Store(int32(Fatal + 1))
	return &Logger{level: lv, buffer: NewBuffer(1, discard{}), fields: map[string]any{}}
}

// SetDefault installs l as the package-level logger. Passing nil restores
// the silent default.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// Default returns the package-level logger, which discards everything until
// SetDefault is called.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultLogger == nil {
		return nopLogger
	}
	return defaultLogger
}

func GlobalDebug(msg string, kv ...any) { Default().emit(nil, Debug, msg, kv) }
func GlobalInfo(msg string, kv ...any)  { Default().emit(nil, Info, msg, kv) }
func GlobalWarn(msg string, kv ...any)  { Default().emit(nil, Warn, msg, kv) }
func GlobalError(msg string, kv ...any) { Default().emit(nil, Error, msg, kv) }
func GlobalFatal(msg string, kv ...any) { Default().emit(nil, Fatal, msg, kv) }

func GlobalDebugCtx(ctx context.Context, msg string, kv ...any) { Default().emit(ctx, Debug, msg, kv) }
func GlobalInfoCtx(ctx context.Context, msg string, kv ...any)  { Default().emit(ctx, Info, msg, kv) }
func GlobalWarnCtx(ctx context.Context, msg string, kv ...any)  { Default().emit(ctx, Warn, msg, kv) }
func GlobalErrorCtx(ctx context.Context, msg string, kv ...any) { Default().emit(ctx, Error, msg, kv) }
