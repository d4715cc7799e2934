package log

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Logger is a leveled, structured logger.
type Logger struct {
	level      Level
	dispatcher *Dispatcher
	baseFields map[string]any
	mu         sync.RWMutex
}

// New creates a new logger with the given minimum level and transporters.
func New(level Level, transporters ...Transporter) *Logger {
	return &Logger{
		level:      level,
		dispatcher: NewDispatcher(transporters...),
		baseFields: make(map[string]any),
	}
}

// SetLevel changes the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// With creates a child logger with additional base fields.
// The child shares the parent's transporters.
func (l *Logger) With(keysAndValues ...any) *Logger {
	l.mu.RLock()
	newFields := make(map[string]any, len(l.baseFields))
	for k, v := range l.baseFields {
		newFields[k] = v
	}
	level := l.level
	l.mu.RUnlock()

	mergePairs(newFields, keysAndValues)

	return &Logger{
		level:      level,
		dispatcher: l.dispatcher,
		baseFields: newFields,
	}
}

// Close closes the transporters.
func (l *Logger) Close() {
	l.dispatcher.Close()
}

func (l *Logger) log(level Level, ctx context.Context, msg string, keysAndValues ...any) {
	l.mu.RLock()
	minLevel := l.level
	l.mu.RUnlock()

	if !minLevel.Enables(level) {
		return
	}

	entry := NewEntry(level, msg)
	entry.Caller = getCaller(3)

	l.mu.RLock()
	for k, v := range l.baseFields {
		entry.Fields[k] = v
	}
	l.mu.RUnlock()

	if ctx != nil {
		entry.RunID = RunIDFromContext(ctx)
		for k, v := range FieldsFromContext(ctx) {
			entry.Fields[k] = v
		}
	}

	entry.With(keysAndValues...)

	l.dispatcher.Send(*entry)
}

// getCaller returns file:line of the caller, skipping the logging frames.
func getCaller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

func (l *Logger) Trace(msg string, keysAndValues ...any) { l.log(Trace, nil, msg, keysAndValues...) }
func (l *Logger) Debug(msg string, keysAndValues ...any) { l.log(Debug, nil, msg, keysAndValues...) }
func (l *Logger) Info(msg string, keysAndValues ...any)  { l.log(Info, nil, msg, keysAndValues...) }
func (l *Logger) Warn(msg string, keysAndValues ...any)  { l.log(Warn, nil, msg, keysAndValues...) }
func (l *Logger) Error(msg string, keysAndValues ...any) { l.log(Error, nil, msg, keysAndValues...) }

// Fatal logs at Fatal level. It does not exit; that's the caller's responsibility.
func (l *Logger) Fatal(msg string, keysAndValues ...any) { l.log(Fatal, nil, msg, keysAndValues...) }

func (l *Logger) DebugCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(Debug, ctx, msg, keysAndValues...)
}

func (l *Logger) InfoCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(Info, ctx, msg, keysAndValues...)
}

func (l *Logger) WarnCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(Warn, ctx, msg, keysAndValues...)
}

func (l *Logger) ErrorCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(Error, ctx, msg, keysAndValues...)
}

// Printf and Println make Logger usable as a printf-style library logger
// (the Telegram client logs through this). Lines are logged at Debug.
func (l *Logger) Printf(format string, v ...any) {
	l.log(Debug, nil, strings.TrimRight(fmt.Sprintf(format, v...), "\n"), "source", "library")
}

func (l *Logger) Println(v ...any) {
	l.log(Debug, nil, strings.TrimRight(fmt.Sprintln(v...), "\n"), "source", "library")
}

// --- Global Logger ---

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
)

// SetDefault sets the global default logger.
func SetDefault(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// Default returns the global logger, or a logger that drops everything if none is set.
func Default() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()

	if l == nil {
		return New(Fatal+1, noopTransporter{})
	}
	return l
}

type noopTransporter struct{}

func (noopTransporter) Name() string      { return "noop" }
func (noopTransporter) Write(Entry) error { return nil }
func (noopTransporter) Close() error      { return nil }

// The Global* helpers log through Default(). Caller skip depth matches the methods above.

func GlobalDebug(msg string, keysAndValues ...any) { Default().log(Debug, nil, msg, keysAndValues...) }
func GlobalInfo(msg string, keysAndValues ...any)  { Default().log(Info, nil, msg, keysAndValues...) }
func GlobalWarn(msg string, keysAndValues ...any)  { Default().log(Warn, nil, msg, keysAndValues...) }
func GlobalError(msg string, keysAndValues ...any) { Default().log(Error, nil, msg, keysAndValues...) }
func GlobalFatal(msg string, keysAndValues ...any) { Default().log(Fatal, nil, msg, keysAndValues...) }

func GlobalDebugCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(Debug, ctx, msg, keysAndValues...)
}

func GlobalInfoCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(Info, ctx, msg, keysAndValues...)
}

func GlobalWarnCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(Warn, ctx, msg, keysAndValues...)
}

func GlobalErrorCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(Error, ctx, msg, keysAndValues...)
}
