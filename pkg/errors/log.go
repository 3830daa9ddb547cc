package errors

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogHandler is an ErrorHandler that logs errors through zap.
type LogHandler struct {
	// Logger receives the entries. A console logger on stderr is used when nil.
	Logger *zap.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool

	once     sync.Once
	fallback *zap.Logger
}

func (h *LogHandler) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	h.once.Do(func() {
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		h.fallback = zap.New(zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zapcore.WarnLevel))
	})
	return h.fallback
}

// HandleError logs a GridError.
func (h *LogHandler) HandleError(err *GridError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Property != "" {
		fields = append(fields, zap.String("property", err.Property))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Warn("grid error", fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("grid panic", fields...)
}
