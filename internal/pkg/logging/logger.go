package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// SystemTraceID marks entries written outside of any validation run.
	SystemTraceID = "system"
	SystemSpanID  = "system"
)

// Options controls where log entries go.
type Options struct {
	Output string // "stdout" or "stderr" (default)
	File   string // when set, every entry is duplicated there as JSON
	Level  string // zap level name, "info" when empty
	Format string // "json" (default) or "console"
}

// NewLogger builds the process logger. Every entry carries service and env.
// Console diagnostics own stdout by default, so structured logs go to stderr.
func NewLogger(service, env string, opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	sink := zapcore.Lock(os.Stderr)
	if strings.EqualFold(opts.Output, "stdout") {
		sink = zapcore.Lock(os.Stdout)
	}

	cores := []zapcore.Core{zapcore.NewCore(newEncoder(opts.Format), sink, level)}

	if opts.File != "" {
		f, err := openLogFile(opts.File)
		if err != nil {
			return nil, fmt.Errorf("prepare log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(newEncoder("json"), zapcore.Lock(f), level))
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.ErrorOutput(sink),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("service", service), zap.String("env", env)),
	), nil
}

// MustNewLogger is like NewLogger but panics if the logger cannot be created.
func MustNewLogger(service, env string, opts Options) *zap.Logger {
	logger, err := NewLogger(service, env, opts)
	if err != nil {
		panic(err)
	}
	return logger
}

// WithTrace returns a logger enriched with trace and span identifiers.
// Empty values become "unknown" so the fields are always present.
func WithTrace(logger *zap.Logger, traceID, spanID string) *zap.Logger {
	if logger == nil {
		logger = zap.L()
	}
	if traceID == "" {
		traceID = "unknown"
	}
	if spanID == "" {
		spanID = "unknown"
	}
	return logger.With(
		zap.String("trace_id", traceID),
		zap.String("span_id", spanID),
	)
}

func newEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "ts"
	ec.MessageKey = "msg"
	ec.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	ec.EncodeLevel = zapcore.LowercaseLevelEncoder

	if strings.EqualFold(format, "console") {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
