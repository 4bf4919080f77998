package logger

import (
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	z *zap.Logger
}

// New builds a JSON logger for service. Unknown levels fall back to info.
func New(service, level string) *Logger {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = zapcore.InfoLevel
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncoderConfig.MessageKey = "message"
	cfg.Sampling = nil

	z, err := cfg.Build()
	if err != nil {
		z = zap.NewNop()
	}
	return wrap(service, z)
}

// Nop discards everything. Meant for tests.
func Nop() *Logger { return wrap("nop", zap.NewNop()) }

// FromZap wraps an existing zap logger, e.g. an observer core in tests.
func FromZap(service string, z *zap.Logger) *Logger { return wrap(service, z) }

func wrap(service string, z *zap.Logger) *Logger {
	return &Logger{z: z.With(zap.String("service", service), zap.String("hostname", hostname()))}
}

func (l *Logger) Sync() { _ = l.z.Sync() }

func (l *Logger) Info(action string, fields map[string]any) {
	l.z.Info(action, toZap(action, fields)...)
}

func (l *Logger) Debug(action string, fields map[string]any) {
	l.z.Debug(action, toZap(action, fields)...)
}

func (l *Logger) Warn(action string, fields map[string]any) {
	l.z.Warn(action, toZap(action, fields)...)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	zf := toZap(action, fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	l.z.Error(action, zf...)
}

func toZap(action string, fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	out = append(out, zap.String("action", action))
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

func hostname() string { h, _ := os.Hostname(); return h }
