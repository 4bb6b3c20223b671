// Package logging is a thin zap facade with context-scoped correlation ids.
// All application code logs through this package so the correlation id set by
// the HTTP middleware travels into every line without manual plumbing.
package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zap.Field

var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Float64  = zap.Float64
	Duration = zap.Duration
	Any      = zap.Any
	Err      = zap.Error
)

var logger = zap.NewNop()

type initOptions struct {
	level  zapcore.Level
	caller bool
	env    string
}

type InitOption func(*initOptions)

func WithLevel(level string) InitOption {
	return func(o *initOptions) {
		if l, err := zapcore.ParseLevel(level); err == nil {
			o.level = l
		}
	}
}

func WithCaller(enabled bool) InitOption {
	return func(o *initOptions) { o.caller = enabled }
}

func WithEnv(env string) InitOption {
	return func(o *initOptions) { o.env = env }
}

// Init builds the process logger. Local env gets the console encoder, anything
// else logs JSON for the collector.
func Init(appName string, opts ...InitOption) {
	fOpts := &initOptions{level: zapcore.InfoLevel, env: "local"}
	for _, opt := range opts {
		opt(fOpts)
	}

	var cfg zap.Config
	if fOpts.env == "local" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(fOpts.level)

	zopts := []zap.Option{zap.AddCallerSkip(1)}
	if !fOpts.caller {
		zopts = append(zopts, zap.WithCaller(false))
	}

	l, err := cfg.Build(zopts...)
	if err != nil {
		return
	}
	logger = l.Named(appName)
}

// InitForTest swaps in a no-op logger. TestMain of packages that log calls this.
func InitForTest() {
	logger = zap.NewNop()
}

// Logger exposes the underlying zap logger for integrations that need it
// directly (New Relic log forwarding).
func Logger() *zap.Logger {
	return logger
}

func Sync() {
	_ = logger.Sync()
}

func withCtx(ctx context.Context, fields []Field) []Field {
	if cid := GetCorrelationID(ctx); cid != "" {
		fields = append(fields, zap.String("correlationId", cid))
	}
	return fields
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	logger.Debug(msg, withCtx(ctx, fields)...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	logger.Info(msg, withCtx(ctx, fields)...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	logger.Warn(msg, withCtx(ctx, fields)...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	logger.Error(msg, withCtx(ctx, fields)...)
}

func Panic(ctx context.Context, msg string, fields ...Field) {
	logger.Panic(msg, withCtx(ctx, fields)...)
}

func Debugf(ctx context.Context, format string, args ...any) {
	logger.Sugar().Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	logger.Sugar().Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	logger.Sugar().Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	logger.Sugar().Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	logger.Sugar().Fatalf(format, args...)
}
