package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var global = zap.NewNop().Sugar()

// Init replaces the global logger. Unknown levels fall back to info.
func Init(level string, development bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	global = l.Sugar()
	return nil
}

// Set is used by tests and by callers that build their own zap logger.
func Set(l *zap.Logger) {
	global = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func Sync() {
	_ = global.Sync()
}

// WithFields returns a context whose log lines carry the given key/value pairs.
func WithFields(ctx context.Context, keysAndValues ...interface{}) context.Context {
	fields := append(fromContext(ctx), keysAndValues...)
	return context.WithValue(ctx, ctxKey{}, fields)
}

func fromContext(ctx context.Context) []interface{} {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(ctxKey{}).([]interface{})
	out := make([]interface{}, len(fields))
	copy(out, fields)
	return out
}

func with(ctx context.Context) *zap.SugaredLogger {
	fields := fromContext(ctx)
	if len(fields) == 0 {
		return global
	}
	return global.With(fields...)
}

func Debugf(ctx context.Context, template string, args ...interface{}) {
	with(ctx).Debugf(template, args...)
}

func Infof(ctx context.Context, template string, args ...interface{}) {
	with(ctx).Infof(template, args...)
}

func Warnf(ctx context.Context, template string, args ...interface{}) {
	with(ctx).Warnf(template, args...)
}

func Errorf(ctx context.Context, template string, args ...interface{}) {
	with(ctx).Errorf(template, args...)
}

func Error(ctx context.Context, msg string) {
	with(ctx).Error(msg)
}

func Fatal(ctx context.Context, err error) {
	with(ctx).Fatal(err)
}
