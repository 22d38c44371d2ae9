package log

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// Init builds a Logger from cfg. Invalid levels fall back to info.
func Init(cfg ZapConfig) Logger {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zcfg zap.Config
	if cfg.Mode == ModeProduction {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Encoding {
	case EncodingJSON:
		zcfg.Encoding = EncodingJSON
	default:
		zcfg.Encoding = EncodingConsole
	}

	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.ColorEnabled && zcfg.Encoding == EncodingConsole {
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		logger = zap.NewNop()
	}

	return &zapLogger{sugar: logger.Sugar()}
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

// WithRequestID stores a request id that is attached to every entry logged with ctx.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// RequestID returns the request id stored by WithRequestID, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (l *zapLogger) with(ctx context.Context) *zap.SugaredLogger {
	if id := RequestID(ctx); id != "" {
		return l.sugar.With(fieldRequestID, id)
	}
	return l.sugar
}

// Debug, Info, Warn and Error accept a message followed by key/value pairs, as zap's *w methods do.
func (l *zapLogger) Debug(ctx context.Context, arg ...any) {
	msg, kv := split(arg)
	l.with(ctx).Debugw(msg, kv...)
}

func (l *zapLogger) Info(ctx context.Context, arg ...any) {
	msg, kv := split(arg)
	l.with(ctx).Infow(msg, kv...)
}

func (l *zapLogger) Warn(ctx context.Context, arg ...any) {
	msg, kv := split(arg)
	l.with(ctx).Warnw(msg, kv...)
}

func (l *zapLogger) Error(ctx context.Context, arg ...any) {
	msg, kv := split(arg)
	l.with(ctx).Errorw(msg, kv...)
}

func (l *zapLogger) DPanic(ctx context.Context, arg ...any) {
	msg, kv := split(arg)
	l.with(ctx).DPanicw(msg, kv...)
}

func (l *zapLogger) Panic(ctx context.Context, arg ...any) {
	msg, kv := split(arg)
	l.with(ctx).Panicw(msg, kv...)
}

func (l *zapLogger) Fatal(ctx context.Context, arg ...any) {
	msg, kv := split(arg)
	l.with(ctx).Fatalw(msg, kv...)
}

func (l *zapLogger) Debugf(ctx context.Context, template string, arg ...any) {
	l.with(ctx).Debugf(template, arg...)
}
func (l *zapLogger) Infof(ctx context.Context, template string, arg ...any) {
	l.with(ctx).Infof(template, arg...)
}
func (l *zapLogger) Warnf(ctx context.Context, template string, arg ...any) {
	l.with(ctx).Warnf(template, arg...)
}
func (l *zapLogger) Errorf(ctx context.Context, template string, arg ...any) {
	l.with(ctx).Errorf(template, arg...)
}
func (l *zapLogger) DPanicf(ctx context.Context, template string, arg ...any) {
	l.with(ctx).DPanicf(template, arg...)
}
func (l *zapLogger) Panicf(ctx context.Context, template string, arg ...any) {
	l.with(ctx).Panicf(template, arg...)
}
func (l *zapLogger) Fatalf(ctx context.Context, template string, arg ...any) {
	l.with(ctx).Fatalf(template, arg...)
}

// split turns ("msg", k1, v1, ...) into zap's message + keysAndValues form.
// A call like Error(ctx, "failed: ", err) has an odd tail and is rendered as one message.
func split(arg []any) (string, []any) {
	if len(arg) == 0 {
		return "", nil
	}
	msg, ok := arg[0].(string)
	if !ok {
		return fmt.Sprint(arg...), nil
	}
	rest := arg[1:]
	if len(rest)%2 != 0 {
		return fmt.Sprint(arg...), nil
	}
	return msg, rest
}
