package logger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.Logger
	once sync.Once

	buildLogger = func(cfg zap.Config) (*zap.Logger, error) {
		return cfg.Build(zap.AddCallerSkip(1))
	}
)

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	AdminIDKey   ContextKey = "admin_id"
)

// Init builds the process-wide logger. Development mode gets a coloured console encoder,
// every other env gets JSON with ISO8601 timestamps.
func Init(env string) {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		if env == "development" || env == "test" {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		l, err := buildLogger(cfg)
		if err != nil {
			panic(err)
		}
		log = l
	})
}

// GetLogger returns the underlying zap logger, falling back to a no-op logger
// when Init has not run (unit tests of packages that log).
func GetLogger() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// WithContext attaches request_id and admin_id found in ctx.
func WithContext(ctx context.Context) *zap.Logger {
	base := GetLogger()
	if ctx == nil {
		return base
	}

	var fields []zap.Field
	// gin stores the id under the plain string key
	if reqID, ok := ctx.Value("request_id").(string); ok && reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	} else if reqID, ok := ctx.Value(RequestIDKey).(string); ok && reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}
	if adminID, ok := ctx.Value(AdminIDKey).(string); ok && adminID != "" {
		fields = append(fields, zap.String("admin_id", adminID))
	}

	if len(fields) > 0 {
		return base.With(fields...)
	}
	return base
}

// Info logs a message at InfoLevel
func Info(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Info(msg, fields...)
}

// Error logs a message at ErrorLevel
func Error(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Error(msg, fields...)
}

// Debug logs a message at DebugLevel
func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Debug(msg, fields...)
}

// Warn logs a message at WarnLevel
func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Warn(msg, fields...)
}

// RequestLog is one served HTTP request.
type RequestLog struct {
	Method   string
	Path     string
	Status   int
	Latency  time.Duration
	ClientIP string
	Bytes    int
	Errors   string
}

// LogRequest writes r at Error for 5xx, Warn for 4xx and Info otherwise.
func LogRequest(ctx context.Context, r RequestLog) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.Path),
		zap.Int("status", r.Status),
		zap.Duration("latency", r.Latency),
		zap.String("client_ip", r.ClientIP),
		zap.Int("bytes", r.Bytes),
	}
	if r.Errors != "" {
		fields = append(fields, zap.String("errors", r.Errors))
	}

	l := WithContext(ctx)
	switch {
	case r.Status >= 500:
		l.Error("HTTP Request", fields...)
	case r.Status >= 400:
		l.Warn("HTTP Request", fields...)
	default:
		l.Info("HTTP Request", fields...)
	}
}

// Sync flushes buffered entries; errors from syncing stderr are ignored.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
