package logger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func resetLogger(t *testing.T) {
	t.Helper()
	log = nil
	once = sync.Once{}
	t.Cleanup(func() {
		log = nil
		once = sync.Once{}
	})
}

func TestInitAndContextLogging(t *testing.T) {
	resetLogger(t)
	Init("development")
	require.NotNil(t, GetLogger())

	ctx := context.WithValue(context.Background(), "request_id", "req-1")
	ctx = context.WithValue(ctx, AdminIDKey, "admin-1")
	assert.NotNil(t, WithContext(ctx))

	Info(ctx, "info")
	Debug(ctx, "debug")
	Warn(ctx, "warn")
	Error(ctx, "error")
	LogRequest(ctx, RequestLog{Method: "GET", Path: "/health", Status: 200, Latency: 10 * time.Millisecond, ClientIP: "127.0.0.1"})
	LogRequest(ctx, RequestLog{Method: "POST", Path: "/api/content/messages", Status: 400, Errors: "email invalid"})
	LogRequest(ctx, RequestLog{Method: "GET", Path: "/boom", Status: 500, Latency: time.Millisecond})
	Sync()
}

func TestWithContextNilAndTypedKey(t *testing.T) {
	resetLogger(t)
	Init("production")

	//nolint:staticcheck // nil context is handled explicitly
	assert.NotNil(t, WithContext(nil))
	ctx := context.WithValue(context.Background(), RequestIDKey, "typed")
	assert.NotNil(t, WithContext(ctx))
	assert.NotNil(t, WithContext(context.Background()))
}

func TestGetLogger_NopBeforeInit(t *testing.T) {
	resetLogger(t)
	assert.NotNil(t, GetLogger())
	Info(context.Background(), "dropped")
}

func TestInit_PanicWhenLoggerBuildFails(t *testing.T) {
	resetLogger(t)
	orig := buildLogger
	t.Cleanup(func() { buildLogger = orig })

	buildLogger = func(zap.Config) (*zap.Logger, error) {
		return nil, errors.New("build failed")
	}
	assert.Panics(t, func() { Init("production") })
}
