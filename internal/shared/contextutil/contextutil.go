package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a private type so our keys never collide with other libraries
type contextKey string

const (
	requestIDKey  contextKey = "request_id"
	tenantCodeKey contextKey = "tenant_code"
	loggerKey     contextKey = "logger"
)

// WithRequestID injects the request id into the context
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID reads the request id from the context, empty if unset
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// WithTenantCode injects the resolved tenant code into the context
func WithTenantCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, tenantCodeKey, code)
}

// GetTenantCode reads the tenant code from the context, empty if unset
func GetTenantCode(ctx context.Context) string {
	if code, ok := ctx.Value(tenantCodeKey).(string); ok {
		return code
	}
	return ""
}

// WithLogger stores a (usually decorated) zap logger in the context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the context logger, falling back so it never returns nil
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return zap.NewNop()
}
