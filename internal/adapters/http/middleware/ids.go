// Package middleware provides the gin middleware of the quoting API.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quoting-service/internal/platform/logging"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID and ContextKeyCorrelationID are the gin context keys.
	ContextKeyRequestID     = "request_id"
	ContextKeyCorrelationID = "correlation_id"

	// maxInboundIDLength bounds caller supplied IDs before they reach logs
	// and upstream headers.
	maxInboundIDLength = 128
)

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyCorrelationID
)

// RequestIDFromContext returns the request ID stored by RequestID, or "".
// Upstream clients use it to propagate the ID.
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxKeyRequestID)
}

// CorrelationIDFromContext returns the correlation ID stored by CorrelationID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxKeyCorrelationID)
}

// ContextWithRequestID stores id as the request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// ContextWithCorrelationID stores id as the correlation ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyCorrelationID, id)
}

func stringValue(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}

// RequestID takes X-Request-ID from the request or generates a UUID. The ID
// is echoed in the response, stored on the gin and request contexts, and
// added to the context logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := inboundID(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)

		ctx := ContextWithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(logging.WithRequestID(ctx, id))

		c.Next()
	}
}

// CorrelationID takes X-Correlation-ID from the request. When absent, this
// request starts the transaction and the request ID is reused, so RequestID
// must run first.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := inboundID(c.GetHeader(HeaderCorrelationID))
		if id == "" {
			id = GetRequestID(c)
		}

		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ContextKeyCorrelationID, id)
		c.Header(HeaderCorrelationID, id)

		ctx := ContextWithCorrelationID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(logging.WithCorrelationID(ctx, id))

		c.Next()
	}
}

// GetRequestID returns the request ID from c, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID from c, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

// inboundID discards caller IDs that are too long or contain anything but
// printable ASCII.
func inboundID(id string) string {
	if id == "" || len(id) > maxInboundIDLength {
		return ""
	}

	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return ""
		}
	}

	return id
}
