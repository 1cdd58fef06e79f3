package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestNew_Disabled(t *testing.T) {
	p, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.NoError(t, p.Shutdown(context.Background()))
	assert.NotNil(t, otel.GetTextMapPropagator())
}

func TestMiddleware_EchoesTraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	var handlerTraceID string

	engine := gin.New()
	engine.Use(Middleware("quoting-service")...)
	engine.GET("/api/quotes", func(c *gin.Context) {
		handlerTraceID = trace.SpanContextFromContext(c.Request.Context()).TraceID().String()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quotes", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get(TraceIDHeader))
	assert.Equal(t, handlerTraceID, w.Header().Get(TraceIDHeader))
}
