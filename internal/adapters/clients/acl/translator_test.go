package acl

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoting-service/internal/adapters/clients"
	"github.com/jsamuelsen/quoting-service/internal/domain"
	"github.com/jsamuelsen/quoting-service/internal/platform/config"
)

func testClientConfig(serviceName, baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: serviceName,
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
		Transport: config.TransportConfig{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     time.Second,
		},
	}
}

func newTestClient(t *testing.T, cfg *clients.Config) *clients.Client {
	t.Helper()

	client, err := clients.New(cfg)
	require.NoError(t, err)

	return client
}

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestMapHTTPError_StatusWithShopifyErrors(t *testing.T) {
	err := MapHTTPError(response(http.StatusUnprocessableEntity, `{"errors":{"line_items":["is invalid"]}}`),
		nil, "shopify", "create draft order")

	require.Error(t, err)
	assert.True(t, domain.IsIntegration(err))

	var integration *domain.IntegrationError
	require.ErrorAs(t, err, &integration)
	assert.Equal(t, "shopify", integration.Service)
	assert.Equal(t, "create draft order", integration.Operation)
	assert.Equal(t, http.StatusUnprocessableEntity, integration.StatusCode)
	assert.Equal(t, "line_items is invalid", integration.Body)
}

func TestMapHTTPError_StringErrors(t *testing.T) {
	err := MapHTTPError(response(http.StatusNotFound, `{"errors":"Not Found"}`), nil, "shopify", "fetch product")

	var integration *domain.IntegrationError
	require.ErrorAs(t, err, &integration)
	assert.Equal(t, http.StatusNotFound, integration.StatusCode)
	assert.Equal(t, "Not Found", integration.Body)
	assert.Equal(t, "shopify fetch product failed with status 404: Not Found", err.Error())
}

func TestMapHTTPError_PlainBody(t *testing.T) {
	err := MapHTTPError(response(http.StatusInternalServerError, "upstream exploded\n"), nil, "cin7", "create quote")

	var integration *domain.IntegrationError
	require.ErrorAs(t, err, &integration)
	assert.Equal(t, "upstream exploded", integration.Body)
}

func TestMapHTTPError_CapsBody(t *testing.T) {
	err := MapHTTPError(response(http.StatusBadGateway, strings.Repeat("x", 3*maxErrorBody)), nil, "cin7", "create quote")

	var integration *domain.IntegrationError
	require.ErrorAs(t, err, &integration)
	assert.Len(t, integration.Body, maxErrorBody)
}

func TestMapHTTPError_CircuitOpen(t *testing.T) {
	err := MapHTTPError(nil, clients.ErrCircuitOpen, "cin7", "create quote")

	assert.True(t, domain.IsIntegration(err))
	assert.ErrorIs(t, err, clients.ErrCircuitOpen)
	assert.Contains(t, err.Error(), "cin7 is unavailable")
}

func TestMapHTTPError_TransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := MapHTTPError(nil, cause, "shopify", "fetch product")

	assert.True(t, domain.IsIntegration(err))
	assert.ErrorIs(t, err, cause)
}

func TestMapHTTPError_SuccessReturnsNil(t *testing.T) {
	assert.NoError(t, MapHTTPError(response(http.StatusCreated, "{}"), nil, "cin7", "create quote"))
}

func TestMapHTTPError_NilResponse(t *testing.T) {
	err := MapHTTPError(nil, nil, "cin7", "create quote")

	assert.True(t, domain.IsIntegration(err))
	assert.Contains(t, err.Error(), "no response received")
}

func TestParseErrorResponse(t *testing.T) {
	tests := map[string]struct {
		body string
		want string
	}{
		"message":    {`{"message":"Invalid credentials"}`, "Invalid credentials"},
		"list":       {`{"errors":["a","b"]}`, "a; b"},
		"empty":      {`{}`, ""},
		"not json":   {`<html>`, ""},
		"number err": {`{"errors":42}`, "42"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			parsed := ParseErrorResponse([]byte(tt.body))
			if tt.want == "" {
				assert.Nil(t, parsed)
				return
			}

			require.NotNil(t, parsed)
			assert.Equal(t, tt.want, parsed.Summary())
		})
	}
}

func TestErrorResponse_SummaryFieldMapIsSorted(t *testing.T) {
	body := []byte(`{"errors":{"line_items":["is invalid"],"email":["is blank"],"customer":["is missing","is required"]}}`)
	want := "customer is missing, is required; email is blank; line_items is invalid"

	for range 20 {
		parsed := ParseErrorResponse(body)
		require.NotNil(t, parsed)
		assert.Equal(t, want, parsed.Summary())
	}
}

func TestBaseAdapter_GetAndPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"value":"fine"}`))
		case "/echo":
			raw, _ := io.ReadAll(r.Body)
			_, _ = w.Write(raw)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":"Not Found"}`))
		}
	}))
	defer server.Close()

	adapter := NewBaseAdapter(newTestClient(t, testClientConfig("shopify", server.URL)), "shopify")
	assert.Equal(t, "shopify", adapter.ServiceName())

	type payload struct {
		Value string `json:"value"`
	}

	body, err := adapter.Get(context.Background(), "/ok", "get ok")
	require.NoError(t, err)

	got, err := Decode[payload](&adapter, body, "get ok")
	require.NoError(t, err)
	assert.Equal(t, "fine", got.Value)

	body, err = adapter.Post(context.Background(), "/echo", payload{Value: "echoed"}, "echo")
	require.NoError(t, err)

	got, err = Decode[payload](&adapter, body, "echo")
	require.NoError(t, err)
	assert.Equal(t, "echoed", got.Value)

	_, err = adapter.Get(context.Background(), "/missing", "get missing")

	var integration *domain.IntegrationError
	require.ErrorAs(t, err, &integration)
	assert.Equal(t, http.StatusNotFound, integration.StatusCode)
}

func TestBaseAdapter_PostUnencodablePayload(t *testing.T) {
	adapter := NewBaseAdapter(newTestClient(t, testClientConfig("cin7", "http://127.0.0.1:1")), "cin7")

	_, err := adapter.Post(context.Background(), "/Quotes", map[string]any{"bad": make(chan int)}, "create quote")

	assert.True(t, domain.IsIntegration(err))
	assert.Contains(t, err.Error(), "encoding request")
}

func TestDecode_MalformedBody(t *testing.T) {
	adapter := NewBaseAdapter(newTestClient(t, testClientConfig("cin7", "http://127.0.0.1:1")), "cin7")

	_, err := Decode[map[string]any](&adapter, io.NopCloser(strings.NewReader("{broken")), "create quote")

	assert.True(t, domain.IsIntegration(err))
}

func TestDecodeResponse_NilBody(t *testing.T) {
	_, err := DecodeResponse[map[string]any](nil)
	assert.Error(t, err)
}

func TestTranslateSlice(t *testing.T) {
	double := func(n *int) (*int, error) {
		if *n < 0 {
			return nil, errors.New("negative")
		}

		v := *n * 2

		return &v, nil
	}

	got, err := TranslateSlice([]int{1, 2, 3}, double)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, got)

	_, err = TranslateSlice([]int{1, -1}, double)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "translating item 1")

	empty, err := TranslateSlice([]int{}, double)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
