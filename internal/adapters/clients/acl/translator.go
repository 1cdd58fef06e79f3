package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quoting-service/internal/adapters/clients"
	"github.com/jsamuelsen/quoting-service/internal/domain"
)

// BaseAdapter holds what every upstream adapter shares: the client and the
// service label used in errors.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter creates a BaseAdapter.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{
		client:      client,
		serviceName: serviceName,
	}
}

// ServiceName returns the upstream label.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Get sends a GET and returns the body of a 2xx response. The caller closes it.
func (a *BaseAdapter) Get(ctx context.Context, path, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path)

	return a.checkResponse(resp, err, operation)
}

// Post encodes payload as JSON, sends it and returns the body of a 2xx
// response. The caller closes it.
func (a *BaseAdapter) Post(ctx context.Context, path string, payload any, operation string) (io.ReadCloser, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.WrapIntegrationError(a.serviceName, operation, fmt.Errorf("encoding request: %w", err))
	}

	resp, err := a.client.Post(ctx, path, bytes.NewReader(encoded))

	return a.checkResponse(resp, err, operation)
}

func (a *BaseAdapter) checkResponse(resp *http.Response, err error, operation string) (io.ReadCloser, error) {
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, a.serviceName, operation)
	}

	return resp.Body, nil
}

// Decode reads body into T, closing it. A malformed body is an integration error.
func Decode[T any](a *BaseAdapter, body io.ReadCloser, operation string) (*T, error) {
	result, err := DecodeResponse[T](body)
	if err != nil {
		return nil, domain.WrapIntegrationError(a.serviceName, operation, err)
	}

	return result, nil
}

// DecodeResponse reads and decodes a JSON body, closing it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, fmt.Errorf("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// Translator converts one external DTO into a domain value.
type Translator[External any, Domain any] func(ext *External) (*Domain, error)

// TranslateSlice applies translate to each item and stops at the first error.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, *translated)
	}

	return result, nil
}
