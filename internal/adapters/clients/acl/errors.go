package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen/quoting-service/internal/adapters/clients"
	"github.com/jsamuelsen/quoting-service/internal/domain"
)

// maxErrorBody caps how much of an upstream error body is kept.
const maxErrorBody = 4 << 10

// ErrorResponse is the error envelope both upstreams use. Shopify sends
// "errors" as a string, a list or a field map; Cin7 sends "message".
type ErrorResponse struct {
	Errors  json.RawMessage `json:"errors,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Summary flattens the envelope into one line. It returns "" when the
// envelope carries nothing.
func (e *ErrorResponse) Summary() string {
	if e.Message != "" {
		return e.Message
	}

	if len(e.Errors) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(e.Errors, &text); err == nil {
		return text
	}

	var list []string
	if err := json.Unmarshal(e.Errors, &list); err == nil {
		return strings.Join(list, "; ")
	}

	var fields map[string][]string
	if err := json.Unmarshal(e.Errors, &fields); err == nil {
		parts := make([]string, 0, len(fields))
		for _, field := range slices.Sorted(maps.Keys(fields)) {
			parts = append(parts, field+" "+strings.Join(fields[field], ", "))
		}

		return strings.Join(parts, "; ")
	}

	return string(e.Errors)
}

// ParseErrorResponse decodes body as an ErrorResponse. It returns nil when
// the body is not a recognizable envelope.
func ParseErrorResponse(body []byte) *ErrorResponse {
	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}

	if resp.Summary() == "" {
		return nil
	}

	return &resp
}

// MapHTTPError turns a failed exchange into a *domain.IntegrationError.
//
// clientErr covers failures with no response, including an open circuit.
// Otherwise resp must be a non-2xx response whose body is read and capped.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.WrapIntegrationError(serviceName, operation, errors.New("no response received"))
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	body := readErrorBody(resp)
	if parsed := ParseErrorResponse([]byte(body)); parsed != nil {
		body = parsed.Summary()
	}

	return domain.NewIntegrationError(serviceName, operation, resp.StatusCode, body)
}

func mapClientError(err error, serviceName, operation string) error {
	if errors.Is(err, clients.ErrCircuitOpen) {
		return domain.WrapIntegrationError(serviceName, operation,
			fmt.Errorf("%s is unavailable: %w", serviceName, err))
	}

	return domain.WrapIntegrationError(serviceName, operation, err)
}

func readErrorBody(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(raw))
}
