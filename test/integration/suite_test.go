//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
)

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	stack        *stack
	response     *http.Response
	responseBody []byte
	lastQuoteID  string
}

// reset tears down the previous scenario's stack.
func (tc *testContext) reset() {
	if tc.stack != nil {
		tc.stack.Close()
	}

	tc.stack = nil
	tc.response = nil
	tc.responseBody = nil
	tc.lastQuoteID = ""
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &testContext{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the quoting service is running$`, tc.theQuotingServiceIsRunning)
	ctx.Step(`^the (Shopify|Cin7) API responds with status (\d+)$`, tc.theAPIRespondsWithStatus)
	ctx.Step(`^the feature "([^"]*)" is enabled$`, tc.theFeatureIsEnabled)
	ctx.Step(`^I submit a quote for (\d+) units? of "([^"]*)"$`, tc.iSubmitAQuote)
	ctx.Step(`^I request GET "([^"]*)"$`, tc.iRequestGET)
	ctx.Step(`^I fetch the last quote$`, tc.iFetchTheLastQuote)
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Step(`^the quote status should be "([^"]*)"$`, tc.theQuoteStatusShouldBe)
	ctx.Step(`^the quote field "([^"]*)" should be "([^"]*)"$`, tc.theQuoteFieldShouldBe)
	ctx.Step(`^the quote field "([^"]*)" should be empty$`, tc.theQuoteFieldShouldBeEmpty)
	ctx.Step(`^the stored quote should have (\d+) errors?$`, tc.theStoredQuoteShouldHaveErrors)
	ctx.Step(`^(Shopify|Cin7) should have received (\d+) requests?$`, tc.shouldHaveReceived)
	ctx.Step(`^the Cin7 reference should start with "([^"]*)"$`, tc.theCin7ReferenceShouldStartWith)
}

func (tc *testContext) theQuotingServiceIsRunning() error {
	s, err := newStack(nil)
	if err != nil {
		return fmt.Errorf("starting stack: %w", err)
	}

	tc.stack = s

	resp, _, err := s.get(context.Background(), "/-/live")
	if err != nil {
		return fmt.Errorf("service is not running: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("liveness check failed with status %d", resp.StatusCode)
	}

	return nil
}

func (tc *testContext) platform(name string) *upstream {
	if name == "Shopify" {
		return tc.stack.shopify
	}

	return tc.stack.cin7
}

func (tc *testContext) theAPIRespondsWithStatus(name string, status int) error {
	tc.platform(name).failWith(status)
	return nil
}

func (tc *testContext) theFeatureIsEnabled(flag string) error {
	tc.stack.flags.Set(flag, "true")
	return nil
}

func (tc *testContext) iSubmitAQuote(qty int, code string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, body, err := tc.stack.post(ctx, "/api/quotes", quoteRequestBody(code, qty))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	tc.response, tc.responseBody = resp, body

	var summary struct {
		QuoteID string `json:"quote_id"`
	}
	if json.Unmarshal(body, &summary) == nil {
		tc.lastQuoteID = summary.QuoteID
	}

	return nil
}

func (tc *testContext) iRequestGET(path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, body, err := tc.stack.get(ctx, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	tc.response, tc.responseBody = resp, body

	return nil
}

func (tc *testContext) iFetchTheLastQuote() error {
	if tc.lastQuoteID == "" {
		return errors.New("no quote has been created")
	}

	return tc.iRequestGET("/api/quotes/" + tc.lastQuoteID)
}

func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return errors.New("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

func (tc *testContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(tc.responseBody), text) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theQuoteStatusShouldBe(status string) error {
	var summary struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(tc.responseBody, &summary); err != nil {
		return fmt.Errorf("decoding summary: %w", err)
	}

	if summary.Status != status {
		return fmt.Errorf("expected quote status %q, got %q", status, summary.Status)
	}

	return nil
}

// quoteFields decodes either a summary or a {"quote": ...} envelope.
func (tc *testContext) quoteFields() (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(tc.responseBody, &fields); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if inner, ok := fields["quote"].(map[string]any); ok {
		return inner, nil
	}

	return fields, nil
}

func (tc *testContext) theQuoteFieldShouldBe(field, want string) error {
	fields, err := tc.quoteFields()
	if err != nil {
		return err
	}

	if got := fmt.Sprint(fields[field]); got != want {
		return fmt.Errorf("expected %s to be %q, got %q", field, want, got)
	}

	return nil
}

func (tc *testContext) theQuoteFieldShouldBeEmpty(field string) error {
	fields, err := tc.quoteFields()
	if err != nil {
		return err
	}

	value, ok := fields[field]
	if !ok {
		return fmt.Errorf("response has no %s field", field)
	}

	if value != nil {
		return fmt.Errorf("expected %s to be null, got %v", field, value)
	}

	return nil
}

func (tc *testContext) theStoredQuoteShouldHaveErrors(count int) error {
	record, err := tc.stack.store.GetByID(context.Background(), tc.lastQuoteID)
	if err != nil {
		return fmt.Errorf("loading quote %q: %w", tc.lastQuoteID, err)
	}

	if len(record.Errors) != count {
		return fmt.Errorf("expected %d errors, got %d: %v", count, len(record.Errors), record.Errors)
	}

	return nil
}

func (tc *testContext) shouldHaveReceived(name string, count int) error {
	if got := int(tc.platform(name).calls.Load()); got != count {
		return fmt.Errorf("expected %s to receive %d requests, got %d", name, count, got)
	}

	return nil
}

func (tc *testContext) theCin7ReferenceShouldStartWith(prefix string) error {
	body := tc.stack.cin7.lastBody()
	if body == nil {
		return errors.New("cin7 received no quote")
	}

	reference, _ := body["reference"].(string)
	if !strings.HasPrefix(reference, prefix) {
		return fmt.Errorf("expected reference starting %q, got %q", prefix, reference)
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
