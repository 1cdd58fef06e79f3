package acl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoting-service/internal/domain"
	"github.com/jsamuelsen/quoting-service/internal/platform/config"
)

var fixedNow = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func newCin7(t *testing.T, handler http.Handler) *Cin7Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Cin7Config{
		Name:            "cin7",
		BaseURL:         server.URL,
		Username:        "acme",
		APIKey:          "cin7-key",
		Stage:           "New",
		Probability:     50.0,
		ReferencePrefix: "WEB-",
	}

	clientCfg := testClientConfig("cin7", server.URL)
	clientCfg.AuthFunc = Cin7Auth(cfg.Username, cfg.APIKey)

	return NewCin7Client(Cin7ClientConfig{
		Client: newTestClient(t, clientCfg),
		Cin7:   cfg,
		Now:    func() time.Time { return fixedNow },
	})
}

func TestCin7Client_CreateQuote_Payload(t *testing.T) {
	var (
		sent           []map[string]any
		user, password string
		hasAuth        bool
	)

	client := newCin7(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Quotes", r.URL.Path)

		user, password, hasAuth = r.BasicAuth()

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &sent))

		_, _ = w.Write([]byte(`[{"id":5551,"code":"Q-5551","success":true}]`))
	}))

	req := sampleRequest()
	req.Customer.Phone = ptr("0400 000 000")

	quote, err := client.CreateQuote(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, &domain.UpstreamQuote{ID: "5551", Reference: "Q-5551"}, quote)
	assert.True(t, hasAuth)
	assert.Equal(t, "acme", user)
	assert.Equal(t, "cin7-key", password)

	require.Len(t, sent, 1)
	body := sent[0]

	assert.Equal(t, "Jane", body["firstName"])
	assert.Equal(t, "Citizen", body["lastName"])
	assert.Equal(t, "Acme Fabrication", body["company"])
	assert.Equal(t, "jane@example.com", body["email"])
	assert.Equal(t, "0400 000 000", body["phone"])
	assert.Equal(t, "Jane", body["deliveryFirstName"])
	assert.Equal(t, "Acme Fabrication", body["deliveryCompany"])
	assert.Equal(t, "1 Industrial Way", body["deliveryAddress1"])
	assert.Equal(t, "", body["deliveryAddress2"])
	assert.Equal(t, "VIC", body["deliveryState"])
	assert.Equal(t, "3000", body["deliveryPostalCode"])
	assert.Equal(t, "Australia", body["deliveryCountry"])
	assert.Equal(t, "New", body["stage"])
	assert.InDelta(t, 50.0, body["probability"], 0.0001)
	assert.Equal(t, "WEB-20260304050607", body["reference"])

	items := body["lineItems"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, map[string]any{"code": "FL-1500", "name": "Fiber Laser 1500W", "qty": 1.0, "unitPrice": 15999.5}, items[0])
	assert.Equal(t, map[string]any{"code": "CHILLER", "name": "Water Chiller", "qty": 2.0, "unitPrice": 0.0}, items[1])
}

func TestCin7Client_CreateQuote_DefaultsPhoneAndReference(t *testing.T) {
	var sent []map[string]any

	client := newCin7(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &sent)
		_, _ = w.Write([]byte(`[{"id":"77"}]`))
	}))

	quote, err := client.CreateQuote(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "77", quote.ID)
	assert.Equal(t, "WEB-20260304050607", quote.Reference)
	require.Len(t, sent, 1)
	assert.Equal(t, "", sent[0]["phone"])
}

func TestCin7Client_CreateQuote_Errors(t *testing.T) {
	tests := map[string]struct {
		status int
		body   string
		want   string
	}{
		"empty array":     {http.StatusOK, `[]`, "array is empty"},
		"object":          {http.StatusOK, `{"id":1}`, "not an array"},
		"success false":   {http.StatusOK, `[{"id":0,"success":false,"errors":["Email is required"]}]`, "Email is required"},
		"success no info": {http.StatusOK, `[{"success":false}]`, "upstream reported failure"},
		"missing id":      {http.StatusOK, `[{"code":"Q-1"}]`, "missing quote id"},
		"unauthorized":    {http.StatusUnauthorized, `{"message":"Invalid credentials"}`, "status 401: Invalid credentials"},
		"malformed":       {http.StatusOK, `[{`, "decoding response"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			client := newCin7(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.CreateQuote(context.Background(), sampleRequest())

			require.Error(t, err)
			assert.True(t, domain.IsIntegration(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewCin7Client_Defaults(t *testing.T) {
	client := NewCin7Client(Cin7ClientConfig{
		Client: newTestClient(t, testClientConfig("cin7", "http://127.0.0.1:1")),
	})

	assert.Equal(t, config.DefaultCin7Stage, client.stage)
	assert.Equal(t, config.DefaultCin7ReferencePrefix, client.prefix)
	assert.NotNil(t, client.now)
}

func TestNewCin7Client_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() { NewCin7Client(Cin7ClientConfig{}) })
}
