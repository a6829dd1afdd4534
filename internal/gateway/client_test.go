package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"feabscopy/internal/config"
)

// setupTestServer creates a new test server and a Client configured to use it.
func setupTestServer(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)

	c := &Client{
		client:    resty.New().SetBaseURL(server.URL),
		apiKey:    "test_api_key",
		secretKey: "test_secret_key",
		logger:    zap.NewNop(),
		limiter:   rate.NewLimiter(rate.Inf, 1), // Allow all requests in tests
	}

	return c, server
}

func TestCreatePayout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/payouts", r.URL.Path)
			assert.Equal(t, "test_api_key", r.Header.Get("X-Api-Key"))
			assert.NotEmpty(t, r.Header.Get("X-Signature"))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"reference": "PAY-123", "status": "accepted"}`))
		})

		c, server := setupTestServer(handler)
		defer server.Close()

		payout, err := c.CreatePayout(context.Background(), "user-1", decimal.NewFromInt(144400))

		assert.NoError(t, err)
		assert.Equal(t, "PAY-123", payout.Reference)
		assert.Equal(t, "accepted", payout.Status)
	})

	t.Run("ProviderRejection", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error": "payout limit exceeded"}`))
		})

		c, server := setupTestServer(handler)
		defer server.Close()

		payout, err := c.CreatePayout(context.Background(), "user-1", decimal.NewFromInt(144400))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create payout")
		assert.Nil(t, payout)
	})
}

func TestCreateVirtualAccount(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/virtual-accounts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"bank_name": "WEMA BANK", "account_number": "9905380079", "account_name": "Admin User", "reference": "URF-1"}`))
	})

	c, server := setupTestServer(handler)
	defer server.Close()

	va, err := c.CreateVirtualAccount(context.Background(), "user-1", "Admin User")

	assert.NoError(t, err)
	assert.Equal(t, "WEMA BANK", va.BankName)
	assert.Equal(t, "9905380079", va.AccountNumber)
}

func TestNewClient(t *testing.T) {
	cfg := &config.Gateway{
		BaseURL:        "https://pay.example.com",
		ApiKey:         "k",
		SecretKey:      "s",
		RateLimit:      10,
		RateLimitBurst: 5,
	}
	c := NewClient(cfg, zap.NewNop())
	assert.NotNil(t, c)
	assert.Equal(t, cfg.ApiKey, c.apiKey)
	assert.Equal(t, cfg.SecretKey, c.secretKey)
}
