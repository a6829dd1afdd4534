package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"feabscopy/internal/config"
)

// VirtualAccount is a provider-assigned NGN collection account for bank
// transfer deposits.
type VirtualAccount struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	Reference     string `json:"reference"`
}

// Payout is an accepted NGN bank payout request.
type Payout struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// DepositInvoice is a crypto deposit invoice (USDT, credited as USD).
type DepositInvoice struct {
	InvoiceID  string `json:"invoice_id"`
	PaymentURL string `json:"payment_url"`
}

// ClientInterface defines the interface for the payment provider client.
// The ledger only ever talks to this interface, so tests can stub the
// provider out entirely.
type ClientInterface interface {
	CreateVirtualAccount(ctx context.Context, userID, accountName string) (*VirtualAccount, error)
	CreatePayout(ctx context.Context, userID string, ngnAmount decimal.Decimal) (*Payout, error)
	CreateDepositInvoice(ctx context.Context, userID string, usdAmount decimal.Decimal) (*DepositInvoice, error)
}

// Client is a client for the payment provider REST API.
// It implements ClientInterface.
type Client struct {
	client    *resty.Client
	apiKey    string
	secretKey string
	logger    *zap.Logger
	limiter   *rate.Limiter
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new payment provider API client.
func NewClient(cfg *config.Gateway, logger *zap.Logger) *Client {
	client := resty.New().SetBaseURL(cfg.BaseURL)

	// Initialize the rate limiter
	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:    client,
		apiKey:    cfg.ApiKey,
		secretKey: cfg.SecretKey,
		logger:    logger,
		limiter:   limiter,
	}
}

// sign creates a HMAC-SHA256 signature over the request body.
func (c *Client) sign(body string) string {
	h := hmac.New(sha256.New, []byte(c.secretKey))
	h.Write([]byte(body))
	return hex.EncodeToString(h.Sum(nil))
}

// CreateVirtualAccount asks the provider for a dedicated NGN collection
// account for the user.
func (c *Client) CreateVirtualAccount(ctx context.Context, userID, accountName string) (*VirtualAccount, error) {
	body := fmt.Sprintf(`{"user_id":%q,"account_name":%q}`, userID, accountName)

	req := c.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Api-Key", c.apiKey).
		SetHeader("X-Signature", c.sign(body)).
		SetBody(body).
		SetResult(&VirtualAccount{})

	resp, err := c.doRequest(ctx, "POST", "/v1/virtual-accounts", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create virtual account: %w", err)
	}
	return resp.Result().(*VirtualAccount), nil
}

// CreatePayout requests an NGN bank payout. The ledger must only commit
// the corresponding balance change after this call succeeds.
func (c *Client) CreatePayout(ctx context.Context, userID string, ngnAmount decimal.Decimal) (*Payout, error) {
	body := fmt.Sprintf(`{"user_id":%q,"currency":"NGN","amount":%q}`, userID, ngnAmount.StringFixed(2))

	req := c.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Api-Key", c.apiKey).
		SetHeader("X-Signature", c.sign(body)).
		SetBody(body).
		SetResult(&Payout{})

	resp, err := c.doRequest(ctx, "POST", "/v1/payouts", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create payout: %w", err)
	}
	return resp.Result().(*Payout), nil
}

// CreateDepositInvoice creates a USDT deposit invoice for the given USD
// amount.
func (c *Client) CreateDepositInvoice(ctx context.Context, userID string, usdAmount decimal.Decimal) (*DepositInvoice, error) {
	body := fmt.Sprintf(`{"user_id":%q,"currency":"USDT","usd_amount":%q}`, userID, usdAmount.StringFixed(2))

	req := c.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Api-Key", c.apiKey).
		SetHeader("X-Signature", c.sign(body)).
		SetBody(body).
		SetResult(&DepositInvoice{})

	resp, err := c.doRequest(ctx, "POST", "/v1/invoices", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create deposit invoice: %w", err)
	}
	return resp.Result().(*DepositInvoice), nil
}

// doRequest handles the actual request execution with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		// Wait for the rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.SetContext(ctx).Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil // Success
		}

		// Analyze error and decide whether to retry
		shouldRetry := false
		var retryAfter time.Duration

		if resp != nil {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests {
				shouldRetry = true
				retryAfterHeader := resp.Header().Get("Retry-After")
				if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= 500 { // Server errors
				shouldRetry = true
			}
		} else { // Network or other client-side errors
			shouldRetry = true
		}

		if !shouldRetry {
			return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
		}

		// If we should retry, calculate wait time
		if retryAfter == 0 {
			// Exponential backoff: 1s, 2s, 4s
			retryAfter = time.Duration(math.Pow(2, float64(i))) * time.Second
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}
