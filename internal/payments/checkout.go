package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ehospitality-server/internal/config"
)

// Client creates hosted checkout sessions for bill payment. Credentials and
// endpoints come from the injected configuration; there is no package-level
// API key.
type Client struct {
	secretKey  string
	baseURL    string
	successURL string
	cancelURL  string
	currency   string
	httpClient *http.Client
}

// Session is the gateway's checkout reference: the id is stored on the bill
// for reconciliation and the URL is where the patient gets redirected.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// NewClient builds a checkout client from the gateway configuration.
func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		secretKey:  cfg.SecretKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		currency:   cfg.Currency,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL overrides the gateway host (e.g. a sandbox or test server).
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
	return c
}

// CreateSession opens a single-payment checkout session for the bill. The
// amount is in major currency units; the gateway wants minor units. The
// success URL carries the bill id so the return callback can settle the
// right bill.
func (c *Client) CreateSession(ctx context.Context, billID string, amount float64, description string) (*Session, error) {
	if c.secretKey == "" {
		return nil, fmt.Errorf("payments: no gateway secret key configured")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", c.currency)
	form.Set("line_items[0][price_data][product_data][name]", description)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(int64(amount*100), 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", c.successURL+"?bill_id="+url.QueryEscape(billID))
	form.Set("cancel_url", c.cancelURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("payments: build session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments: create session: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("payments: read session response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payments: gateway returned %d: %s", resp.StatusCode, string(body))
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("payments: decode session response: %w", err)
	}
	if session.ID == "" || session.URL == "" {
		return nil, fmt.Errorf("payments: gateway response missing session id or url")
	}
	return &session, nil
}
