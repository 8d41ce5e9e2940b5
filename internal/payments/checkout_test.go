package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ehospitality-server/internal/config"
)

func testClient(baseURL string) *Client {
	return NewClient(config.PaymentConfig{
		SecretKey:  "sk_test_123",
		SuccessURL: "http://localhost:3001/api/v1/payments/success",
		CancelURL:  "http://localhost:3001/api/v1/bills",
		Currency:   "inr",
	}).WithBaseURL(baseURL)
}

func TestCreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "inr", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "Consultation Fee", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "50000", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))
		assert.Equal(t,
			"http://localhost:3001/api/v1/payments/success?bill_id=bill-1",
			r.PostForm.Get("success_url"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_abc","url":"https://pay.example.com/cs_test_abc"}`))
	}))
	defer srv.Close()

	session, err := testClient(srv.URL).CreateSession(context.Background(), "bill-1", 500.00, "Consultation Fee")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_abc", session.ID)
	assert.Equal(t, "https://pay.example.com/cs_test_abc", session.URL)
}

func TestCreateSession_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"card declined"}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateSession(context.Background(), "bill-1", 500.00, "Consultation Fee")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
}

func TestCreateSession_IncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"cs_test_abc"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateSession(context.Background(), "bill-1", 500.00, "Consultation Fee")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing session id or url")
}

func TestCreateSession_NoSecretKey(t *testing.T) {
	client := NewClient(config.PaymentConfig{})

	_, err := client.CreateSession(context.Background(), "bill-1", 500.00, "Consultation Fee")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no gateway secret key")
}
