package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chargeRequest() *ChargeRequest {
	return &ChargeRequest{
		Amount:    1310.99,
		Currency:  "TRY",
		Reference: "booking-1",
		Card: Card{
			CardNumber:        "4111111111111111",
			CardHolderName:    "Berkay",
			CardHolderSurname: "Dinc",
			ExpirationMonth:   "06",
			ExpirationYear:    "2030",
			CVV:               "123",
		},
	}
}

func TestChargeApproved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/charges", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChargeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 1310.99, req.Amount)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChargeResponse{TransactionID: "txn-42"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"})

	resp, err := client.Charge(context.Background(), chargeRequest())
	require.NoError(t, err)
	assert.Equal(t, "txn-42", resp.TransactionID)
}

func TestChargeDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"message":"insufficient_funds"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.Charge(context.Background(), chargeRequest())

	var decline *DeclineError
	require.ErrorAs(t, err, &decline)
	assert.Equal(t, "insufficient_funds", decline.Message)
	assert.NotErrorIs(t, err, ErrGatewayUnreachable)
}

func TestChargeDeclinedWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.Charge(context.Background(), chargeRequest())

	var decline *DeclineError
	require.ErrorAs(t, err, &decline)
	assert.NotEmpty(t, decline.Message)
}

func TestChargeTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.Charge(context.Background(), chargeRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGatewayUnreachable)

	var decline *DeclineError
	assert.False(t, errors.As(err, &decline))
}
