package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// The gateway is an opaque external collaborator: we send a charge, it
// answers approved or declined, or it does not answer at all. The three
// outcomes are kept as disjoint error classes so callers can tell a business
// decline from a connectivity failure.

// Card carries raw card-entry fields. They are presence-checked only; card
// validation belongs to the gateway.
type Card struct {
	CardNumber        string `json:"card_number"`
	CardHolderName    string `json:"card_holder_name"`
	CardHolderSurname string `json:"card_holder_surname"`
	ExpirationMonth   string `json:"expiration_month"`
	ExpirationYear    string `json:"expiration_year"`
	CVV               string `json:"cvv"`
}

// ChargeRequest is the gateway-bound charge payload.
type ChargeRequest struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Reference string  `json:"reference"`
	Card      Card    `json:"card"`
}

// ChargeResponse is a successful gateway answer.
type ChargeResponse struct {
	TransactionID string `json:"transaction_id"`
}

// DeclineError is a structured gateway refusal: a response was received but
// the charge was not approved (e.g. insufficient_funds).
type DeclineError struct {
	Message string
}

func (e *DeclineError) Error() string {
	return fmt.Sprintf("payment declined: %s", e.Message)
}

// ErrGatewayUnreachable classifies transport failures: no response from the
// gateway at all.
var ErrGatewayUnreachable = errors.New("payment gateway unreachable")

// Client interface defines the contract for charging a card
type Client interface {
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResponse, error)
}

// Config holds gateway connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type client struct {
	httpClient *http.Client
	config     Config
}

func NewClient(config Config) Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &client{
		httpClient: &http.Client{Timeout: timeout},
		config:     config,
	}
}

func (c *client) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build charge request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var charge ChargeResponse
		if err := json.Unmarshal(raw, &charge); err != nil {
			return nil, fmt.Errorf("invalid gateway response: %w", err)
		}
		return &charge, nil
	}

	// Any received non-2xx is a business decline; the body carries the reason.
	var decline struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &decline); err != nil || decline.Message == "" {
		decline.Message = fmt.Sprintf("payment refused (status %d)", resp.StatusCode)
	}

	return nil, &DeclineError{Message: decline.Message}
}
