// internal/domain/payment/stripe_service.go
package payment

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
)

// StripeService exchanges amounts for Stripe payment intents. It is a
// thin shim over the PaymentIntents REST API: no capture, no webhooks,
// no retries. Confirmation happens entirely on the client.
type StripeService struct {
	config     *config.Config
	baseURL    string
	httpClient *http.Client
}

// NewStripeService creates a new Stripe payment service
func NewStripeService(cfg *config.Config) *StripeService {
	return &StripeService{
		config:  cfg,
		baseURL: "https://api.stripe.com/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateIntentRequest represents a payment-intent exchange request
type CreateIntentRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	OrderRef      string  `json:"order_ref" binding:"required"`
	CustomerEmail string  `json:"customer_email"`
}

// IntentResponse carries what the client needs to confirm the payment
type IntentResponse struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
}

type stripeIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreatePaymentIntent creates a Stripe payment intent for the amount
// and returns its client secret. The amount is a decimal major-unit
// value; Stripe wants minor units.
func (s *StripeService) CreatePaymentIntent(req *CreateIntentRequest) (*IntentResponse, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid amount")
	}
	if req.OrderRef == "" {
		return nil, fmt.Errorf("order reference is required")
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(int64(math.Round(req.Amount*100)), 10))
	form.Set("currency", s.config.Stripe.Currency)
	form.Set("metadata[order_ref]", req.OrderRef)
	form.Set("automatic_payment_methods[enabled]", "true")
	if req.CustomerEmail != "" {
		form.Set("receipt_email", req.CustomerEmail)
	}

	httpReq, err := http.NewRequest(http.MethodPost, s.baseURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment intent request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.config.Stripe.SecretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment intent request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment intent response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr stripeError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe rejected payment intent: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe rejected payment intent: status %d", resp.StatusCode)
	}

	var intent stripeIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode payment intent response: %w", err)
	}

	return &IntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
	}, nil
}
