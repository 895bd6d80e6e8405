// internal/domain/payment/stripe_service_test.go
package payment

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/config"
)

func testService(baseURL string) *StripeService {
	svc := NewStripeService(&config.Config{
		Stripe: config.StripeConfig{
			SecretKey:      "sk_test_123",
			PublishableKey: "pk_test_123",
			Currency:       "usd",
		},
	})
	svc.baseURL = baseURL
	return svc
}

func TestCreatePaymentIntent(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"amount":                              r.PostFormValue("amount"),
			"currency":                            r.PostFormValue("currency"),
			"metadata[order_ref]":                 r.PostFormValue("metadata[order_ref]"),
			"automatic_payment_methods[enabled]":  r.PostFormValue("automatic_payment_methods[enabled]"),
			"receipt_email":                       r.PostFormValue("receipt_email"),
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret_456"}`))
	}))
	defer server.Close()

	svc := testService(server.URL)
	resp, err := svc.CreatePaymentIntent(&CreateIntentRequest{
		Amount:        59.98,
		OrderRef:      "order-42",
		CustomerEmail: "shopper@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_123", resp.PaymentIntentID)
	assert.Equal(t, "pi_123_secret_456", resp.ClientSecret)

	// Amounts go over the wire in minor units
	assert.Equal(t, "5998", gotForm["amount"])
	assert.Equal(t, "usd", gotForm["currency"])
	assert.Equal(t, "order-42", gotForm["metadata[order_ref]"])
	assert.Equal(t, "true", gotForm["automatic_payment_methods[enabled]"])
	assert.Equal(t, "shopper@example.com", gotForm["receipt_email"])
}

func TestCreatePaymentIntentRoundsMinorUnits(t *testing.T) {
	var amount string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		amount = r.PostFormValue("amount")
		w.Write([]byte(`{"id":"pi_1","client_secret":"cs_1"}`))
	}))
	defer server.Close()

	svc := testService(server.URL)
	_, err := svc.CreatePaymentIntent(&CreateIntentRequest{Amount: 19.999, OrderRef: "o1"})
	require.NoError(t, err)

	assert.Equal(t, "2000", amount)
}

func TestCreatePaymentIntentSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	}))
	defer server.Close()

	svc := testService(server.URL)
	_, err := svc.CreatePaymentIntent(&CreateIntentRequest{Amount: 10, OrderRef: "o1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestCreatePaymentIntentValidation(t *testing.T) {
	svc := testService("http://unused")

	_, err := svc.CreatePaymentIntent(&CreateIntentRequest{Amount: 0, OrderRef: "o1"})
	assert.Error(t, err)

	_, err = svc.CreatePaymentIntent(&CreateIntentRequest{Amount: 10})
	assert.Error(t, err)
}
