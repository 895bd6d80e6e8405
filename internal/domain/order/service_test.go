package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotals_FlatShippingBelowThreshold(t *testing.T) {
	totals := CalculateTotals(50)

	assert.Equal(t, 50.0, totals.Subtotal)
	assert.Equal(t, 10.0, totals.ShippingCost)
	assert.InDelta(t, 4.0, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 64.0, totals.Total, 1e-9)
}

func TestCalculateTotals_FreeShippingAboveThreshold(t *testing.T) {
	totals := CalculateTotals(150)

	assert.Equal(t, 0.0, totals.ShippingCost)
	assert.InDelta(t, 12.0, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 162.0, totals.Total, 1e-9)
}

func TestCreateFromCart_EmptyCart(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.CreateFromCart("u1", nil, &CheckoutRequest{
		ShippingAddress: "somewhere",
		PaymentIntentID: "pi_123",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, isValidStatus(status), status)
	}
	assert.False(t, isValidStatus("misplaced"))
}
