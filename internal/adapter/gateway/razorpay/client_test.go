package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/ticket_gate/internal/core/ports"
)

const ordersURL = `=~^https://api\.razorpay\.com/v1/orders`

func TestClient_CreateOrder(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	var sent map[string]interface{}
	httpmock.RegisterResponder(http.MethodPost, ordersURL,
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&sent); err != nil {
				return httpmock.NewStringResponse(http.StatusBadRequest, ""), nil
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"id":       "order_Nx1",
				"amount":   29700,
				"currency": "INR",
				"receipt":  sent["receipt"],
				"status":   "created",
			})
		})

	c := NewClient("rzp_test_key", "secret")
	order, err := c.CreateOrder(context.Background(), ports.GatewayOrderRequest{
		AmountMinor: 29700,
		Currency:    "INR",
		Receipt:     "receipt_1",
	})

	require.NoError(t, err)
	assert.Equal(t, "order_Nx1", order.ID)
	assert.Equal(t, int64(29700), order.AmountMinor)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, float64(29700), sent["amount"])
	assert.Equal(t, "receipt_1", sent["receipt"])
	assert.Equal(t, "rzp_test_key", c.KeyID())
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestClient_CreateOrder_GatewayError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, ordersURL,
		httpmock.NewStringResponder(http.StatusBadRequest,
			`{"error":{"code":"BAD_REQUEST_ERROR","description":"The amount must be atleast INR 1.00"}}`))

	_, err := NewClient("rzp_test_key", "secret").CreateOrder(context.Background(), ports.GatewayOrderRequest{
		AmountMinor: 10,
		Currency:    "INR",
	})

	assert.Error(t, err)
}

func TestClient_CreateOrder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient("k", "s").CreateOrder(ctx, ports.GatewayOrderRequest{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseOrder(t *testing.T) {
	_, err := parseOrder(map[string]interface{}{"amount": float64(100)})
	assert.Error(t, err)

	_, err = parseOrder(map[string]interface{}{"id": "order_1", "amount": "100"})
	assert.Error(t, err)

	order, err := parseOrder(map[string]interface{}{"id": "order_1", "amount": float64(100), "currency": "INR"})
	require.NoError(t, err)
	assert.Equal(t, int64(100), order.AmountMinor)
}
