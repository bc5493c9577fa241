package razorpay

import (
	"context"
	"errors"
	"fmt"

	rzp "github.com/razorpay/razorpay-go"
	"github.com/srgjo27/ticket_gate/internal/core/ports"
)

// Client wraps the Razorpay Orders API. The SDK has no context support, so
// ctx is only honoured before the call starts.
type Client struct {
	keyID  string
	client *rzp.Client
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{
		keyID:  keyID,
		client: rzp.NewClient(keyID, keySecret),
	}
}

func (c *Client) KeyID() string {
	return c.keyID
}

func (c *Client) CreateOrder(ctx context.Context, req ports.GatewayOrderRequest) (*ports.GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"amount":   req.AmountMinor,
		"currency": req.Currency,
		"receipt":  req.Receipt,
	}

	body, err := c.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay: create order: %w", err)
	}

	return parseOrder(body)
}

func parseOrder(body map[string]interface{}) (*ports.GatewayOrder, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, errors.New("razorpay: order response without id")
	}

	// JSON numbers decode as float64; amounts are integral paise.
	amount, ok := body["amount"].(float64)
	if !ok {
		return nil, fmt.Errorf("razorpay: order %s: unexpected amount %v", id, body["amount"])
	}

	currency, _ := body["currency"].(string)

	return &ports.GatewayOrder{
		ID:          id,
		AmountMinor: int64(amount),
		Currency:    currency,
	}, nil
}
