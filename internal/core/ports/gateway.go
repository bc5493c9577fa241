package ports

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/ticket_gate/internal/core/domain"
)

type GatewayOrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
}

type GatewayOrder struct {
	ID          string
	AmountMinor int64
	Currency    string
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, req GatewayOrderRequest) (*GatewayOrder, error)
	KeyID() string
}

type QRRenderer interface {
	RenderPNG(content string) ([]byte, error)
}

type TicketMail struct {
	To          string
	BuyerName   string
	PersonCount int
	Location    string
	Amount      decimal.Decimal
	Currency    string
	TicketCode  string
	QRPNG       []byte
}

type Notifier interface {
	SendTicket(ctx context.Context, mail TicketMail) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.TicketEvent, ticket *domain.Ticket) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(claims domain.Claims) (string, error)
}
