package realtime

import (
	"context"
	"fmt"

	pubnub "github.com/pubnub/go/v7"
	"github.com/srgjo27/ticket_gate/internal/core/domain"
)

type Config struct {
	PublishKey   string
	SubscribeKey string
	Channel      string
	UserID       string
}

// Message is what admin dashboards receive on the ticket channel.
type Message struct {
	Event      domain.TicketEvent `json:"event"`
	TicketID   string             `json:"ticketId"`
	TicketCode string             `json:"ticketCode"`
	Persons    int                `json:"personCount"`
	Location   string             `json:"location"`
	Used       bool               `json:"isUsed"`
}

func NewMessage(event domain.TicketEvent, ticket *domain.Ticket) Message {
	return Message{
		Event:      event,
		TicketID:   ticket.ID.String(),
		TicketCode: ticket.Code(),
		Persons:    ticket.PersonCount,
		Location:   ticket.Location,
		Used:       ticket.Used,
	}
}

// Publisher pushes ticket lifecycle events to a PubNub channel. Buyer contact
// details are never published.
type Publisher struct {
	pn      *pubnub.PubNub
	channel string
}

func NewPublisher(cfg Config) *Publisher {
	userID := cfg.UserID
	if userID == "" {
		userID = "ticket-gate-server"
	}

	pnConfig := pubnub.NewConfigWithUserId(pubnub.UserId(userID))
	pnConfig.PublishKey = cfg.PublishKey
	pnConfig.SubscribeKey = cfg.SubscribeKey

	return &Publisher{
		pn:      pubnub.NewPubNub(pnConfig),
		channel: cfg.Channel,
	}
}

// Publish ignores ctx; the SDK call carries its own timeouts.
func (p *Publisher) Publish(ctx context.Context, event domain.TicketEvent, ticket *domain.Ticket) error {
	_, status, err := p.pn.Publish().
		Channel(p.channel).
		Message(NewMessage(event, ticket)).
		Execute()
	if err != nil {
		return fmt.Errorf("pubnub publish %s (status %d): %w", event, status.StatusCode, err)
	}
	return nil
}
