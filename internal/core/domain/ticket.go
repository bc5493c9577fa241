package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketPending TicketStatus = "pending"
	TicketPaid    TicketStatus = "paid"
)

const ticketCodeLength = 8

type Ticket struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     string          `json:"orderId"`
	PaymentID   string          `json:"paymentId"`
	BuyerName   string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Location    string          `json:"location"`
	PersonCount int             `json:"personCount"`
	Amount      decimal.Decimal `json:"amount"`
	QRPayload   string          `json:"qrCode"`
	Used        bool            `json:"isUsed"`
	Status      TicketStatus    `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	RedeemedAt  *time.Time      `json:"redeemedAt,omitempty"`
	RedeemedBy  *string         `json:"redeemedBy,omitempty"`
}

// MarshalJSON writes amount as a JSON number; decimal quotes it by default.
func (t Ticket) MarshalJSON() ([]byte, error) {
	type ticketFields Ticket
	return json.Marshal(struct {
		ticketFields
		Amount json.Number `json:"amount"`
	}{
		ticketFields: ticketFields(t),
		Amount:       json.Number(t.Amount.String()),
	})
}

// Code is the short human-readable reference printed on the confirmation mail.
func (t *Ticket) Code() string {
	return TicketCode(t.ID)
}

func TicketCode(id uuid.UUID) string {
	s := id.String()
	if len(s) > ticketCodeLength {
		s = s[:ticketCodeLength]
	}
	return strings.ToUpper(s)
}

func TicketURL(baseURL string, id uuid.UUID) string {
	return strings.TrimRight(baseURL, "/") + "/ticket/" + id.String()
}

// ContactUpdate carries the buyer fields staff may correct after issuance.
// Empty fields are left unchanged.
type ContactUpdate struct {
	BuyerName string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
}

func (u ContactUpdate) IsEmpty() bool {
	return u.BuyerName == "" && u.Email == "" && u.Phone == "" && u.Location == ""
}

type TicketEvent string

const (
	TicketIssued   TicketEvent = "ticket.issued"
	TicketRedeemed TicketEvent = "ticket.redeemed"
)
