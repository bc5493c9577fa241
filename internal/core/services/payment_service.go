package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/ticket_gate/internal/core/domain"
	"github.com/srgjo27/ticket_gate/internal/core/ports"
	"github.com/srgjo27/ticket_gate/internal/platform/metrics"
)

var minorUnitsPerMajor = decimal.NewFromInt(100)

type PaymentConfig struct {
	GatewaySecret string
	UnitPrice     decimal.Decimal
	Currency      string
	MaxPersons    int
	BaseURL       string
}

type CreateOrderRequest struct {
	PersonCount int `json:"personCount"`
}

type CreateOrderResponse struct {
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	GatewayKey string `json:"gatewayKey"`
}

type VerifyPaymentRequest struct {
	OrderID     string              `json:"orderId"`
	PaymentID   string              `json:"paymentId"`
	Signature   string              `json:"signature"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	Location    string              `json:"location"`
	PersonCount int                 `json:"personCount"`
	Amount      decimal.NullDecimal `json:"amount"`
}

type VerifyPaymentResponse struct {
	Success    bool   `json:"success"`
	TicketID   string `json:"ticketId"`
	TicketCode string `json:"ticketCode"`
	Message    string `json:"message"`
}

type PaymentService struct {
	cfg        PaymentConfig
	gateway    ports.PaymentGateway
	ticketRepo ports.TicketRepository
	qr         ports.QRRenderer
	notifier   ports.Notifier
	publisher  ports.EventPublisher
	countCache ports.CountCache
	now        func() time.Time
}

func NewPaymentService(
	cfg PaymentConfig,
	gateway ports.PaymentGateway,
	ticketRepo ports.TicketRepository,
	qr ports.QRRenderer,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	countCache ports.CountCache,
) *PaymentService {
	return &PaymentService{
		cfg:        cfg,
		gateway:    gateway,
		ticketRepo: ticketRepo,
		qr:         qr,
		notifier:   notifier,
		publisher:  publisher,
		countCache: countCache,
		now:        time.Now,
	}
}

// PriceFor is the charge in major currency units for personCount admissions.
func (s *PaymentService) PriceFor(personCount int) decimal.Decimal {
	return s.cfg.UnitPrice.Mul(decimal.NewFromInt(int64(personCount)))
}

func (s *PaymentService) validatePersonCount(personCount int) error {
	if personCount <= 0 {
		return domain.NewValidationError("personCount must be a positive integer")
	}
	if s.cfg.MaxPersons > 0 && personCount > s.cfg.MaxPersons {
		return domain.NewValidationError(fmt.Sprintf("personCount must not exceed %d", s.cfg.MaxPersons))
	}
	return nil
}

func (s *PaymentService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if err := s.validatePersonCount(req.PersonCount); err != nil {
		return nil, err
	}

	amountMinor := s.PriceFor(req.PersonCount).Mul(minorUnitsPerMajor).IntPart()

	order, err := s.gateway.CreateOrder(ctx, ports.GatewayOrderRequest{
		AmountMinor: amountMinor,
		Currency:    s.cfg.Currency,
		Receipt:     fmt.Sprintf("receipt_%d", s.now().UnixMilli()),
	})
	if err != nil {
		metrics.OrdersCreated.WithLabelValues("failed").Inc()
		slog.Error("s.gateway.CreateOrder()", "person_count", req.PersonCount, "error", err)
		return nil, domain.NewUpstreamError("Order creation failed", err)
	}

	metrics.OrdersCreated.WithLabelValues("ok").Inc()

	return &CreateOrderResponse{
		OrderID:    order.ID,
		Amount:     order.AmountMinor,
		Currency:   order.Currency,
		GatewayKey: s.gateway.KeyID(),
	}, nil
}

func (s *PaymentService) validateVerify(req VerifyPaymentRequest) error {
	var missing []string
	if strings.TrimSpace(req.OrderID) == "" {
		missing = append(missing, "orderId")
	}
	if strings.TrimSpace(req.PaymentID) == "" {
		missing = append(missing, "paymentId")
	}
	if strings.TrimSpace(req.Signature) == "" {
		missing = append(missing, "signature")
	}
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return domain.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}

	if err := s.validatePersonCount(req.PersonCount); err != nil {
		return err
	}

	if req.Amount.Valid && !req.Amount.Decimal.Equal(s.PriceFor(req.PersonCount)) {
		return domain.NewValidationError("amount does not match personCount")
	}

	return nil
}

// VerifyPayment checks the gateway callback and issues the ticket. Nothing is
// written unless the signature matches. A failure after the insert leaves the
// ticket stored but not mailed; the error is returned and the ticket id logged.
func (s *PaymentService) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*VerifyPaymentResponse, error) {
	if err := s.validateVerify(req); err != nil {
		if req.PaymentID != "" {
			// the gateway may already have captured this payment
			slog.Warn("payment callback rejected",
				"order_id", req.OrderID,
				"payment_id", req.PaymentID,
				"person_count", req.PersonCount,
				"reason", domain.PublicMessage(err),
			)
		}
		return nil, err
	}

	if !VerifySignature(req.OrderID, req.PaymentID, req.Signature, s.cfg.GatewaySecret) {
		metrics.SignatureFailures.Inc()
		slog.Warn("payment signature mismatch", "order_id", req.OrderID, "payment_id", req.PaymentID)
		return nil, domain.ErrInvalidSignature
	}

	started := s.now()
	ticketID := uuid.New()

	ticket := &domain.Ticket{
		ID:          ticketID,
		OrderID:     req.OrderID,
		PaymentID:   req.PaymentID,
		BuyerName:   strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Location:    strings.TrimSpace(req.Location),
		PersonCount: req.PersonCount,
		Amount:      s.PriceFor(req.PersonCount),
		QRPayload:   domain.TicketURL(s.cfg.BaseURL, ticketID),
		Used:        false,
		Status:      domain.TicketPaid,
		CreatedAt:   started.UTC(),
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		if errors.Is(err, domain.ErrPaymentProcessed) {
			return nil, err
		}
		slog.Error("s.ticketRepo.Create()", "order_id", req.OrderID, "payment_id", req.PaymentID, "error", err)
		return nil, domain.NewInternalError("failed to save ticket", err)
	}

	if s.countCache != nil {
		s.countCache.Invalidate(ctx)
	}

	if err := s.notify(ctx, ticket); err != nil {
		metrics.NotificationsFailed.Inc()
		slog.Error("ticket persisted but not delivered", "ticket_id", ticket.ID, "email", ticket.Email, "error", err)
		return nil, err
	}

	publishEvent(ctx, s.publisher, domain.TicketIssued, ticket)

	metrics.TicketsIssued.Inc()
	metrics.IssuanceDuration.Observe(s.now().Sub(started).Seconds())

	return &VerifyPaymentResponse{
		Success:    true,
		TicketID:   ticket.ID.String(),
		TicketCode: ticket.Code(),
		Message:    "Payment verified, QR generated & email sent",
	}, nil
}

func (s *PaymentService) notify(ctx context.Context, ticket *domain.Ticket) error {
	png, err := s.qr.RenderPNG(ticket.QRPayload)
	if err != nil {
		return domain.NewUpstreamError("failed to generate QR code", err)
	}

	err = s.notifier.SendTicket(ctx, ports.TicketMail{
		To:          ticket.Email,
		BuyerName:   ticket.BuyerName,
		PersonCount: ticket.PersonCount,
		Location:    ticket.Location,
		Amount:      ticket.Amount,
		Currency:    s.cfg.Currency,
		TicketCode:  ticket.Code(),
		QRPNG:       png,
	})
	if err != nil {
		return domain.NewUpstreamError("failed to send confirmation email", err)
	}

	return nil
}

// publishEvent is best effort: a realtime feed outage never fails a request.
func publishEvent(ctx context.Context, publisher ports.EventPublisher, event domain.TicketEvent, ticket *domain.Ticket) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event, ticket); err != nil {
		slog.Warn("publisher.Publish()", "event", event, "ticket_id", ticket.ID, "error", err)
	}
}
