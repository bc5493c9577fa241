package services_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/ticket_gate/internal/core/domain"
	"github.com/srgjo27/ticket_gate/internal/core/ports"
	"github.com/srgjo27/ticket_gate/internal/core/ports/mocks"
	"github.com/srgjo27/ticket_gate/internal/core/services"
)

const testSecret = "test-gateway-secret"

type paymentDeps struct {
	gateway    *mocks.PaymentGateway
	tickets    *mocks.TicketRepository
	qr         *mocks.QRRenderer
	notifier   *mocks.Notifier
	publisher  *mocks.EventPublisher
	countCache *mocks.CountCache
}

func newPaymentService(t *testing.T) (*services.PaymentService, paymentDeps) {
	deps := paymentDeps{
		gateway:    mocks.NewPaymentGateway(t),
		tickets:    mocks.NewTicketRepository(t),
		qr:         mocks.NewQRRenderer(t),
		notifier:   mocks.NewNotifier(t),
		publisher:  mocks.NewEventPublisher(t),
		countCache: mocks.NewCountCache(t),
	}

	svc := services.NewPaymentService(services.PaymentConfig{
		GatewaySecret: testSecret,
		UnitPrice:     decimal.NewFromInt(99),
		Currency:      "INR",
		MaxPersons:    20,
		BaseURL:       "https://tickets.example.com",
	}, deps.gateway, deps.tickets, deps.qr, deps.notifier, deps.publisher, deps.countCache)

	return svc, deps
}

func validVerifyRequest() services.VerifyPaymentRequest {
	return services.VerifyPaymentRequest{
		OrderID:     "order_abc",
		PaymentID:   "pay_xyz",
		Signature:   services.Sign("order_abc", "pay_xyz", testSecret),
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		Location:    "Pune",
		PersonCount: 3,
	}
}

func TestCreateOrder_AmountInMinorUnits(t *testing.T) {
	svc, deps := newPaymentService(t)
	ctx := context.Background()

	deps.gateway.On("CreateOrder", ctx, mock.MatchedBy(func(req ports.GatewayOrderRequest) bool {
		return req.AmountMinor == 29700 && req.Currency == "INR" && strings.HasPrefix(req.Receipt, "receipt_")
	})).Return(&ports.GatewayOrder{ID: "order_abc", AmountMinor: 29700, Currency: "INR"}, nil)
	deps.gateway.On("KeyID").Return("rzp_test_key")

	resp, err := svc.CreateOrder(ctx, services.CreateOrderRequest{PersonCount: 3})

	require.NoError(t, err)
	assert.Equal(t, "order_abc", resp.OrderID)
	assert.Equal(t, int64(29700), resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "rzp_test_key", resp.GatewayKey)
}

func TestCreateOrder_InvalidPersonCount(t *testing.T) {
	svc, _ := newPaymentService(t)

	for _, count := range []int{0, -1, 21} {
		_, err := svc.CreateOrder(context.Background(), services.CreateOrderRequest{PersonCount: count})
		assert.Equal(t, domain.KindValidation, domain.KindOf(err), "personCount=%d", count)
	}
}

func TestCreateOrder_GatewayFailure(t *testing.T) {
	svc, deps := newPaymentService(t)
	ctx := context.Background()

	deps.gateway.On("CreateOrder", ctx, mock.Anything).Return(nil, errors.New("gateway timeout"))

	resp, err := svc.CreateOrder(ctx, services.CreateOrderRequest{PersonCount: 1})

	assert.Nil(t, resp)
	assert.Equal(t, domain.KindUpstream, domain.KindOf(err))
	assert.Equal(t, "Order creation failed", domain.PublicMessage(err))
}

func TestVerifyPayment_IssuesTicket(t *testing.T) {
	svc, deps := newPaymentService(t)
	ctx := context.Background()

	var stored *domain.Ticket
	deps.tickets.On("Create", ctx, mock.AnythingOfType("*domain.Ticket")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Ticket) }).
		Return(nil)
	deps.countCache.On("Invalidate", ctx).Return()
	deps.qr.On("RenderPNG", mock.AnythingOfType("string")).Return([]byte("png"), nil)
	deps.notifier.On("SendTicket", ctx, mock.MatchedBy(func(m ports.TicketMail) bool {
		return m.To == "asha@example.com" && m.PersonCount == 3 && string(m.QRPNG) == "png"
	})).Return(nil)
	deps.publisher.On("Publish", ctx, domain.TicketIssued, mock.AnythingOfType("*domain.Ticket")).Return(nil)

	resp, err := svc.VerifyPayment(ctx, validVerifyRequest())

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, resp.Success)
	assert.Equal(t, stored.ID.String(), resp.TicketID)
	assert.Equal(t, stored.Code(), resp.TicketCode)
	assert.Len(t, resp.TicketCode, 8)

	assert.False(t, stored.Used)
	assert.Equal(t, domain.TicketPaid, stored.Status)
	assert.Equal(t, "pay_xyz", stored.PaymentID)
	assert.True(t, stored.Amount.Equal(decimal.NewFromInt(297)))
	assert.Equal(t, "https://tickets.example.com/ticket/"+stored.ID.String(), stored.QRPayload)
	deps.qr.AssertCalled(t, "RenderPNG", stored.QRPayload)
}

func TestVerifyPayment_TamperedSignatureWritesNothing(t *testing.T) {
	svc, deps := newPaymentService(t)

	req := validVerifyRequest()
	req.PaymentID = "pay_other"

	resp, err := svc.VerifyPayment(context.Background(), req)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	assert.Equal(t, 400, domain.KindOf(err).HTTPStatus())
	deps.tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	deps.notifier.AssertNotCalled(t, "SendTicket", mock.Anything, mock.Anything)
}

func TestVerifyPayment_MissingFields(t *testing.T) {
	svc, _ := newPaymentService(t)

	req := validVerifyRequest()
	req.Signature = ""
	req.Email = "  "

	_, err := svc.VerifyPayment(context.Background(), req)

	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, "missing required fields: signature, email", domain.PublicMessage(err))
}

func TestVerifyPayment_AmountMismatch(t *testing.T) {
	svc, _ := newPaymentService(t)

	req := validVerifyRequest()
	req.Amount = decimal.NewNullDecimal(decimal.NewFromInt(1))

	_, err := svc.VerifyPayment(context.Background(), req)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func captureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestVerifyPayment_RejectionLogsPaymentID(t *testing.T) {
	svc, deps := newPaymentService(t)
	logs := captureLogs(t)

	stale := validVerifyRequest()
	stale.Amount = decimal.NewNullDecimal(decimal.NewFromInt(198))

	tooMany := validVerifyRequest()
	tooMany.PaymentID = "pay_many"
	tooMany.PersonCount = 25

	for _, req := range []services.VerifyPaymentRequest{stale, tooMany} {
		_, err := svc.VerifyPayment(context.Background(), req)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	}

	out := logs.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "payment_id=pay_xyz")
	assert.Contains(t, out, "payment_id=pay_many")
	assert.Contains(t, out, "amount does not match personCount")
	deps.tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVerifyPayment_ReplayedPayment(t *testing.T) {
	svc, deps := newPaymentService(t)
	ctx := context.Background()

	deps.tickets.On("Create", ctx, mock.Anything).Return(domain.ErrPaymentProcessed)

	_, err := svc.VerifyPayment(ctx, validVerifyRequest())

	assert.ErrorIs(t, err, domain.ErrPaymentProcessed)
	deps.qr.AssertNotCalled(t, "RenderPNG", mock.Anything)
}

func TestVerifyPayment_MailFailureAfterPersist(t *testing.T) {
	svc, deps := newPaymentService(t)
	ctx := context.Background()

	deps.tickets.On("Create", ctx, mock.Anything).Return(nil)
	deps.countCache.On("Invalidate", ctx).Return()
	deps.qr.On("RenderPNG", mock.Anything).Return([]byte("png"), nil)
	deps.notifier.On("SendTicket", ctx, mock.Anything).Return(errors.New("smtp: 421"))

	resp, err := svc.VerifyPayment(ctx, validVerifyRequest())

	assert.Nil(t, resp)
	assert.Equal(t, domain.KindUpstream, domain.KindOf(err))
	deps.tickets.AssertNumberOfCalls(t, "Create", 1)
	deps.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyPayment_PublishFailureIsIgnored(t *testing.T) {
	svc, deps := newPaymentService(t)
	ctx := context.Background()

	deps.tickets.On("Create", ctx, mock.Anything).Return(nil)
	deps.countCache.On("Invalidate", ctx).Return()
	deps.qr.On("RenderPNG", mock.Anything).Return([]byte("png"), nil)
	deps.notifier.On("SendTicket", ctx, mock.Anything).Return(nil)
	deps.publisher.On("Publish", ctx, domain.TicketIssued, mock.Anything).Return(errors.New("pubnub down"))

	resp, err := svc.VerifyPayment(ctx, validVerifyRequest())

	require.NoError(t, err)
	assert.True(t, resp.Success)
}
