package postgres_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/ticket_gate/internal/adapter/repository/postgres"
	"github.com/srgjo27/ticket_gate/internal/core/domain"
)

var ticketCols = []string{
	"id", "order_id", "payment_id", "buyer_name", "email", "phone", "location",
	"person_count", "amount", "qr_payload", "used", "status", "created_at", "redeemed_at", "redeemed_by",
}

func ticketRow(id uuid.UUID, used bool, redeemedAt, redeemedBy driver.Value) []driver.Value {
	return []driver.Value{
		id.String(), "order_1", "pay_1", "Asha", "asha@example.com", "9999999999", "Pune",
		int64(3), "297.00", "http://localhost:5173/ticket/" + id.String(), used, "paid",
		time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), redeemedAt, redeemedBy,
	}
}

func TestTicketRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTicketRepository(db)
	ticket := &domain.Ticket{
		ID:          uuid.New(),
		OrderID:     "order_1",
		PaymentID:   "pay_1",
		BuyerName:   "Asha",
		Email:       "asha@example.com",
		PersonCount: 3,
		Amount:      decimal.NewFromInt(297),
		QRPayload:   "http://localhost:5173/ticket/x",
		Status:      domain.TicketPaid,
		CreatedAt:   time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tickets")).
		WithArgs(ticket.ID, "order_1", "pay_1", "Asha", "asha@example.com", "", "",
			3, ticket.Amount, ticket.QRPayload, false, domain.TicketPaid, ticket.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), ticket))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_Create_DuplicatePayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTicketRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tickets")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "tickets_payment_id_key"})

	err = repo.Create(context.Background(), &domain.Ticket{ID: uuid.New()})

	assert.ErrorIs(t, err, domain.ErrPaymentProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_MarkUsed_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTicketRepository(db)
	id := uuid.New()
	redeemedAt := time.Date(2026, 1, 2, 5, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND used = FALSE")).
		WithArgs(id, "staff@example.com").
		WillReturnRows(sqlmock.NewRows(ticketCols).AddRow(ticketRow(id, true, redeemedAt, "staff@example.com")...))

	ticket, err := repo.MarkUsed(context.Background(), id, "staff@example.com")

	require.NoError(t, err)
	assert.Equal(t, id, ticket.ID)
	assert.True(t, ticket.Used)
	assert.True(t, decimal.NewFromInt(297).Equal(ticket.Amount))
	if assert.NotNil(t, ticket.RedeemedAt) {
		assert.Equal(t, redeemedAt, *ticket.RedeemedAt)
	}
	if assert.NotNil(t, ticket.RedeemedBy) {
		assert.Equal(t, "staff@example.com", *ticket.RedeemedBy)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_MarkUsed_NoRowMatched(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTicketRepository(db)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND used = FALSE")).
		WithArgs(id, "staff@example.com").
		WillReturnRows(sqlmock.NewRows(ticketCols))

	ticket, err := repo.MarkUsed(context.Background(), id, "staff@example.com")

	assert.Nil(t, ticket)
	assert.ErrorIs(t, err, domain.ErrTicketUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_MarkUsed_DriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTicketRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tickets")).
		WillReturnError(errors.New("connection reset"))

	_, err = repo.MarkUsed(context.Background(), uuid.New(), "")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTicketUnavailable)
}

func TestTicketRepository_ListAndCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTicketRepository(db)
	first, second := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(ticketCols).
			AddRow(ticketRow(first, false, nil, nil)...).
			AddRow(ticketRow(second, true, time.Now(), "staff@example.com")...))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tickets")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	tickets, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, first, tickets[0].ID)
	assert.Nil(t, tickets[0].RedeemedAt)
	assert.True(t, tickets[1].Used)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTicketRepository(db)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM tickets WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(ticketCols))

	_, err = repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestTicketRepository_UpdateContact(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTicketRepository(db)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SET buyer_name = COALESCE(NULLIF($2, ''), buyer_name)")).
		WithArgs(id, "", "", "8888888888", "").
		WillReturnRows(sqlmock.NewRows(ticketCols).AddRow(ticketRow(id, false, nil, nil)...))

	ticket, err := repo.UpdateContact(context.Background(), id, domain.ContactUpdate{Phone: "8888888888"})

	require.NoError(t, err)
	assert.False(t, ticket.Used)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTicketRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tickets")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tickets")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), id))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), domain.ErrTicketNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
