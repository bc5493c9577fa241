package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/ticket_gate/internal/core/domain"
)

const ticketColumns = `id, order_id, payment_id, buyer_name, email, phone, location,
	person_count, amount, qr_payload, used, status, created_at, redeemed_at, redeemed_by`

type TicketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var ticket domain.Ticket
	var redeemedAt sql.NullTime
	var redeemedBy sql.NullString

	err := row.Scan(
		&ticket.ID,
		&ticket.OrderID,
		&ticket.PaymentID,
		&ticket.BuyerName,
		&ticket.Email,
		&ticket.Phone,
		&ticket.Location,
		&ticket.PersonCount,
		&ticket.Amount,
		&ticket.QRPayload,
		&ticket.Used,
		&ticket.Status,
		&ticket.CreatedAt,
		&redeemedAt,
		&redeemedBy,
	)
	if err != nil {
		return nil, err
	}

	if redeemedAt.Valid {
		ticket.RedeemedAt = &redeemedAt.Time
	}
	if redeemedBy.Valid {
		ticket.RedeemedBy = &redeemedBy.String
	}

	return &ticket, nil
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := `
	INSERT INTO tickets (id, order_id, payment_id, buyer_name, email, phone, location,
		person_count, amount, qr_payload, used, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		ticket.ID,
		ticket.OrderID,
		ticket.PaymentID,
		ticket.BuyerName,
		ticket.Email,
		ticket.Phone,
		ticket.Location,
		ticket.PersonCount,
		ticket.Amount,
		ticket.QRPayload,
		ticket.Used,
		ticket.Status,
		ticket.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "tickets_payment_id_key") {
			return domain.ErrPaymentProcessed
		}
		return fmt.Errorf("failed to insert ticket: %w", err)
	}

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uuid.UUID) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.db.QueryRowContext(ctx, query, ticketID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, *ticket)
	}

	return tickets, rows.Err()
}

func (r *TicketRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count)
	return count, err
}

func (r *TicketRepository) UpdateContact(ctx context.Context, ticketID uuid.UUID, update domain.ContactUpdate) (*domain.Ticket, error) {
	query := `
	UPDATE tickets
	SET buyer_name = COALESCE(NULLIF($2, ''), buyer_name),
		email = COALESCE(NULLIF($3, ''), email),
		phone = COALESCE(NULLIF($4, ''), phone),
		location = COALESCE(NULLIF($5, ''), location)
	WHERE id = $1
	RETURNING ` + ticketColumns

	ticket, err := scanTicket(r.db.QueryRowContext(ctx, query,
		ticketID, update.BuyerName, update.Email, update.Phone, update.Location))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

// MarkUsed is the redemption check-and-set. The WHERE clause on used makes
// concurrent calls for one ticket serialize on the row: only the first sees
// used = FALSE, every later one matches nothing.
func (r *TicketRepository) MarkUsed(ctx context.Context, ticketID uuid.UUID, redeemedBy string) (*domain.Ticket, error) {
	query := `
	UPDATE tickets
	SET used = TRUE,
		redeemed_at = NOW(),
		redeemed_by = NULLIF($2, '')
	WHERE id = $1 AND used = FALSE
	RETURNING ` + ticketColumns

	ticket, err := scanTicket(r.db.QueryRowContext(ctx, query, ticketID, redeemedBy))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTicketUnavailable
		}
		return nil, fmt.Errorf("failed to mark ticket used: %w", err)
	}

	return ticket, nil
}

func (r *TicketRepository) Delete(ctx context.Context, ticketID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, ticketID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrTicketNotFound
	}

	return nil
}
