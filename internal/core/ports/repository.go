package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/ticket_gate/internal/core/domain"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, ticketID uuid.UUID) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	Count(ctx context.Context) (int64, error)
	UpdateContact(ctx context.Context, ticketID uuid.UUID, update domain.ContactUpdate) (*domain.Ticket, error)
	// MarkUsed flips used from false to true in one conditional write and
	// returns the updated row. It returns domain.ErrTicketUnavailable when
	// no unused ticket with that id exists.
	MarkUsed(ctx context.Context, ticketID uuid.UUID, redeemedBy string) (*domain.Ticket, error)
	Delete(ctx context.Context, ticketID uuid.UUID) error
}

type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	GetByID(ctx context.Context, staffID uuid.UUID) (*domain.Staff, error)
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Staff, error)
	Update(ctx context.Context, staff *domain.Staff) error
	Delete(ctx context.Context, staffID uuid.UUID) error
}

// CountCache holds the ticket total between writes. GetCount also reports the
// invalidation generation; SetCount drops the value if an Invalidate happened
// after that generation was read.
type CountCache interface {
	GetCount(ctx context.Context) (count int64, generation int64, ok bool)
	SetCount(ctx context.Context, count int64, generation int64)
	Invalidate(ctx context.Context)
}
