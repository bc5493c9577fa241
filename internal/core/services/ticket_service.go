package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/srgjo27/ticket_gate/internal/core/domain"
	"github.com/srgjo27/ticket_gate/internal/core/ports"
	"github.com/srgjo27/ticket_gate/internal/platform/metrics"
)

type TicketService struct {
	ticketRepo ports.TicketRepository
	countCache ports.CountCache
	publisher  ports.EventPublisher
}

func NewTicketService(ticketRepo ports.TicketRepository, countCache ports.CountCache, publisher ports.EventPublisher) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		countCache: countCache,
		publisher:  publisher,
	}
}

// Redeem marks the ticket used. The repository's conditional update is the
// only arbiter between concurrent scans of the same ticket. An unparseable id
// is answered exactly like an unknown or already used one.
func (s *TicketService) Redeem(ctx context.Context, rawID string, redeemedBy string) (*domain.Ticket, error) {
	ticketID, err := uuid.Parse(rawID)
	if err != nil {
		metrics.Redemptions.WithLabelValues("rejected").Inc()
		return nil, domain.ErrTicketUnavailable
	}

	ticket, err := s.ticketRepo.MarkUsed(ctx, ticketID, redeemedBy)
	if err != nil {
		if errors.Is(err, domain.ErrTicketUnavailable) {
			metrics.Redemptions.WithLabelValues("rejected").Inc()
			slog.Info("redemption rejected", "ticket_id", ticketID, "staff", redeemedBy)
			return nil, domain.ErrTicketUnavailable
		}
		metrics.Redemptions.WithLabelValues("error").Inc()
		slog.Error("s.ticketRepo.MarkUsed()", "ticket_id", ticketID, "error", err)
		return nil, domain.NewInternalError("failed to redeem ticket", err)
	}

	metrics.Redemptions.WithLabelValues("redeemed").Inc()
	slog.Info("ticket redeemed", "ticket_id", ticket.ID, "staff", redeemedBy)

	publishEvent(ctx, s.publisher, domain.TicketRedeemed, ticket)

	return ticket, nil
}

func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.ticketRepo.List(ctx)
	if err != nil {
		slog.Error("s.ticketRepo.List()", "error", err)
		return nil, domain.NewInternalError("failed to list tickets", err)
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

// Count reads through the cache. The generation is taken before the query so
// a ticket issued meanwhile keeps the stale total out of the cache.
func (s *TicketService) Count(ctx context.Context) (int64, error) {
	var generation int64
	if s.countCache != nil {
		count, gen, ok := s.countCache.GetCount(ctx)
		if ok {
			return count, nil
		}
		generation = gen
	}

	count, err := s.ticketRepo.Count(ctx)
	if err != nil {
		slog.Error("s.ticketRepo.Count()", "error", err)
		return 0, domain.NewInternalError("failed to count tickets", err)
	}

	if s.countCache != nil {
		s.countCache.SetCount(ctx, count, generation)
	}

	return count, nil
}

func (s *TicketService) Get(ctx context.Context, rawID string) (*domain.Ticket, error) {
	ticketID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, domain.ErrTicketNotFound
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, s.wrapLookup("s.ticketRepo.GetByID()", ticketID, err)
	}
	return ticket, nil
}

// UpdateContact corrects buyer fields. It never touches the used flag.
func (s *TicketService) UpdateContact(ctx context.Context, rawID string, update domain.ContactUpdate) (*domain.Ticket, error) {
	ticketID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, domain.ErrTicketNotFound
	}
	if update.IsEmpty() {
		return nil, domain.NewValidationError("nothing to update")
	}

	ticket, err := s.ticketRepo.UpdateContact(ctx, ticketID, update)
	if err != nil {
		return nil, s.wrapLookup("s.ticketRepo.UpdateContact()", ticketID, err)
	}
	return ticket, nil
}

func (s *TicketService) Delete(ctx context.Context, rawID string) error {
	ticketID, err := uuid.Parse(rawID)
	if err != nil {
		return domain.ErrTicketNotFound
	}

	if err := s.ticketRepo.Delete(ctx, ticketID); err != nil {
		return s.wrapLookup("s.ticketRepo.Delete()", ticketID, err)
	}

	if s.countCache != nil {
		s.countCache.Invalidate(ctx)
	}

	slog.Info("ticket deleted", "ticket_id", ticketID)
	return nil
}

func (s *TicketService) wrapLookup(op string, ticketID uuid.UUID, err error) error {
	if errors.Is(err, domain.ErrTicketNotFound) {
		return domain.ErrTicketNotFound
	}
	slog.Error(op, "ticket_id", ticketID, "error", err)
	return domain.NewInternalError("ticket store failure", err)
}
