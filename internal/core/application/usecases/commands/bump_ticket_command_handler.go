package commands

import (
	"context"
	"log/slog"
	"time"

	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/domain/model/ticket"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/locks"
)

// BumpResult reports the outcome of a bump request.
type BumpResult struct {
	// AlreadyBumped is true when the ticket was bumped before this request;
	// the original bump record is replayed and no event is published.
	AlreadyBumped bool
	// BumpedAt is the time of the effective bump: this one, or the original
	// for a replay.
	BumpedAt time.Time
}

// BumpTicketCommandHandler coordinates ticket finalization.
//
// The ticket's write lock excludes every concurrent item transition of the
// same ticket, so the readiness snapshot cannot go stale between the
// aggregate check and the bump. Two concurrent bumps serialize on the same
// lock: the first wins, the second replays it.
type BumpTicketCommandHandler struct {
	uowFactory  UoWFactory
	publisher   ports.EventPublisher
	aggregator  services.TicketAggregator
	ticketLocks *locks.KeyedRWMutex
	logger      *slog.Logger
}

// NewBumpTicketCommandHandler creates a handler for bump operations.
// Handlers sharing one store must share the same lock registry.
func NewBumpTicketCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	ticketLocks *locks.KeyedRWMutex,
	logger *slog.Logger,
) BumpTicketCommandHandler {
	return BumpTicketCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		aggregator:  services.NewTicketAggregator(),
		ticketLocks: ticketLocks,
		logger:      logger,
	}
}

// Handle processes one bump request end to end.
func (h *BumpTicketCommandHandler) Handle(ctx context.Context, cmd BumpTicketCommand) (BumpResult, error) {
	if err := cmd.Validate(); err != nil {
		return BumpResult{}, err
	}

	result, event, err := h.bump(ctx, cmd)
	if err != nil {
		return BumpResult{}, err
	}

	if event != nil {
		if publishErr := h.publisher.PublishTicketBumped(ctx, *event); publishErr != nil {
			h.logger.Error("failed to publish ticket bump",
				"ticketId", cmd.TicketID().String(),
				"error", publishErr)
		}
	}

	return result, nil
}

// bump runs the critical section: the ticket's write lock is held for its
// duration and released before the event is published. A nil event means an
// idempotent replay.
func (h *BumpTicketCommandHandler) bump(
	ctx context.Context, cmd BumpTicketCommand,
) (BumpResult, *events.TicketBumpedEvent, error) {
	ticketKey := cmd.TicketID().Bytes()
	h.ticketLocks.Lock(ticketKey)
	defer h.ticketLocks.Unlock(ticketKey)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BumpResult{}, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	kitchenTicket, err := uow.TicketRepository().Get(ctx, cmd.TicketID())
	if err != nil {
		return BumpResult{}, nil, err
	}

	if kitchenTicket.IsBumped() {
		return BumpResult{
			AlreadyBumped: true,
			BumpedAt:      *kitchenTicket.BumpedAt(),
		}, nil, nil
	}

	items, err := uow.ItemRepository().GetByTicket(ctx, cmd.TicketID())
	if err != nil {
		return BumpResult{}, nil, err
	}

	state := h.aggregator.Aggregate(items)
	if state.Status != ticket.AggregateReady {
		return BumpResult{}, nil, ticket.NewTicketNotReadyError(kitchenTicket.ID(), state.Status)
	}

	now := time.Now()
	if err = kitchenTicket.Bump(cmd.ActorID(), now); err != nil {
		return BumpResult{}, nil, err
	}

	if err = uow.TicketRepository().Update(ctx, kitchenTicket); err != nil {
		return BumpResult{}, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return BumpResult{}, nil, err
	}

	event := &events.TicketBumpedEvent{
		KitchenEventMetadata: events.KitchenEventMetadata{
			EventType:  events.EventTicketBumped,
			OccurredAt: now,
			TicketID:   kitchenTicket.ID().String(),
			OrderID:    kitchenTicket.OrderID().String(),
			Station:    kitchenTicket.Station().Code(),
			ActorID:    cmd.ActorID(),
		},
		BumpedAt:      now,
		HasRejections: state.HasRejections,
	}

	return BumpResult{BumpedAt: now}, event, nil
}
