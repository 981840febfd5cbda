package commands

import (
	"context"
	"log/slog"
	"time"

	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/ticket"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/locks"
)

// TransitionItemResult reports the outcome of a successful transition.
type TransitionItemResult struct {
	// NewVersion is the item's version after the transition committed.
	NewVersion int
}

// TransitionItemCommandHandler coordinates item status transitions.
//
// Concurrency model:
//   - the item's exclusive lock serializes all transitions of one item in
//     this process, so a duplicate concurrent request loses the race and
//     fails as an invalid same-status transition
//   - the ticket's read lock is taken while the transition runs, so a bump
//     of the same ticket cannot interleave with it
//   - the repository's expected-version fence catches writers outside this
//     process's lock registry
//
// The status-changed event is published only after the transaction committed
// and all locks are released; a publish failure is logged, never rolled back.
type TransitionItemCommandHandler struct {
	uowFactory  UoWFactory
	publisher   ports.EventPublisher
	itemLocks   *locks.KeyedMutex
	ticketLocks *locks.KeyedRWMutex
	logger      *slog.Logger
}

// NewTransitionItemCommandHandler creates a handler for item transitions.
// Handlers sharing one store must share the same lock registries.
func NewTransitionItemCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	itemLocks *locks.KeyedMutex,
	ticketLocks *locks.KeyedRWMutex,
	logger *slog.Logger,
) TransitionItemCommandHandler {
	return TransitionItemCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		itemLocks:   itemLocks,
		ticketLocks: ticketLocks,
		logger:      logger,
	}
}

// Handle processes one transition request end to end and returns the item's
// new version.
func (h *TransitionItemCommandHandler) Handle(
	ctx context.Context, cmd TransitionItemCommand,
) (TransitionItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionItemResult{}, err
	}

	result, event, err := h.transition(ctx, cmd)
	if err != nil {
		return TransitionItemResult{}, err
	}

	if publishErr := h.publisher.PublishItemStatusChanged(ctx, event); publishErr != nil {
		h.logger.Error("failed to publish item status change",
			"itemId", cmd.ItemID().String(),
			"error", publishErr)
	}

	return result, nil
}

// transition runs the critical section: both locks are held for its duration
// and released before the event is published.
func (h *TransitionItemCommandHandler) transition(
	ctx context.Context, cmd TransitionItemCommand,
) (TransitionItemResult, events.ItemStatusChangedEvent, error) {
	itemKey := cmd.ItemID().Bytes()
	h.itemLocks.Lock(itemKey)
	defer h.itemLocks.Unlock(itemKey)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionItemResult{}, events.ItemStatusChangedEvent{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderItem, err := uow.ItemRepository().Get(ctx, cmd.ItemID())
	if err != nil {
		return TransitionItemResult{}, events.ItemStatusChangedEvent{}, err
	}

	// Item locks are always taken before ticket locks, so the two registries
	// cannot deadlock against the bump path.
	ticketKey := orderItem.TicketID().Bytes()
	h.ticketLocks.RLock(ticketKey)
	defer h.ticketLocks.RUnlock(ticketKey)

	kitchenTicket, err := uow.TicketRepository().Get(ctx, orderItem.TicketID())
	if err != nil {
		return TransitionItemResult{}, events.ItemStatusChangedEvent{}, err
	}
	if kitchenTicket.IsBumped() {
		return TransitionItemResult{}, events.ItemStatusChangedEvent{},
			ticket.NewTicketAlreadyFinalizedError(kitchenTicket.ID())
	}

	previousStatus := orderItem.Status()
	expectedVersion := orderItem.Version()
	now := time.Now()

	if err = orderItem.TransitionTo(cmd.Target(), cmd.ActorID(), cmd.Reason(), now); err != nil {
		return TransitionItemResult{}, events.ItemStatusChangedEvent{}, err
	}

	if err = uow.ItemRepository().Update(ctx, orderItem, expectedVersion); err != nil {
		return TransitionItemResult{}, events.ItemStatusChangedEvent{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionItemResult{}, events.ItemStatusChangedEvent{}, err
	}

	reason := ""
	if cmd.Target() == item.Rejected {
		reason = cmd.Reason()
	}

	event := events.ItemStatusChangedEvent{
		KitchenEventMetadata: events.KitchenEventMetadata{
			EventType:  events.EventItemStatusChanged,
			OccurredAt: now,
			TicketID:   kitchenTicket.ID().String(),
			OrderID:    orderItem.OrderID().String(),
			Station:    kitchenTicket.Station().Code(),
			ActorID:    cmd.ActorID(),
		},
		ItemID:         orderItem.ID().String(),
		PreviousStatus: previousStatus.String(),
		NewStatus:      orderItem.Status().String(),
		Reason:         reason,
		Version:        orderItem.Version(),
	}

	return TransitionItemResult{NewVersion: orderItem.Version()}, event, nil
}
