package commands

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/ticket"
)

// OpenTicketCommandHandler handles the business logic for opening a ticket.
// Creates the ticket and its Pending items atomically, so a station never
// sees a ticket with half of its items missing.
type OpenTicketCommandHandler struct {
	uowFactory UoWFactory
}

// NewOpenTicketCommandHandler creates a handler for ticket-opening operations.
func NewOpenTicketCommandHandler(uowFactory UoWFactory) OpenTicketCommandHandler {
	return OpenTicketCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the open-ticket command. The ticket and all of its items
// are persisted in one transaction.
func (h *OpenTicketCommandHandler) Handle(ctx context.Context, cmd OpenTicketCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()
	kitchenTicket, err := ticket.NewTicket(cmd.TicketID(), cmd.OrderID(), cmd.Station(), now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TicketRepository().Add(ctx, kitchenTicket); err != nil {
		return err
	}

	itemRepo := uow.ItemRepository()
	for _, itemID := range cmd.ItemIDs() {
		orderItem, itemErr := item.NewOrderItem(itemID, cmd.OrderID(), cmd.TicketID(), now)
		if itemErr != nil {
			return itemErr
		}
		if itemErr = itemRepo.Add(ctx, orderItem); itemErr != nil {
			return itemErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
