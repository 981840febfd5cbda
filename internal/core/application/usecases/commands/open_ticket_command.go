package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var (
	ErrOpenTicketCommandIsNotConstructed = errors.New(
		"OpenTicketCommand must be created via NewOpenTicketCommand constructor",
	)
	ErrTicketNeedsItems = errors.New("a ticket needs at least one item")
)

// OpenTicketCommand represents a request to open a kitchen ticket for an
// order at a preparation station, together with the identifiers of the items
// to put on it. Every item starts Pending.
type OpenTicketCommand struct { //nolint:recvcheck //using for validation
	ticketID kernel.UUID
	orderID  kernel.UUID
	station  kernel.Station
	itemIDs  []kernel.UUID

	guard guard.ConstructorGuard
}

// NewOpenTicketCommand creates a command to open a ticket. Validates that all
// identifiers and the station are valid and that at least one item is listed.
func NewOpenTicketCommand(
	ticketID, orderID kernel.UUID,
	station kernel.Station,
	itemIDs []kernel.UUID,
) (OpenTicketCommand, error) {
	command := OpenTicketCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTicketID(ticketID),
		command.setOrderID(orderID),
		command.setStation(station),
		command.setItemIDs(itemIDs),
	); err != nil {
		return OpenTicketCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenTicketCommand) Validate() error {
	return c.guard.Validate(ErrOpenTicketCommandIsNotConstructed)
}

// TicketID returns the identifier for the new ticket.
func (c OpenTicketCommand) TicketID() kernel.UUID {
	return c.ticketID
}

// OrderID returns the customer order the ticket is opened for.
func (c OpenTicketCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Station returns the preparation station the ticket is routed to.
func (c OpenTicketCommand) Station() kernel.Station {
	return c.station
}

// ItemIDs returns the identifiers of the items to create on the ticket.
func (c OpenTicketCommand) ItemIDs() []kernel.UUID {
	return c.itemIDs
}

func (c *OpenTicketCommand) setTicketID(ticketID kernel.UUID) error {
	if err := ticketID.Validate(); err != nil {
		return err
	}
	c.ticketID = ticketID
	return nil
}

func (c *OpenTicketCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *OpenTicketCommand) setStation(station kernel.Station) error {
	if err := station.Validate(); err != nil {
		return err
	}
	c.station = station
	return nil
}

func (c *OpenTicketCommand) setItemIDs(itemIDs []kernel.UUID) error {
	if len(itemIDs) == 0 {
		return ErrTicketNeedsItems
	}
	seen := make(map[kernel.UUID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			return errs.NewValueIsInvalidError("itemIds contain duplicates")
		}
		seen[id] = struct{}{}
	}
	c.itemIDs = itemIDs
	return nil
}
