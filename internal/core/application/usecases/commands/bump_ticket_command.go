package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var ErrBumpTicketCommandIsNotConstructed = errors.New(
	"BumpTicketCommand must be created via NewBumpTicketCommand constructor",
)

// BumpTicketCommand represents a request to finalize a ticket: every item is
// resolved, the ticket leaves the station's screen. Bumping is idempotent;
// a repeated bump replays the original outcome.
type BumpTicketCommand struct { //nolint:recvcheck //using for validation
	ticketID kernel.UUID
	actorID  string

	guard guard.ConstructorGuard
}

// NewBumpTicketCommand creates a command to bump a ticket.
func NewBumpTicketCommand(ticketID kernel.UUID, actorID string) (BumpTicketCommand, error) {
	command := BumpTicketCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTicketID(ticketID),
		command.setActorID(actorID),
	); err != nil {
		return BumpTicketCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c BumpTicketCommand) Validate() error {
	return c.guard.Validate(ErrBumpTicketCommandIsNotConstructed)
}

// TicketID returns the identifier of the ticket to bump.
func (c BumpTicketCommand) TicketID() kernel.UUID {
	return c.ticketID
}

// ActorID returns the staff member requesting the bump.
func (c BumpTicketCommand) ActorID() string {
	return c.actorID
}

func (c *BumpTicketCommand) setTicketID(ticketID kernel.UUID) error {
	if err := ticketID.Validate(); err != nil {
		return err
	}
	c.ticketID = ticketID
	return nil
}

func (c *BumpTicketCommand) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}
	c.actorID = actorID
	return nil
}
