package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var ErrTransitionItemCommandIsNotConstructed = errors.New(
	"TransitionItemCommand must be created via NewTransitionItemCommand constructor",
)

// TransitionItemCommand represents a request to move one item to a new
// status. The reason is mandatory for Rejected and ignored otherwise.
//
// Example:
//
//	cmd, err := NewTransitionItemCommand(itemID, item.Preparing, "cook-7", "")
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, item.ErrInvalidTransition) {
//	    // The request violates the status machine; retrying is pointless
//	}
type TransitionItemCommand struct { //nolint:recvcheck //using for validation
	itemID  kernel.UUID
	target  item.Status
	actorID string
	reason  string

	guard guard.ConstructorGuard
}

// NewTransitionItemCommand creates a command to transition an item.
// Validates that the item ID and target status are valid, the actor is set,
// and a Rejected target carries a reason.
func NewTransitionItemCommand(
	itemID kernel.UUID,
	target item.Status,
	actorID, reason string,
) (TransitionItemCommand, error) {
	command := TransitionItemCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setItemID(itemID),
		command.setTarget(target, reason),
		command.setActorID(actorID),
	); err != nil {
		return TransitionItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionItemCommand) Validate() error {
	return c.guard.Validate(ErrTransitionItemCommandIsNotConstructed)
}

// ItemID returns the identifier of the item to transition.
func (c TransitionItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Target returns the requested destination status.
func (c TransitionItemCommand) Target() item.Status {
	return c.target
}

// ActorID returns the staff member requesting the transition.
func (c TransitionItemCommand) ActorID() string {
	return c.actorID
}

// Reason returns the rejection reason, or an empty string for other targets.
func (c TransitionItemCommand) Reason() string {
	return c.reason
}

func (c *TransitionItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *TransitionItemCommand) setTarget(target item.Status, reason string) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == item.Rejected && reason == "" {
		return errs.NewValueIsRequiredError("rejectionReason")
	}
	c.target = target
	return nil
}

func (c *TransitionItemCommand) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}
	c.actorID = actorID
	return nil
}
