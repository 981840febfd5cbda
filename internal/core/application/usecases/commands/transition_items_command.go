package commands

import (
	"errors"

	"kitchen/internal/pkg/guard"
)

var (
	ErrTransitionItemsCommandIsNotConstructed = errors.New(
		"TransitionItemsCommand must be created via NewTransitionItemsCommand constructor",
	)
	ErrBatchIsEmpty = errors.New("a batch needs at least one transition request")
)

// TransitionItemsCommand represents a batch of transition requests, e.g. an
// expo marking a whole ticket's items served in one tap. The batch is
// best-effort: each request succeeds or fails independently.
type TransitionItemsCommand struct { //nolint:recvcheck //using for validation
	requests []TransitionItemCommand

	guard guard.ConstructorGuard
}

// NewTransitionItemsCommand creates a batch command from individually
// validated transition requests.
func NewTransitionItemsCommand(requests []TransitionItemCommand) (TransitionItemsCommand, error) {
	command := TransitionItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setRequests(requests); err != nil {
		return TransitionItemsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionItemsCommand) Validate() error {
	return c.guard.Validate(ErrTransitionItemsCommandIsNotConstructed)
}

// Requests returns the individual transition requests in submission order.
func (c TransitionItemsCommand) Requests() []TransitionItemCommand {
	return c.requests
}

func (c *TransitionItemsCommand) setRequests(requests []TransitionItemCommand) error {
	if len(requests) == 0 {
		return ErrBatchIsEmpty
	}
	for _, request := range requests {
		if err := request.Validate(); err != nil {
			return err
		}
	}
	c.requests = requests
	return nil
}
