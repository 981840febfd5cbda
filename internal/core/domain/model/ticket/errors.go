package ticket

import (
	"errors"
	"fmt"

	"kitchen/internal/core/domain/model/kernel"
)

var (
	// ErrTicketNotReady is the sentinel for a bump attempt on a ticket whose
	// items are not all resolved yet.
	ErrTicketNotReady = errors.New("ticket is not ready to bump")

	// ErrTicketAlreadyFinalized is the sentinel for item-transition attempts
	// on a bumped ticket.
	ErrTicketAlreadyFinalized = errors.New("ticket is already finalized")
)

// TicketNotReadyError reports a bump attempt rejected because the ticket's
// aggregate status was not Ready.
type TicketNotReadyError struct {
	TicketID kernel.UUID
	Status   AggregateStatus
}

// NewTicketNotReadyError creates a TicketNotReadyError carrying the aggregate
// status observed at bump time.
func NewTicketNotReadyError(ticketID kernel.UUID, status AggregateStatus) *TicketNotReadyError {
	return &TicketNotReadyError{
		TicketID: ticketID,
		Status:   status,
	}
}

func (e *TicketNotReadyError) Error() string {
	return fmt.Sprintf("%s: ticket %s is %s", ErrTicketNotReady, e.TicketID, e.Status)
}

func (e *TicketNotReadyError) Unwrap() error {
	return ErrTicketNotReady
}

// TicketAlreadyFinalizedError reports an operation rejected because the ticket
// was already bumped.
type TicketAlreadyFinalizedError struct {
	TicketID kernel.UUID
}

// NewTicketAlreadyFinalizedError creates a TicketAlreadyFinalizedError for the
// given ticket.
func NewTicketAlreadyFinalizedError(ticketID kernel.UUID) *TicketAlreadyFinalizedError {
	return &TicketAlreadyFinalizedError{TicketID: ticketID}
}

func (e *TicketAlreadyFinalizedError) Error() string {
	return fmt.Sprintf("%s: ticket %s", ErrTicketAlreadyFinalized, e.TicketID)
}

func (e *TicketAlreadyFinalizedError) Unwrap() error {
	return ErrTicketAlreadyFinalized
}
