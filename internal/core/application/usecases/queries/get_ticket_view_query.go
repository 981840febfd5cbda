package queries

import (
	"errors"
	"time"

	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/ticket"
	"kitchen/internal/pkg/guard"
)

var (
	ErrGetTicketViewQueryIsNotConstructed = errors.New(
		"GetTicketViewQuery must be created via NewGetTicketViewQuery constructor",
	)
)

// GetTicketViewQuery retrieves one ticket together with its items and the
// derived readiness state the expeditor sees.
//
// Example:
//
//	query, err := NewGetTicketViewQuery(ticketID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetTicketViewQueryHandler(db, services.NewTicketAggregator())
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get ticket view: %w", err)
//	}
//
//	fmt.Printf("ticket %s is %s\n", view.TicketID, view.Status)
type GetTicketViewQuery struct {
	ticketID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTicketViewQuery creates a query for one ticket's view.
func NewGetTicketViewQuery(ticketID kernel.UUID) (GetTicketViewQuery, error) {
	if err := ticketID.Validate(); err != nil {
		return GetTicketViewQuery{}, err
	}

	return GetTicketViewQuery{
		ticketID: ticketID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// TicketID returns the identifier of the ticket to view.
func (q GetTicketViewQuery) TicketID() kernel.UUID {
	return q.ticketID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTicketViewQueryIsNotConstructed if validation fails.
func (q GetTicketViewQuery) Validate() error {
	return q.guard.Validate(ErrGetTicketViewQueryIsNotConstructed)
}

// TicketItemView represents one item line on the ticket view.
type TicketItemView struct {
	ItemID          kernel.UUID
	Status          item.Status
	Version         int
	RejectionReason string
}

// GetTicketViewQueryResponse represents a ticket with its derived readiness.
// Status and HasRejections are folded from the item lines, never stored.
type GetTicketViewQueryResponse struct {
	TicketID      kernel.UUID
	OrderID       kernel.UUID
	Station       kernel.Station
	OpenedAt      time.Time
	BumpedAt      *time.Time
	Status        ticket.AggregateStatus
	HasRejections bool
	Items         []TicketItemView
}
