package queries

import (
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var (
	ErrGetOpenTicketsQueryIsNotConstructed = errors.New(
		"GetOpenTicketsQuery must be created via NewGetOpenTicketsQuery constructor",
	)
)

// GetOpenTicketsQuery retrieves all tickets that have not been bumped yet.
// Returns tickets oldest first so the expeditor board shows the longest
// waiting orders on top.
//
// Example:
//
//	query := NewGetOpenTicketsQuery()
//	handler := NewGetOpenTicketsQueryHandler(db)
//
//	tickets, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get open tickets: %w", err)
//	}
//
//	fmt.Printf("%d tickets on the board\n", len(tickets))
type GetOpenTicketsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenTicketsQuery creates a query to retrieve open tickets.
// This is a parameterless query that fetches every unbumped ticket.
func NewGetOpenTicketsQuery() GetOpenTicketsQuery {
	return GetOpenTicketsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOpenTicketsQueryIsNotConstructed if validation fails.
func (q GetOpenTicketsQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenTicketsQueryIsNotConstructed)
}

// GetOpenTicketsQueryResponse represents one open ticket on the board.
type GetOpenTicketsQueryResponse struct {
	TicketID kernel.UUID
	OrderID  kernel.UUID
	Station  kernel.Station
	OpenedAt time.Time
}
