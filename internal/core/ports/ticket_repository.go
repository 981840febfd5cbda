package ports

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/ticket"
)

// TicketRepository defines the persistence contract for kitchen-ticket
// aggregates.
type TicketRepository interface {
	// Add persists a new ticket aggregate to storage.
	Add(ctx context.Context, aggregate *ticket.KitchenTicket) error

	// Update persists changes to an existing ticket aggregate,
	// in practice its bump record.
	Update(ctx context.Context, aggregate *ticket.KitchenTicket) error

	// Get retrieves a ticket aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*ticket.KitchenTicket, error)

	// GetAllUnbumped retrieves all tickets that have not been bumped yet,
	// oldest first. Used by queries and the ready-reminder job.
	GetAllUnbumped(ctx context.Context) ([]*ticket.KitchenTicket, error)
}
