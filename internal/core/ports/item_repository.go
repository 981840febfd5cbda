package ports

import (
	"context"

	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/kernel"
)

// ItemRepository defines the persistence contract for order-item aggregates.
type ItemRepository interface {
	// Add persists a new item aggregate to storage.
	// The item must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *item.OrderItem) error

	// Update persists changes to an existing item aggregate using an
	// expected-version fence: the write succeeds only if the stored version
	// equals expectedVersion. Returns item.VersionConflictError when another
	// writer got there first.
	Update(ctx context.Context, aggregate *item.OrderItem, expectedVersion int) error

	// Get retrieves an item aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*item.OrderItem, error)

	// GetByTicket retrieves all items on a ticket in insertion order.
	GetByTicket(ctx context.Context, ticketID kernel.UUID) ([]*item.OrderItem, error)
}
