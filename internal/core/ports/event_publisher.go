package ports

import (
	"context"

	"kitchen/internal/core/domain/events"
)

// EventPublisher defines the outbound contract for integration events.
// Publishing is fire-and-forget from the domain's point of view: handlers
// call it after their transaction committed, log a returned error, and never
// roll back state because of it.
type EventPublisher interface {
	// PublishItemStatusChanged announces a committed item transition.
	PublishItemStatusChanged(ctx context.Context, event events.ItemStatusChangedEvent) error

	// PublishTicketBumped announces the first successful bump of a ticket.
	PublishTicketBumped(ctx context.Context, event events.TicketBumpedEvent) error

	// PublishTicketReady announces a ticket that is ready to bump, as a
	// reminder for the expo station.
	PublishTicketReady(ctx context.Context, event events.TicketReadyEvent) error
}
