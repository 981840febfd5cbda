// Package events defines the integration event payloads the kitchen service
// publishes after a state change commits. Payloads are flat JSON structs with
// shared metadata, so downstream display screens can consume them without
// knowing the domain model.
package events

import "time"

const (
	KitchenTopic           = "kitchen.events"
	NotificationsFanout    = "kitchen.notifications"
	EventItemStatusChanged = "kitchen.item.status_changed"
	EventTicketBumped      = "kitchen.ticket.bumped"
	EventTicketReady       = "kitchen.ticket.ready"
)

// KitchenEventMetadata is embedded in every kitchen event.
type KitchenEventMetadata struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	TicketID   string    `json:"ticket_id"`
	OrderID    string    `json:"order_id"`
	Station    string    `json:"station"`
	ActorID    string    `json:"actor_id,omitempty"`
}

// ItemStatusChangedEvent is published once per committed item transition.
type ItemStatusChangedEvent struct {
	KitchenEventMetadata
	ItemID         string `json:"item_id"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	Reason         string `json:"reason,omitempty"`
	Version        int    `json:"version"`
}

// TicketBumpedEvent is published once per ticket, when it is first bumped.
// An idempotent replay of the bump command does not publish it again.
type TicketBumpedEvent struct {
	KitchenEventMetadata
	BumpedAt      time.Time `json:"bumped_at"`
	HasRejections bool      `json:"has_rejections"`
}

// TicketReadyEvent is a reminder published for tickets that are ready to bump
// but have not been bumped yet.
type TicketReadyEvent struct {
	KitchenEventMetadata
	ReadySince time.Time `json:"ready_since"`
}
