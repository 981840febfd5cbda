package item

import (
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

// ErrOrderItemIsNotConstructed is returned when an OrderItem instance was not
// created through NewOrderItem or RestoreOrderItem.
var ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem or RestoreOrderItem")

// OrderItem is the aggregate root for a single dish on a kitchen ticket.
// It owns the item's status machine and the optimistic-concurrency version.
//
// Invariants:
//   - status changes only through TransitionTo, following the Status machine
//   - version starts at 0 and increases by exactly 1 per successful transition
//   - a Rejected item always carries a non-empty rejection reason
//   - a terminal status (Served, Rejected, Cancelled) is reached at most once
//
// OrderItem is not safe for concurrent use; callers serialize access per item.
type OrderItem struct {
	id              kernel.UUID
	orderID         kernel.UUID
	ticketID        kernel.UUID
	status          Status
	version         int
	rejectionReason string
	lastActorID     string
	updatedAt       time.Time
	guard           guard.ConstructorGuard
}

// NewOrderItem creates a fresh item in Pending status with version 0.
//
// Parameters:
//   - id: unique identifier for the item
//   - orderID: the customer order this item belongs to
//   - ticketID: the kitchen ticket the item is routed to
//   - now: creation timestamp, recorded as the first updatedAt
func NewOrderItem(id, orderID, ticketID kernel.UUID, now time.Time) (*OrderItem, error) {
	orderItem := &OrderItem{
		status:    Pending,
		version:   0,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderItem.setID(id),
		orderItem.setOrderID(orderID),
		orderItem.setTicketID(ticketID),
	); err != nil {
		return nil, err
	}

	return orderItem, nil
}

// RestoreOrderItem reconstructs an OrderItem from persistent storage,
// preserving its status, version, and audit fields. The restored item behaves
// identically to one that reached the same state through domain operations.
func RestoreOrderItem(
	id, orderID, ticketID kernel.UUID,
	status Status,
	version int,
	rejectionReason string,
	lastActorID string,
	updatedAt time.Time,
) (*OrderItem, error) {
	orderItem := &OrderItem{
		rejectionReason: rejectionReason,
		lastActorID:     lastActorID,
		updatedAt:       updatedAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderItem.setID(id),
		orderItem.setOrderID(orderID),
		orderItem.setTicketID(ticketID),
		orderItem.setStatus(status),
		orderItem.setVersion(version),
	); err != nil {
		return nil, err
	}

	return orderItem, nil
}

// Validate ensures the OrderItem was properly constructed.
func (i *OrderItem) Validate() error {
	if i == nil {
		return ErrOrderItemIsNotConstructed
	}
	return i.guard.Validate(ErrOrderItemIsNotConstructed)
}

// IsEqual compares two items by their unique identifiers.
func (i *OrderItem) IsEqual(other *OrderItem) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the item's unique identifier.
func (i *OrderItem) ID() kernel.UUID {
	return i.id
}

// OrderID returns the customer order this item belongs to.
func (i *OrderItem) OrderID() kernel.UUID {
	return i.orderID
}

// TicketID returns the kitchen ticket the item is routed to.
func (i *OrderItem) TicketID() kernel.UUID {
	return i.ticketID
}

// Status returns the item's current preparation status.
func (i *OrderItem) Status() Status {
	return i.status
}

// Version returns the optimistic-concurrency version. It equals the number of
// successful transitions applied to the item.
func (i *OrderItem) Version() int {
	return i.version
}

// RejectionReason returns the reason recorded when the item was rejected,
// or an empty string otherwise.
func (i *OrderItem) RejectionReason() string {
	return i.rejectionReason
}

// LastActorID returns the identifier of the staff member who applied the most
// recent transition, or an empty string for a fresh item.
func (i *OrderItem) LastActorID() string {
	return i.lastActorID
}

// UpdatedAt returns the timestamp of the most recent transition, or the
// creation time for a fresh item.
func (i *OrderItem) UpdatedAt() time.Time {
	return i.updatedAt
}

// TransitionTo applies a status transition requested by actorID at time now.
//
// Business rules:
//   - actorID is required
//   - target must be a valid status
//   - a transition to Rejected requires a non-empty reason; the reason is
//     ignored for every other target
//   - the transition must be legal per the Status machine; illegal requests,
//     including same-status requests, fail with InvalidTransitionError and
//     leave the item untouched
//
// On success the status changes, version increases by 1, and the audit fields
// record the actor and timestamp.
func (i *OrderItem) TransitionTo(target Status, actorID, reason string, now time.Time) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if target == Rejected && reason == "" {
		return errs.NewValueIsRequiredError("rejectionReason")
	}
	if !i.status.CanTransitionTo(target) {
		return NewInvalidTransitionError(i.id, i.status, target)
	}

	i.status = target
	i.version++
	i.lastActorID = actorID
	i.updatedAt = now
	if target == Rejected {
		i.rejectionReason = reason
	}
	return nil
}

func (i *OrderItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *OrderItem) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	return nil
}

func (i *OrderItem) setTicketID(ticketID kernel.UUID) error {
	if err := ticketID.Validate(); err != nil {
		return err
	}
	i.ticketID = ticketID
	return nil
}

func (i *OrderItem) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == Rejected && i.rejectionReason == "" {
		return errs.NewValueIsRequiredError("rejectionReason")
	}
	i.status = status
	return nil
}

func (i *OrderItem) setVersion(version int) error {
	if version < 0 {
		return errs.NewVersionIsInvalidError("version")
	}
	i.version = version
	return nil
}
