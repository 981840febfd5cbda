package ticket

import (
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

// ErrTicketIsNotConstructed is returned when a KitchenTicket instance was not
// created through NewTicket or RestoreTicket.
var ErrTicketIsNotConstructed = errors.New("KitchenTicket must be created via NewTicket or RestoreTicket")

// KitchenTicket is the aggregate root for the unit of work a preparation
// station sees: the items of one order routed to one station.
//
// Invariants:
//   - a ticket belongs to exactly one order and one station
//   - bumpedAt is set at most once; once set, the ticket is frozen and its
//     items accept no further transitions
//
// KitchenTicket is not safe for concurrent use; callers serialize access
// per ticket.
type KitchenTicket struct {
	id       kernel.UUID
	orderID  kernel.UUID
	station  kernel.Station
	openedAt time.Time
	bumpedAt *time.Time
	bumpedBy string
	guard    guard.ConstructorGuard
}

// NewTicket creates a fresh, unbumped ticket for the given order and station.
func NewTicket(id, orderID kernel.UUID, station kernel.Station, now time.Time) (*KitchenTicket, error) {
	kitchenTicket := &KitchenTicket{
		openedAt: now,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		kitchenTicket.setID(id),
		kitchenTicket.setOrderID(orderID),
		kitchenTicket.setStation(station),
	); err != nil {
		return nil, err
	}

	return kitchenTicket, nil
}

// RestoreTicket reconstructs a KitchenTicket from persistent storage,
// preserving its bump state.
func RestoreTicket(
	id, orderID kernel.UUID,
	station kernel.Station,
	openedAt time.Time,
	bumpedAt *time.Time,
	bumpedBy string,
) (*KitchenTicket, error) {
	kitchenTicket := &KitchenTicket{
		openedAt: openedAt,
		bumpedAt: bumpedAt,
		bumpedBy: bumpedBy,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		kitchenTicket.setID(id),
		kitchenTicket.setOrderID(orderID),
		kitchenTicket.setStation(station),
	); err != nil {
		return nil, err
	}

	if bumpedAt != nil && bumpedBy == "" {
		return nil, errs.NewValueIsRequiredError("bumpedBy")
	}

	return kitchenTicket, nil
}

// Validate ensures the KitchenTicket was properly constructed.
func (t *KitchenTicket) Validate() error {
	if t == nil {
		return ErrTicketIsNotConstructed
	}
	return t.guard.Validate(ErrTicketIsNotConstructed)
}

// IsEqual compares two tickets by their unique identifiers.
func (t *KitchenTicket) IsEqual(other *KitchenTicket) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the ticket's unique identifier.
func (t *KitchenTicket) ID() kernel.UUID {
	return t.id
}

// OrderID returns the customer order this ticket was opened for.
func (t *KitchenTicket) OrderID() kernel.UUID {
	return t.orderID
}

// Station returns the preparation station the ticket is routed to.
func (t *KitchenTicket) Station() kernel.Station {
	return t.station
}

// OpenedAt returns the time the ticket was opened.
func (t *KitchenTicket) OpenedAt() time.Time {
	return t.openedAt
}

// BumpedAt returns the bump time, or nil while the ticket is open.
func (t *KitchenTicket) BumpedAt() *time.Time {
	return t.bumpedAt
}

// BumpedBy returns the actor who bumped the ticket, or an empty string while
// the ticket is open.
func (t *KitchenTicket) BumpedBy() string {
	return t.bumpedBy
}

// IsBumped reports whether the ticket has been finalized.
func (t *KitchenTicket) IsBumped() bool {
	return t.bumpedAt != nil
}

// Bump finalizes the ticket, recording who bumped it and when.
//
// Business rules:
//   - actorID is required
//   - a ticket is bumped at most once; a second call fails with
//     TicketAlreadyFinalizedError
//
// Readiness of the ticket's items is checked by the caller, which holds the
// item snapshot; the aggregate only enforces the set-once rule.
func (t *KitchenTicket) Bump(actorID string, now time.Time) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}
	if t.bumpedAt != nil {
		return NewTicketAlreadyFinalizedError(t.id)
	}

	t.bumpedAt = &now
	t.bumpedBy = actorID
	return nil
}

func (t *KitchenTicket) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *KitchenTicket) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	t.orderID = orderID
	return nil
}

func (t *KitchenTicket) setStation(station kernel.Station) error {
	if err := station.Validate(); err != nil {
		return err
	}
	t.station = station
	return nil
}
