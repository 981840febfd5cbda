// Package itemrepo provides data transfer objects and mapping functions for
// order-item persistence. It implements the repository pattern for the item
// aggregate, including the expected-version fence used for optimistic
// concurrency.
package itemrepo

import (
	"time"

	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ItemDTO represents the database structure for persisting item aggregates.
// CreatedAt preserves insertion order within a ticket; Version carries the
// optimistic-concurrency fence.
type ItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	TicketID        uuid.UUID `gorm:"type:uuid;index"`
	Status          int
	Version         int
	RejectionReason string
	LastActorID     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for item entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an item domain aggregate to its database representation.
func fromDomain(aggregate *item.OrderItem) ItemDTO {
	return ItemDTO{
		ID:              aggregate.ID().Bytes(),
		OrderID:         aggregate.OrderID().Bytes(),
		TicketID:        aggregate.TicketID().Bytes(),
		Status:          int(aggregate.Status()),
		Version:         aggregate.Version(),
		RejectionReason: aggregate.RejectionReason(),
		LastActorID:     aggregate.LastActorID(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an item domain aggregate.
func toDomain(dto ItemDTO) (*item.OrderItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	ticketID, err := kernel.UUIDFromBytes(dto.TicketID[:])
	if err != nil {
		return nil, err
	}

	return item.RestoreOrderItem(
		id, orderID, ticketID,
		item.Status(dto.Status),
		dto.Version,
		dto.RejectionReason,
		dto.LastActorID,
		dto.UpdatedAt,
	)
}
