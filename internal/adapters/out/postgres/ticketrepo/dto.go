// Package ticketrepo provides data transfer objects and mapping functions for
// kitchen ticket persistence.
package ticketrepo

import (
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/ticket"

	"github.com/google/uuid"
)

// TicketDTO represents the database structure for persisting ticket aggregates.
// BumpedAt is NULL while the ticket is still open.
type TicketDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`
	Station  string
	OpenedAt time.Time
	BumpedAt *time.Time
	BumpedBy string
}

// TableName specifies the database table name for ticket entities.
func (TicketDTO) TableName() string {
	return "tickets"
}

// fromDomain converts a ticket domain aggregate to its database representation.
func fromDomain(aggregate *ticket.KitchenTicket) TicketDTO {
	return TicketDTO{
		ID:       aggregate.ID().Bytes(),
		OrderID:  aggregate.OrderID().Bytes(),
		Station:  aggregate.Station().Code(),
		OpenedAt: aggregate.OpenedAt(),
		BumpedAt: aggregate.BumpedAt(),
		BumpedBy: aggregate.BumpedBy(),
	}
}

// toDomain converts a database DTO to a ticket domain aggregate.
func toDomain(dto TicketDTO) (*ticket.KitchenTicket, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	station, err := kernel.NewStation(dto.Station)
	if err != nil {
		return nil, err
	}

	return ticket.RestoreTicket(id, orderID, station, dto.OpenedAt, dto.BumpedAt, dto.BumpedBy)
}
