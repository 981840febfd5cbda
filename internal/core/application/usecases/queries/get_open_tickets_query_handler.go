package queries

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenTicketsQueryHandler retrieves unbumped tickets from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOpenTicketsQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenTicketsQueryHandler creates a handler for open ticket queries.
// Requires a GORM database connection for query execution.
func NewGetOpenTicketsQueryHandler(db *gorm.DB) GetOpenTicketsQueryHandler {
	return GetOpenTicketsQueryHandler{db: db}
}

// Handle executes the query to retrieve all open tickets.
// Returns tickets ordered by opening time, oldest first.
func (h GetOpenTicketsQueryHandler) Handle(
	ctx context.Context,
	query GetOpenTicketsQuery,
) ([]GetOpenTicketsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tickets := make([]GetOpenTicketsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			station,
			opened_at
		FROM tickets
		WHERE bumped_at IS NULL
		ORDER BY opened_at, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ticketResp GetOpenTicketsQueryResponse
		var id, orderID uuid.UUID
		var station string

		err = rows.Scan(
			&id,
			&orderID,
			&station,
			&ticketResp.OpenedAt,
		)
		if err != nil {
			return nil, err
		}

		ticketID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ticketResp.TicketID = ticketID

		ticketOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		ticketResp.OrderID = ticketOrderID

		ticketStation, stationErr := kernel.NewStation(station)
		if stationErr != nil {
			return nil, stationErr
		}
		ticketResp.Station = ticketStation

		tickets = append(tickets, ticketResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}
