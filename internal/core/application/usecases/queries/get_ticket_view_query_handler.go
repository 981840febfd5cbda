package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTicketViewQueryHandler assembles the read model for one ticket: its
// stored fields, its item lines, and the readiness state folded from them.
type GetTicketViewQueryHandler struct {
	db         *gorm.DB
	aggregator services.TicketAggregator
}

// NewGetTicketViewQueryHandler creates a handler for ticket view queries.
func NewGetTicketViewQueryHandler(
	db *gorm.DB, aggregator services.TicketAggregator,
) GetTicketViewQueryHandler {
	return GetTicketViewQueryHandler{db: db, aggregator: aggregator}
}

// Handle executes the query for one ticket.
// Returns errs.ErrObjectNotFound if the ticket does not exist; a ticket with
// no item rows is still returned, with an Open status.
func (h GetTicketViewQueryHandler) Handle(
	ctx context.Context,
	query GetTicketViewQuery,
) (GetTicketViewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTicketViewQueryResponse{}, err
	}

	response, err := h.readTicket(ctx, query.TicketID())
	if err != nil {
		return GetTicketViewQueryResponse{}, err
	}

	items, views, err := h.readItems(ctx, query.TicketID())
	if err != nil {
		return GetTicketViewQueryResponse{}, err
	}

	state := h.aggregator.Aggregate(items)
	response.Status = state.Status
	response.HasRejections = state.HasRejections
	response.Items = views

	return response, nil
}

func (h GetTicketViewQueryHandler) readTicket(
	ctx context.Context, ticketID kernel.UUID,
) (GetTicketViewQueryResponse, error) {
	var response GetTicketViewQueryResponse
	var id, orderID uuid.UUID
	var station string
	var openedAt time.Time
	var bumpedAt *time.Time

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			station,
			opened_at,
			bumped_at
		FROM tickets
		WHERE id = ?
	`, ticketID.Bytes()).Row()

	err := row.Scan(&id, &orderID, &station, &openedAt, &bumpedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return response, errs.NewObjectNotFoundError("ticketId", ticketID.String())
	}
	if err != nil {
		return response, err
	}

	respTicketID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return response, err
	}
	respOrderID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return response, err
	}
	respStation, err := kernel.NewStation(station)
	if err != nil {
		return response, err
	}

	response.TicketID = respTicketID
	response.OrderID = respOrderID
	response.Station = respStation
	response.OpenedAt = openedAt
	response.BumpedAt = bumpedAt
	return response, nil
}

func (h GetTicketViewQueryHandler) readItems(
	ctx context.Context, ticketID kernel.UUID,
) ([]*item.OrderItem, []TicketItemView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			status,
			version,
			rejection_reason,
			last_actor_id,
			updated_at
		FROM order_items
		WHERE ticket_id = ?
		ORDER BY created_at, id
	`, ticketID.Bytes()).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	items := make([]*item.OrderItem, 0)
	views := make([]TicketItemView, 0)

	for rows.Next() {
		var id, orderID uuid.UUID
		var status, version int
		var rejectionReason, lastActorID string
		var updatedAt time.Time

		err = rows.Scan(
			&id,
			&orderID,
			&status,
			&version,
			&rejectionReason,
			&lastActorID,
			&updatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, nil, idErr
		}
		itemOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, nil, idErr
		}

		orderItem, restoreErr := item.RestoreOrderItem(
			itemID, itemOrderID, ticketID,
			item.Status(status), version,
			rejectionReason, lastActorID, updatedAt,
		)
		if restoreErr != nil {
			return nil, nil, restoreErr
		}

		items = append(items, orderItem)
		views = append(views, TicketItemView{
			ItemID:          itemID,
			Status:          orderItem.Status(),
			Version:         orderItem.Version(),
			RejectionReason: orderItem.RejectionReason(),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return items, views, nil
}
