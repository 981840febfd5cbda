// Package http exposes the kitchen use cases over a REST API.
package http

import (
	"errors"
	"net/http"
	"time"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/ticket"
	"kitchen/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	openTicketHandler      commands.OpenTicketCommandHandler
	transitionItemHandler  *commands.TransitionItemCommandHandler
	transitionItemsHandler commands.TransitionItemsCommandHandler
	bumpTicketHandler      commands.BumpTicketCommandHandler

	// Query handlers
	getOpenTicketsHandler queries.GetOpenTicketsQueryHandler
	getTicketViewHandler  queries.GetTicketViewQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	openTicketHandler commands.OpenTicketCommandHandler,
	transitionItemHandler *commands.TransitionItemCommandHandler,
	transitionItemsHandler commands.TransitionItemsCommandHandler,
	bumpTicketHandler commands.BumpTicketCommandHandler,
	getOpenTicketsHandler queries.GetOpenTicketsQueryHandler,
	getTicketViewHandler queries.GetTicketViewQueryHandler,
) *Server {
	return &Server{
		openTicketHandler:      openTicketHandler,
		transitionItemHandler:  transitionItemHandler,
		transitionItemsHandler: transitionItemsHandler,
		bumpTicketHandler:      bumpTicketHandler,
		getOpenTicketsHandler:  getOpenTicketsHandler,
		getTicketViewHandler:   getTicketViewHandler,
	}
}

// RegisterRoutes mounts all kitchen endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/tickets", s.OpenTicket)
	api.GET("/tickets", s.GetOpenTickets)
	api.GET("/tickets/:id", s.GetTicket)
	api.POST("/tickets/:id/bump", s.BumpTicket)
	api.POST("/items/:id/status", s.TransitionItem)
	api.POST("/items/status", s.TransitionItems)
}

// Error is the JSON error envelope returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OpenTicketRequest is the body of POST /api/v1/tickets.
type OpenTicketRequest struct {
	OrderID string   `json:"order_id"`
	Station string   `json:"station"`
	ItemIDs []string `json:"item_ids"`
}

// OpenTicketResponse returns the identifiers the server minted for the ticket
// and its item lines, in the order they were submitted.
type OpenTicketResponse struct {
	TicketID string   `json:"ticket_id"`
	ItemIDs  []string `json:"item_ids"`
}

// OpenTicket handles POST /api/v1/tickets - opens a ticket with its items.
func (s *Server) OpenTicket(ctx echo.Context) error {
	var request OpenTicketRequest
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order ID: "+err.Error())
	}

	station, err := kernel.NewStation(request.Station)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid station: "+err.Error())
	}

	ticketID := kernel.NewUUID()
	itemIDs := make([]kernel.UUID, len(request.ItemIDs))
	itemIDStrings := make([]string, len(request.ItemIDs))
	for i, raw := range request.ItemIDs {
		itemID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid item ID: "+idErr.Error())
		}
		itemIDs[i] = itemID
		itemIDStrings[i] = itemID.String()
	}

	cmd, err := commands.NewOpenTicketCommand(ticketID, orderID, station, itemIDs)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid ticket data: "+err.Error())
	}

	if handleErr := s.openTicketHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, OpenTicketResponse{
		TicketID: ticketID.String(),
		ItemIDs:  itemIDStrings,
	})
}

// TransitionItemRequest is the body of POST /api/v1/items/:id/status.
type TransitionItemRequest struct {
	Target  string `json:"target"`
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason,omitempty"`
}

// TransitionItemResponse carries the item's version after the transition.
type TransitionItemResponse struct {
	ItemID  string `json:"item_id"`
	Version int    `json:"version"`
}

// TransitionItem handles POST /api/v1/items/:id/status - moves one item.
func (s *Server) TransitionItem(ctx echo.Context) error {
	var request TransitionItemRequest
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := buildTransitionCommand(ctx.Param("id"), request)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := s.transitionItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionItemResponse{
		ItemID:  cmd.ItemID().String(),
		Version: result.NewVersion,
	})
}

// BatchTransitionRequest is the body of POST /api/v1/items/status.
type BatchTransitionRequest struct {
	Transitions []BatchTransitionEntry `json:"transitions"`
}

// BatchTransitionEntry is one requested transition within a batch.
type BatchTransitionEntry struct {
	ItemID  string `json:"item_id"`
	Target  string `json:"target"`
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason,omitempty"`
}

// BatchTransitionResult reports the outcome of one entry; Error is empty on
// success.
type BatchTransitionResult struct {
	ItemID  string `json:"item_id"`
	Version int    `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TransitionItems handles POST /api/v1/items/status - applies a best-effort
// batch of transitions and reports per-item outcomes.
func (s *Server) TransitionItems(ctx echo.Context) error {
	var request BatchTransitionRequest
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	requests := make([]commands.TransitionItemCommand, 0, len(request.Transitions))
	for _, entry := range request.Transitions {
		cmd, err := buildTransitionCommand(entry.ItemID, TransitionItemRequest{
			Target:  entry.Target,
			ActorID: entry.ActorID,
			Reason:  entry.Reason,
		})
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, err.Error())
		}
		requests = append(requests, cmd)
	}

	cmd, err := commands.NewTransitionItemsCommand(requests)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid batch: "+err.Error())
	}

	results, err := s.transitionItemsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	response := make([]BatchTransitionResult, len(results))
	for i, result := range results {
		response[i] = BatchTransitionResult{
			ItemID:  result.ItemID.String(),
			Version: result.NewVersion,
		}
		if result.Err != nil {
			response[i].Error = result.Err.Error()
			response[i].Version = 0
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// BumpTicketRequest is the body of POST /api/v1/tickets/:id/bump.
type BumpTicketRequest struct {
	ActorID string `json:"actor_id"`
}

// BumpTicketResponse reports the effective bump, original or replayed.
type BumpTicketResponse struct {
	TicketID      string    `json:"ticket_id"`
	AlreadyBumped bool      `json:"already_bumped"`
	BumpedAt      time.Time `json:"bumped_at"`
}

// BumpTicket handles POST /api/v1/tickets/:id/bump - finalizes a ticket.
func (s *Server) BumpTicket(ctx echo.Context) error {
	var request BumpTicketRequest
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	ticketID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid ticket ID: "+err.Error())
	}

	cmd, err := commands.NewBumpTicketCommand(ticketID, request.ActorID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid bump request: "+err.Error())
	}

	result, err := s.bumpTicketHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, BumpTicketResponse{
		TicketID:      ticketID.String(),
		AlreadyBumped: result.AlreadyBumped,
		BumpedAt:      result.BumpedAt,
	})
}

// OpenTicketSummary is one row of GET /api/v1/tickets.
type OpenTicketSummary struct {
	TicketID string    `json:"ticket_id"`
	OrderID  string    `json:"order_id"`
	Station  string    `json:"station"`
	OpenedAt time.Time `json:"opened_at"`
}

// GetOpenTickets handles GET /api/v1/tickets - lists unbumped tickets.
func (s *Server) GetOpenTickets(ctx echo.Context) error {
	query := queries.NewGetOpenTicketsQuery()

	tickets, err := s.getOpenTicketsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve tickets")
	}

	response := make([]OpenTicketSummary, len(tickets))
	for i, openTicket := range tickets {
		response[i] = OpenTicketSummary{
			TicketID: openTicket.TicketID.String(),
			OrderID:  openTicket.OrderID.String(),
			Station:  openTicket.Station.Code(),
			OpenedAt: openTicket.OpenedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TicketItemLine is one item line of the ticket view.
type TicketItemLine struct {
	ItemID          string `json:"item_id"`
	Status          string `json:"status"`
	Version         int    `json:"version"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// TicketView is the body of GET /api/v1/tickets/:id.
type TicketView struct {
	TicketID      string           `json:"ticket_id"`
	OrderID       string           `json:"order_id"`
	Station       string           `json:"station"`
	OpenedAt      time.Time        `json:"opened_at"`
	BumpedAt      *time.Time       `json:"bumped_at,omitempty"`
	Status        string           `json:"status"`
	HasRejections bool             `json:"has_rejections"`
	Items         []TicketItemLine `json:"items"`
}

// GetTicket handles GET /api/v1/tickets/:id - returns one ticket's view.
func (s *Server) GetTicket(ctx echo.Context) error {
	ticketID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid ticket ID: "+err.Error())
	}

	query, err := queries.NewGetTicketViewQuery(ticketID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid query: "+err.Error())
	}

	view, err := s.getTicketViewHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	items := make([]TicketItemLine, len(view.Items))
	for i, line := range view.Items {
		items[i] = TicketItemLine{
			ItemID:          line.ItemID.String(),
			Status:          line.Status.String(),
			Version:         line.Version,
			RejectionReason: line.RejectionReason,
		}
	}

	return ctx.JSON(http.StatusOK, TicketView{
		TicketID:      view.TicketID.String(),
		OrderID:       view.OrderID.String(),
		Station:       view.Station.Code(),
		OpenedAt:      view.OpenedAt,
		BumpedAt:      view.BumpedAt,
		Status:        view.Status.String(),
		HasRejections: view.HasRejections,
		Items:         items,
	})
}

// buildTransitionCommand parses one transition request into a command.
func buildTransitionCommand(rawItemID string, request TransitionItemRequest) (commands.TransitionItemCommand, error) {
	itemID, err := kernel.UUIDFromString(rawItemID)
	if err != nil {
		return commands.TransitionItemCommand{}, errors.New("invalid item ID: " + err.Error())
	}

	target, err := item.StatusFromString(request.Target)
	if err != nil {
		return commands.TransitionItemCommand{}, errors.New("invalid target status: " + err.Error())
	}

	cmd, err := commands.NewTransitionItemCommand(itemID, target, request.ActorID, request.Reason)
	if err != nil {
		return commands.TransitionItemCommand{}, errors.New("invalid transition request: " + err.Error())
	}

	return cmd, nil
}

// mapDomainError translates domain failures into HTTP status codes: missing
// aggregates map to 404, state conflicts to 409, bad input to 400.
func mapDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, item.ErrInvalidTransition),
		errors.Is(err, item.ErrVersionConflict),
		errors.Is(err, ticket.ErrTicketNotReady),
		errors.Is(err, ticket.ErrTicketAlreadyFinalized):
		return errorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorResponse(ctx, http.StatusInternalServerError, "Internal error")
	}
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}
