package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/ticket"
	"kitchen/internal/pkg/locks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTransitionHandler(
	factory commands.UoWFactory, publisher *MockEventPublisher,
) commands.TransitionItemCommandHandler {
	return commands.NewTransitionItemCommandHandler(
		factory, publisher, locks.NewKeyedMutex(), locks.NewKeyedRWMutex(), testLogger())
}

func openTestTicket(t *testing.T) *ticket.KitchenTicket {
	t.Helper()
	kitchenTicket, err := ticket.NewTicket(
		kernel.NewUUID(), kernel.NewUUID(), mustStation(t, "grill"), time.Now())
	require.NoError(t, err)
	return kitchenTicket
}

func pendingItemOn(t *testing.T, kitchenTicket *ticket.KitchenTicket) *item.OrderItem {
	t.Helper()
	orderItem, err := item.NewOrderItem(
		kernel.NewUUID(), kitchenTicket.OrderID(), kitchenTicket.ID(), time.Now())
	require.NoError(t, err)
	return orderItem
}

func TestTransitionItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	kitchenTicket := openTestTicket(t)
	orderItem := pendingItemOn(t, kitchenTicket)
	cmd, err := commands.NewTransitionItemCommand(orderItem.ID(), item.Preparing, "cook-7", "")
	require.NoError(t, err)

	itemRepo := new(MockItemRepository)
	ticketRepo := new(MockTicketRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		itemRepo.On("Get", ctx, orderItem.ID()).Return(orderItem, nil).Once(),
		uow.On("TicketRepository").Return(ticketRepo).Once(),
		ticketRepo.On("Get", ctx, kitchenTicket.ID()).Return(kitchenTicket, nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		itemRepo.On("Update", ctx, mock.AnythingOfType("*item.OrderItem"), 0).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishItemStatusChanged", ctx,
		mock.AnythingOfType("events.ItemStatusChangedEvent")).Return(nil).Once()

	handler := newTransitionHandler(factory, publisher)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, result.NewVersion)
	assert.Equal(t, item.Preparing, orderItem.Status())

	publishedEvent := publisher.Calls[0].Arguments[1].(events.ItemStatusChangedEvent)
	assert.Equal(t, events.EventItemStatusChanged, publishedEvent.EventType)
	assert.Equal(t, "Pending", publishedEvent.PreviousStatus)
	assert.Equal(t, "Preparing", publishedEvent.NewStatus)
	assert.Equal(t, 1, publishedEvent.Version)
	assert.Equal(t, "grill", publishedEvent.Station)

	itemRepo.AssertExpectations(t)
	ticketRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestTransitionItemCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.TransitionItemCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	publisher := new(MockEventPublisher)
	handler := newTransitionHandler(factory, publisher)

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrTransitionItemCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestTransitionItemCommandHandler_Handle_FrozenTicket(t *testing.T) {
	ctx := t.Context()

	kitchenTicket := openTestTicket(t)
	orderItem := pendingItemOn(t, kitchenTicket)
	require.NoError(t, kitchenTicket.Bump("expo-1", time.Now()))

	cmd, err := commands.NewTransitionItemCommand(orderItem.ID(), item.Preparing, "cook-7", "")
	require.NoError(t, err)

	itemRepo := new(MockItemRepository)
	ticketRepo := new(MockTicketRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		itemRepo.On("Get", ctx, orderItem.ID()).Return(orderItem, nil).Once(),
		uow.On("TicketRepository").Return(ticketRepo).Once(),
		ticketRepo.On("Get", ctx, kitchenTicket.ID()).Return(kitchenTicket, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	handler := newTransitionHandler(factory, publisher)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, ticket.ErrTicketAlreadyFinalized)
	assert.Equal(t, item.Pending, orderItem.Status())
	publisher.AssertNotCalled(t, "PublishItemStatusChanged")
}

func TestTransitionItemCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()

	kitchenTicket := openTestTicket(t)
	orderItem := pendingItemOn(t, kitchenTicket)

	// Pending -> Served skips the whole workflow.
	cmd, err := commands.NewTransitionItemCommand(orderItem.ID(), item.Served, "waiter-1", "")
	require.NoError(t, err)

	itemRepo := new(MockItemRepository)
	ticketRepo := new(MockTicketRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		itemRepo.On("Get", ctx, orderItem.ID()).Return(orderItem, nil).Once(),
		uow.On("TicketRepository").Return(ticketRepo).Once(),
		ticketRepo.On("Get", ctx, kitchenTicket.ID()).Return(kitchenTicket, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	handler := newTransitionHandler(factory, publisher)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, item.ErrInvalidTransition)
	assert.Equal(t, 0, orderItem.Version())
	publisher.AssertNotCalled(t, "PublishItemStatusChanged")
}

func TestTransitionItemCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()

	kitchenTicket := openTestTicket(t)
	orderItem := pendingItemOn(t, kitchenTicket)
	cmd, err := commands.NewTransitionItemCommand(orderItem.ID(), item.Preparing, "cook-7", "")
	require.NoError(t, err)

	conflict := item.NewVersionConflictError(orderItem.ID(), 0)

	itemRepo := new(MockItemRepository)
	ticketRepo := new(MockTicketRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		itemRepo.On("Get", ctx, orderItem.ID()).Return(orderItem, nil).Once(),
		uow.On("TicketRepository").Return(ticketRepo).Once(),
		ticketRepo.On("Get", ctx, kitchenTicket.ID()).Return(kitchenTicket, nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		itemRepo.On("Update", ctx, mock.AnythingOfType("*item.OrderItem"), 0).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	handler := newTransitionHandler(factory, publisher)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, item.ErrVersionConflict)
	publisher.AssertNotCalled(t, "PublishItemStatusChanged")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestTransitionItemCommandHandler_Handle_PublishFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()

	kitchenTicket := openTestTicket(t)
	orderItem := pendingItemOn(t, kitchenTicket)
	cmd, err := commands.NewTransitionItemCommand(orderItem.ID(), item.Preparing, "cook-7", "")
	require.NoError(t, err)

	itemRepo := new(MockItemRepository)
	ticketRepo := new(MockTicketRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		itemRepo.On("Get", ctx, orderItem.ID()).Return(orderItem, nil).Once(),
		uow.On("TicketRepository").Return(ticketRepo).Once(),
		ticketRepo.On("Get", ctx, kitchenTicket.ID()).Return(kitchenTicket, nil).Once(),
		uow.On("ItemRepository").Return(itemRepo).Once(),
		itemRepo.On("Update", ctx, mock.AnythingOfType("*item.OrderItem"), 0).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishItemStatusChanged", ctx,
		mock.AnythingOfType("events.ItemStatusChangedEvent")).
		Return(errors.New("broker unavailable")).Once()

	handler := newTransitionHandler(factory, publisher)
	result, err := handler.Handle(ctx, cmd)

	// The transition committed; the lost event is only logged.
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewVersion)
}
