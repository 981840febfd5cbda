package commands_test

import (
	"context"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/ticket"
	"kitchen/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) Add(ctx context.Context, aggregate *item.OrderItem) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, aggregate *item.OrderItem, expectedVersion int) error {
	args := m.Called(ctx, aggregate, expectedVersion)
	return args.Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.OrderItem), args.Error(1)
}

func (m *MockItemRepository) GetByTicket(ctx context.Context, ticketID kernel.UUID) ([]*item.OrderItem, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*item.OrderItem), args.Error(1)
}

type MockTicketRepository struct{ mock.Mock }

func (m *MockTicketRepository) Add(ctx context.Context, aggregate *ticket.KitchenTicket) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTicketRepository) Update(ctx context.Context, aggregate *ticket.KitchenTicket) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTicketRepository) Get(ctx context.Context, id kernel.UUID) (*ticket.KitchenTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.KitchenTicket), args.Error(1)
}

func (m *MockTicketRepository) GetAllUnbumped(ctx context.Context) ([]*ticket.KitchenTicket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ticket.KitchenTicket), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ItemRepository() ports.ItemRepository {
	args := m.Called()
	return args.Get(0).(ports.ItemRepository)
}

func (m *MockUoW) TicketRepository() ports.TicketRepository {
	args := m.Called()
	return args.Get(0).(ports.TicketRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishItemStatusChanged(ctx context.Context, event events.ItemStatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishTicketBumped(ctx context.Context, event events.TicketBumpedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishTicketReady(ctx context.Context, event events.TicketReadyEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
