package itemrepo_test

import (
	"context"
	"testing"
	"time"

	"kitchen/internal/adapters/out/postgres/itemrepo"
	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// ItemRepositoryIntegrationTestSuite provides integration tests for the item
// repository using PostgreSQL containers, including the expected-version fence.
type ItemRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *itemrepo.GormItemRepository
	tracker    *MockAggregateTracker
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&itemrepo.ItemDTO{}))
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = itemrepo.NewGormItemRepository(suite.db, suite.tracker)
}

func (suite *ItemRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ItemRepositoryIntegrationTestSuite) createPendingItem() *item.OrderItem {
	orderItem, err := item.NewOrderItem(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now())
	suite.Require().NoError(err)
	return orderItem
}

func (suite *ItemRepositoryIntegrationTestSuite) addItem(orderItem *item.OrderItem) {
	suite.tracker.On("TrackAggregate", orderItem.ID(), orderItem).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), orderItem))
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAdd_ValidItem_Success() {
	orderItem := suite.createPendingItem()

	suite.addItem(orderItem)

	var count int64
	err := suite.db.Model(&itemrepo.ItemDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestGet_ExistingItem_RoundTrips() {
	ctx := context.Background()

	orderItem := suite.createPendingItem()
	err := orderItem.TransitionTo(item.Preparing, "cook-1", "", time.Now())
	suite.Require().NoError(err)
	suite.addItem(orderItem)

	retrieved, err := suite.repository.Get(ctx, orderItem.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.ID().IsEqual(orderItem.ID()))
	suite.True(retrieved.OrderID().IsEqual(orderItem.OrderID()))
	suite.True(retrieved.TicketID().IsEqual(orderItem.TicketID()))
	suite.Equal(item.Preparing, retrieved.Status())
	suite.Equal(1, retrieved.Version())
	suite.Equal("cook-1", retrieved.LastActorID())
	suite.WithinDuration(orderItem.UpdatedAt(), retrieved.UpdatedAt(), time.Second)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestGet_NonExistentItem_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ItemRepositoryIntegrationTestSuite) TestUpdate_MatchingVersion_Persists() {
	ctx := context.Background()

	orderItem := suite.createPendingItem()
	suite.addItem(orderItem)

	err := orderItem.TransitionTo(item.Rejected, "cook-1", "out of stock", time.Now())
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", orderItem.ID(), orderItem).Once()
	err = suite.repository.Update(ctx, orderItem, 0)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, orderItem.ID())
	suite.Require().NoError(err)
	suite.Equal(item.Rejected, retrieved.Status())
	suite.Equal(1, retrieved.Version())
	suite.Equal("out of stock", retrieved.RejectionReason())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionConflict() {
	ctx := context.Background()

	orderItem := suite.createPendingItem()
	suite.addItem(orderItem)

	err := orderItem.TransitionTo(item.Preparing, "cook-1", "", time.Now())
	suite.Require().NoError(err)

	// The fence expects the stored version, which is still 0.
	err = suite.repository.Update(ctx, orderItem, 3)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, item.ErrVersionConflict)

	var conflict *item.VersionConflictError
	suite.Require().ErrorAs(err, &conflict)
	suite.Equal(3, conflict.ExpectedVersion)

	// The stored row is untouched.
	retrieved, err := suite.repository.Get(ctx, orderItem.ID())
	suite.Require().NoError(err)
	suite.Equal(item.Pending, retrieved.Status())
	suite.Equal(0, retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestUpdate_NonExistentItem_ReturnsNotFoundError() {
	orderItem := suite.createPendingItem()
	err := orderItem.TransitionTo(item.Preparing, "cook-1", "", time.Now())
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), orderItem, 0)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ItemRepositoryIntegrationTestSuite) TestGetByTicket_PreservesInsertionOrder() {
	ctx := context.Background()

	ticketID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	inserted := make([]*item.OrderItem, 0, 3)
	for range 3 {
		orderItem, err := item.NewOrderItem(kernel.NewUUID(), orderID, ticketID, time.Now())
		suite.Require().NoError(err)
		suite.addItem(orderItem)
		inserted = append(inserted, orderItem)
		time.Sleep(2 * time.Millisecond)
	}

	// An item on another ticket must not leak in.
	stranger := suite.createPendingItem()
	suite.addItem(stranger)

	retrieved, err := suite.repository.GetByTicket(ctx, ticketID)
	suite.Require().NoError(err)
	suite.Require().Len(retrieved, 3)

	for i, orderItem := range inserted {
		suite.True(retrieved[i].ID().IsEqual(orderItem.ID()),
			"item %d should keep its insertion position", i)
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestGetByTicket_NoItems_ReturnsEmptySlice() {
	retrieved, err := suite.repository.GetByTicket(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.NotNil(retrieved)
	suite.Empty(retrieved)
}

func TestItemRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ItemRepositoryIntegrationTestSuite))
}
