// Package postgres provides the GORM-backed unit of work that scopes item and
// ticket repositories to a single database transaction.
package postgres

import (
	"context"

	"kitchen/internal/adapters/out/postgres/itemrepo"
	"kitchen/internal/adapters/out/postgres/ticketrepo"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates new GormUnitOfWork instances.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory over a shared database handle.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work. Each command gets its own instance so
// concurrent handlers never share transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return NewGormUnitOfWork(f.db)
}

// GormUnitOfWork implements the unit of work pattern with explicit transaction
// control. Repositories obtained from it write through the active transaction.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates map[kernel.UUID]any
}

// NewGormUnitOfWork creates a new unit of work with explicit transaction control.
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                db,
		trackedAggregates: make(map[kernel.UUID]any),
	}
}

// Begin starts a new database transaction.
func (u *GormUnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return nil // transaction already started
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	u.tx = tx
	return nil
}

// Commit commits the current transaction.
func (u *GormUnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := u.tx.WithContext(ctx).Commit().Error
	u.tx = nil
	u.trackedAggregates = make(map[kernel.UUID]any)
	return err
}

// Rollback rolls back the current transaction. Calling it after Commit is a
// no-op, which lets handlers defer it unconditionally.
func (u *GormUnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.WithContext(ctx).Rollback().Error
	u.tx = nil
	u.trackedAggregates = make(map[kernel.UUID]any)
	return err
}

// TrackAggregate records an aggregate touched during the transaction.
func (u *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	u.trackedAggregates[id] = aggregate
}

// ItemRepository returns an item repository bound to the current transaction.
func (u *GormUnitOfWork) ItemRepository() ports.ItemRepository {
	return itemrepo.NewGormItemRepository(u.session(), u)
}

// TicketRepository returns a ticket repository bound to the current transaction.
func (u *GormUnitOfWork) TicketRepository() ports.TicketRepository {
	return ticketrepo.NewGormTicketRepository(u.session(), u)
}

func (u *GormUnitOfWork) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}
