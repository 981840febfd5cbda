package itemrepo

import (
	"context"
	"errors"

	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM.
type GormItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormItemRepository creates a new GORM item repository.
func NewGormItemRepository(db *gorm.DB, tracker aggregateTracker) *GormItemRepository {
	return &GormItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new item to the database.
func (r *GormItemRepository) Add(ctx context.Context, aggregate *item.OrderItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing item with an expected-version fence. The row is
// written only when the stored version still equals expectedVersion; a fenced
// miss surfaces as item.VersionConflictError so callers can distinguish a
// stale write from a missing row.
func (r *GormItemRepository) Update(ctx context.Context, aggregate *item.OrderItem, expectedVersion int) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Updates(map[string]any{
			"status":           dto.Status,
			"version":          dto.Version,
			"rejection_reason": dto.RejectionReason,
			"last_actor_id":    dto.LastActorID,
			"updated_at":       dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&ItemDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("itemId", aggregate.ID().String())
		}
		return item.NewVersionConflictError(aggregate.ID(), expectedVersion)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an item by ID.
func (r *GormItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.OrderItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("itemId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTicket retrieves all items on a ticket in insertion order.
func (r *GormItemRepository) GetByTicket(ctx context.Context, ticketID kernel.UUID) ([]*item.OrderItem, error) {
	if err := ticketID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]*item.OrderItem, 0, len(dtos))
	for _, dto := range dtos {
		orderItem, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, orderItem)
	}

	return items, nil
}
