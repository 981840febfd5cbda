package ticketrepo

import (
	"context"
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/ticket"
	"kitchen/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTicketRepository implements TicketRepository using GORM.
type GormTicketRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTicketRepository creates a new GORM ticket repository.
func NewGormTicketRepository(db *gorm.DB, tracker aggregateTracker) *GormTicketRepository {
	return &GormTicketRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new ticket to the database.
func (r *GormTicketRepository) Add(ctx context.Context, aggregate *ticket.KitchenTicket) error {
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

// Update saves an existing ticket to the database.
func (r *GormTicketRepository) Update(ctx context.Context, aggregate *ticket.KitchenTicket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TicketDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"bumped_at": dto.BumpedAt,
			"bumped_by": dto.BumpedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ticketId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a ticket by ID.
func (r *GormTicketRepository) Get(ctx context.Context, id kernel.UUID) (*ticket.KitchenTicket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TicketDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ticketId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUnbumped retrieves every ticket that has not been bumped yet,
// oldest first.
func (r *GormTicketRepository) GetAllUnbumped(ctx context.Context) ([]*ticket.KitchenTicket, error) {
	var dtos []TicketDTO
	if err := r.db.WithContext(ctx).
		Where("bumped_at IS NULL").
		Order("opened_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	tickets := make([]*ticket.KitchenTicket, 0, len(dtos))
	for _, dto := range dtos {
		kitchenTicket, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, kitchenTicket)
	}

	return tickets, nil
}
