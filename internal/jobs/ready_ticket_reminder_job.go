package jobs

import (
	"context"
	"log/slog"
	"time"

	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/ticket"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ReadyTicketReminderJob periodically scans unbumped tickets and publishes a
// TicketReady reminder for each one whose item lines fold to Ready. The
// reminder is advisory: it carries no state change and is re-sent on every
// scan until the ticket is bumped.
type ReadyTicketReminderJob struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  ports.EventPublisher
	aggregator services.TicketAggregator
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewReadyTicketReminderJob creates a job scanning for bumpable tickets.
func NewReadyTicketReminderJob(
	uowFactory ports.UnitOfWorkFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *ReadyTicketReminderJob {
	return &ReadyTicketReminderJob{
		uowFactory: uowFactory,
		publisher:  publisher,
		aggregator: services.NewTicketAggregator(),
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "ready_ticket_reminder_job"),
	}
}

// Start begins the reminder job, scanning every 30 seconds.
func (j *ReadyTicketReminderJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		if err := j.scan(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Ready ticket scan failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ready ticket reminder job started (running every 30 seconds)")
	return nil
}

// Stop stops the reminder job.
func (j *ReadyTicketReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Ready ticket reminder job stopped")
}

func (j *ReadyTicketReminderJob) scan(ctx context.Context) error {
	uow := j.uowFactory.Create()

	unbumped, err := uow.TicketRepository().GetAllUnbumped(ctx)
	if err != nil {
		return err
	}

	for _, kitchenTicket := range unbumped {
		items, itemsErr := uow.ItemRepository().GetByTicket(ctx, kitchenTicket.ID())
		if itemsErr != nil {
			j.logger.ErrorContext(ctx, "Failed to load ticket items",
				"ticket_id", kitchenTicket.ID().String(), "error", itemsErr)
			continue
		}

		state := j.aggregator.Aggregate(items)
		if state.Status != ticket.AggregateReady {
			continue
		}

		event := readyEvent(kitchenTicket, items)
		if publishErr := j.publisher.PublishTicketReady(ctx, event); publishErr != nil {
			j.logger.ErrorContext(ctx, "Failed to publish ready reminder",
				"ticket_id", kitchenTicket.ID().String(), "error", publishErr)
		}
	}

	return nil
}

// readyEvent builds the reminder payload. ReadySince is approximated by the
// latest item update, the moment the last line resolved.
func readyEvent(kitchenTicket *ticket.KitchenTicket, items []*item.OrderItem) events.TicketReadyEvent {
	readySince := kitchenTicket.OpenedAt()
	for _, orderItem := range items {
		if orderItem.UpdatedAt().After(readySince) {
			readySince = orderItem.UpdatedAt()
		}
	}

	return events.TicketReadyEvent{
		KitchenEventMetadata: events.KitchenEventMetadata{
			EventType:  events.EventTicketReady,
			OccurredAt: time.Now(),
			TicketID:   kitchenTicket.ID().String(),
			OrderID:    kitchenTicket.OrderID().String(),
			Station:    kitchenTicket.Station().Code(),
		},
		ReadySince: readySince,
	}
}
