package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

type publisher struct {
	conn Connection
}

// NewPublisher creates an EventPublisher that routes every kitchen event to
// the kitchen topic exchange, keyed by event type.
func NewPublisher(conn Connection) ports.EventPublisher {
	return &publisher{conn: conn}
}

func (p *publisher) PublishItemStatusChanged(ctx context.Context, event events.ItemStatusChangedEvent) error {
	return p.publish(event.EventType, event)
}

func (p *publisher) PublishTicketBumped(ctx context.Context, event events.TicketBumpedEvent) error {
	if err := p.publish(event.EventType, event); err != nil {
		return err
	}
	// Bumps also fan out to the front-of-house notification screens.
	return p.notify(event)
}

func (p *publisher) PublishTicketReady(ctx context.Context, event events.TicketReadyEvent) error {
	return p.publish(event.EventType, event)
}

func (p *publisher) publish(routingKey string, payload any) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(events.KitchenTopic, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.Publish(events.KitchenTopic, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (p *publisher) notify(payload any) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(events.NotificationsFanout, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.Publish(events.NotificationsFanout, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}
