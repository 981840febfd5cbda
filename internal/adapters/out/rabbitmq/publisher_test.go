package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"kitchen/internal/core/domain/events"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declaredExchanges map[string]string
	published         []publishedMessage
	publishErr        error
	closes            int
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{declaredExchanges: make(map[string]string)}
}

func (f *fakeChannel) ExchangeDeclare(
	name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table,
) error {
	f.declaredExchanges[name] = kind
	return nil
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.published = append(f.published, publishedMessage{exchange: exchange, key: key, msg: msg})
	return f.publishErr
}

func (f *fakeChannel) Close() error {
	f.closes++
	return nil
}

type fakeConnection struct {
	channel    *fakeChannel
	channelErr error
}

func (f *fakeConnection) Channel() (Channel, error) {
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	return f.channel, nil
}

func (f *fakeConnection) Close() error                    { return nil }
func (f *fakeConnection) NotifyClose() <-chan *amqp.Error { return nil }
func (f *fakeConnection) IsClosed() bool                  { return false }

func TestPublisher_PublishTicketBumped_RoutesAndFansOut(t *testing.T) {
	ctx := t.Context()

	channel := newFakeChannel()
	pub := NewPublisher(&fakeConnection{channel: channel})

	event := events.TicketBumpedEvent{
		KitchenEventMetadata: events.KitchenEventMetadata{
			EventType:  events.EventTicketBumped,
			OccurredAt: time.Now(),
			TicketID:   "ticket-1",
			OrderID:    "order-1",
			Station:    "grill",
			ActorID:    "expo-1",
		},
		BumpedAt:      time.Now(),
		HasRejections: true,
	}

	err := pub.PublishTicketBumped(ctx, event)

	require.NoError(t, err)
	assert.Equal(t, "topic", channel.declaredExchanges[events.KitchenTopic])
	assert.Equal(t, "fanout", channel.declaredExchanges[events.NotificationsFanout])
	assert.Equal(t, 2, channel.closes)

	require.Len(t, channel.published, 2)

	topicMsg := channel.published[0]
	assert.Equal(t, events.KitchenTopic, topicMsg.exchange)
	assert.Equal(t, events.EventTicketBumped, topicMsg.key)
	assert.Equal(t, "application/json", topicMsg.msg.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), topicMsg.msg.DeliveryMode)

	fanoutMsg := channel.published[1]
	assert.Equal(t, events.NotificationsFanout, fanoutMsg.exchange)
	assert.Empty(t, fanoutMsg.key)

	var decoded events.TicketBumpedEvent
	require.NoError(t, json.Unmarshal(topicMsg.msg.Body, &decoded))
	assert.Equal(t, "ticket-1", decoded.TicketID)
	assert.True(t, decoded.HasRejections)
}

func TestPublisher_PublishItemStatusChanged_CarriesPayload(t *testing.T) {
	ctx := t.Context()

	channel := newFakeChannel()
	pub := NewPublisher(&fakeConnection{channel: channel})

	event := events.ItemStatusChangedEvent{
		KitchenEventMetadata: events.KitchenEventMetadata{
			EventType: events.EventItemStatusChanged,
			TicketID:  "ticket-1",
		},
		ItemID:         "item-1",
		PreviousStatus: "pending",
		NewStatus:      "rejected",
		Reason:         "out of stock",
		Version:        1,
	}

	err := pub.PublishItemStatusChanged(ctx, event)

	require.NoError(t, err)
	require.Len(t, channel.published, 1)
	assert.Equal(t, events.EventItemStatusChanged, channel.published[0].key)

	var decoded events.ItemStatusChangedEvent
	require.NoError(t, json.Unmarshal(channel.published[0].msg.Body, &decoded))
	assert.Equal(t, "rejected", decoded.NewStatus)
	assert.Equal(t, "out of stock", decoded.Reason)
	assert.Equal(t, 1, decoded.Version)
}

func TestPublisher_ChannelErrorIsWrapped(t *testing.T) {
	ctx := t.Context()

	pub := NewPublisher(&fakeConnection{channelErr: errors.New("broker gone")})

	err := pub.PublishTicketReady(ctx, events.TicketReadyEvent{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker gone")
}
