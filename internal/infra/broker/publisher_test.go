package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func (c *fakeChannel) Close() error { return nil }

func TestPublishJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "booking.events"}

	id := uuid.New()
	err := p.PublishJSON(context.Background(), KeyBookingConfirmed, BookingEvent{
		BookingID:  id,
		Status:     "confirmed",
		OccurredAt: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "booking.events", ch.exchange)
	assert.Equal(t, KeyBookingConfirmed, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)

	var decoded BookingEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, id, decoded.BookingID)
}

func TestPublishJSON_ChannelError(t *testing.T) {
	p := &Publisher{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: "booking.events"}

	err := p.PublishJSON(context.Background(), KeyHoldsReaped, HoldsReapedEvent{Count: 2})
	assert.ErrorIs(t, err, ErrPublish)
}
