package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          5,
		ServiceID:   1,
		ClientID:    42,
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		TotalPrice:  decimal.NewFromInt(120),
		Status:      domain.StatusPending,
		Payment:     domain.Payment{Method: domain.PaymentTransfer, Status: domain.PaymentPending},
	}
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "bookings"}

	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, p.Publish(context.Background(), NewBookingEvent(RKBookingCreated, testBooking(), at)))

	assert.Equal(t, "bookings", ch.exchange)
	assert.Equal(t, RKBookingCreated, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)

	var body map[string]any
	require.NoError(t, json.Unmarshal(ch.msg.Body, &body))
	assert.Equal(t, float64(5), body["bookingId"])
	assert.Equal(t, "2025-03-10", body["bookingDate"])
	assert.Equal(t, "120.00", body["totalPrice"])
	assert.Equal(t, "pending", body["paymentStatus"])
	assert.NotContains(t, body, "RoutingKey")

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_PublishError(t *testing.T) {
	p := &Publisher{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: "bookings"}

	err := p.Publish(context.Background(), NewBookingEvent(RKBookingCancelled, testBooking(), time.Now()))
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), BookingEvent{}))
	assert.NoError(t, Noop{}.Close())
}
