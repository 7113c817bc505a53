package mq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventlodging/internal/domain"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	mu     sync.Mutex
	sent   []published
	err    error
	closed bool

	notify chan *amqp.Error
	once   sync.Once
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) NotifyClose(c chan *amqp.Error) chan *amqp.Error {
	f.notify = c
	return c
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.shutdown(nil)
	return nil
}

// shutdown delivers err to the close listener the way the broker does.
func (f *fakeChannel) shutdown(err *amqp.Error) {
	f.once.Do(func() {
		if f.notify == nil {
			return
		}
		if err != nil {
			f.notify <- err
		}
		close(f.notify)
	})
}

func (f *fakeChannel) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeConn struct{ closed bool }

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

// scriptedDial hands out the given channels in order, or dialErr when set.
type scriptedDial struct {
	mu      sync.Mutex
	chans   []*fakeChannel
	calls   int
	dialErr error
}

func (d *scriptedDial) dial() (channel, io.Closer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.dialErr != nil {
		return nil, nil, d.dialErr
	}
	ch := d.chans[0]
	d.chans = d.chans[1:]
	return ch, &fakeConn{}, nil
}

func newTestPublisher(t *testing.T, d *scriptedDial) *Publisher {
	t.Helper()
	p := &Publisher{exchange: "bookings", dial: d.dial}
	require.NoError(t, p.connect())
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "bookings"}
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), &domain.BookingEvent{
		Type: domain.BookingChanged, BookingID: "bk-1", UserID: "user-1", RoomID: "room-2", OccurredAt: at,
	})
	require.NoError(t, err)
	require.Len(t, ch.sent, 1)

	got := ch.sent[0]
	assert.Equal(t, "bookings", got.exchange)
	assert.Equal(t, "booking.changed", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)

	var body map[string]any
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, "booking.changed", body["type"])
	assert.Equal(t, "bk-1", body["booking_id"])
	assert.Equal(t, "room-2", body["room_id"])
}

func TestPublisher_Publish_error(t *testing.T) {
	nack := errors.New("nack")
	p := &Publisher{ch: &fakeChannel{err: nack}, exchange: "bookings"}

	err := p.Publish(context.Background(), &domain.BookingEvent{Type: domain.BookingCreated, BookingID: "bk-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, nack))
	assert.Contains(t, err.Error(), "booking.created")
}

func TestPublisher_Publish_retriesClosedChannelOnce(t *testing.T) {
	stale := &fakeChannel{}
	fresh := &fakeChannel{}
	d := &scriptedDial{chans: []*fakeChannel{stale, fresh}}
	p := newTestPublisher(t, d)
	stale.mu.Lock()
	stale.err = amqp.ErrClosed
	stale.mu.Unlock()

	err := p.Publish(context.Background(), &domain.BookingEvent{Type: domain.BookingCreated, BookingID: "bk-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, d.calls)
	assert.Equal(t, 1, fresh.sentCount())
	assert.True(t, stale.closed)
}

func TestPublisher_Publish_closedTwiceGivesUp(t *testing.T) {
	d := &scriptedDial{chans: []*fakeChannel{{err: amqp.ErrClosed}, {err: amqp.ErrClosed}}}
	p := newTestPublisher(t, d)

	err := p.Publish(context.Background(), &domain.BookingEvent{Type: domain.BookingCreated, BookingID: "bk-1"})
	require.ErrorIs(t, err, amqp.ErrClosed)
	assert.Equal(t, 2, d.calls)
}

func TestPublisher_RedialsAfterBrokerClose(t *testing.T) {
	first := &fakeChannel{}
	second := &fakeChannel{}
	d := &scriptedDial{chans: []*fakeChannel{first, second}}
	p := newTestPublisher(t, d)

	first.shutdown(&amqp.Error{Code: amqp.ConnectionForced, Reason: "broker restart"})
	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.ch == nil
	}, time.Second, 5*time.Millisecond)

	err := p.Publish(context.Background(), &domain.BookingEvent{Type: domain.BookingChanged, BookingID: "bk-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, d.calls)
	assert.Equal(t, 0, first.sentCount())
	assert.Equal(t, 1, second.sentCount())
}

func TestPublisher_ReconnectFailure(t *testing.T) {
	d := &scriptedDial{chans: []*fakeChannel{{}}}
	p := newTestPublisher(t, d)
	p.reset(p.ch)

	d.dialErr = errors.New("connection refused")
	err := p.Publish(context.Background(), &domain.BookingEvent{Type: domain.BookingCreated, BookingID: "bk-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reconnect")

	recovered := &fakeChannel{}
	d.dialErr = nil
	d.chans = []*fakeChannel{recovered}
	require.NoError(t, p.Publish(context.Background(), &domain.BookingEvent{Type: domain.BookingCreated, BookingID: "bk-1"}))
	assert.Equal(t, 1, recovered.sentCount())
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	conn := &fakeConn{}
	p := &Publisher{ch: ch, conn: conn}
	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
	assert.True(t, conn.closed)

	err := p.Publish(context.Background(), &domain.BookingEvent{Type: domain.BookingCreated})
	require.ErrorIs(t, err, amqp.ErrClosed)
}
