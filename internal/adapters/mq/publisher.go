package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"eventlodging/internal/domain"
)

const dialTimeout = 5 * time.Second

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	NotifyClose(c chan *amqp.Error) chan *amqp.Error
	Close() error
}

// dialFunc opens a connection and a channel with the exchange declared.
type dialFunc func() (channel, io.Closer, error)

// Publisher sends booking events to a durable RabbitMQ topic exchange.
// The routing key is the event type, e.g. "booking.created".
// When the broker drops the channel the next Publish dials again.
type Publisher struct {
	exchange string
	dial     dialFunc
	logger   *slog.Logger

	mu     sync.Mutex
	ch     channel
	conn   io.Closer
	closed bool
}

var _ domain.BookingEventPublisher = (*Publisher)(nil)

func NewPublisher(url, exchange string, logger *slog.Logger) (*Publisher, error) {
	p := &Publisher{
		exchange: exchange,
		logger:   logger,
		dial: func() (channel, io.Closer, error) {
			return dialExchange(url, exchange)
		},
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func dialExchange(url, exchange string) (channel, io.Closer, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange: %w", err)
	}
	return ch, conn, nil
}

// connect dials a fresh session. Callers hold p.mu, except during construction.
func (p *Publisher) connect() error {
	ch, conn, err := p.dial()
	if err != nil {
		return err
	}
	p.ch, p.conn = ch, conn
	go p.watch(ch, ch.NotifyClose(make(chan *amqp.Error, 1)))
	return nil
}

func (p *Publisher) watch(ch channel, closed <-chan *amqp.Error) {
	amqpErr := <-closed
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.ch != ch {
		return
	}
	p.dropLocked()
	if amqpErr != nil && p.logger != nil {
		p.logger.Warn("rabbitmq channel closed, will re-dial on next publish", "err", amqpErr)
	}
}

// dropLocked forgets the current session so the next publish dials again.
func (p *Publisher) dropLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

func (p *Publisher) channel() (channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, amqp.ErrClosed
	}
	if p.ch == nil {
		if err := p.connect(); err != nil {
			return nil, fmt.Errorf("reconnect: %w", err)
		}
		if p.logger != nil {
			p.logger.Info("rabbitmq reconnected", "exchange", p.exchange)
		}
	}
	return p.ch, nil
}

func (p *Publisher) reset(stale channel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == stale {
		p.dropLocked()
	}
}

func (p *Publisher) Publish(ctx context.Context, event *domain.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	// A channel closed under us is retried once on a fresh session.
	for attempt := 0; ; attempt++ {
		ch, err := p.channel()
		if err != nil {
			return fmt.Errorf("publish %s: %w", event.Type, err)
		}
		err = ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg)
		if err == nil {
			return nil
		}
		if !errors.Is(err, amqp.ErrClosed) || attempt > 0 {
			return fmt.Errorf("publish %s: %w", event.Type, err)
		}
		p.reset(ch)
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	var err error
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		err = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
	return err
}
