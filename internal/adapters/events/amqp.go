package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the durable topic exchange sync events are published to
const ExchangeName = "ndv.sync"

// Publishing happens on the request path, so a dead broker must fail fast
const (
	dialTimeout   = 2 * time.Second
	redialBackoff = 30 * time.Second
)

// ErrBrokerUnavailable is returned while a failed reconnect is backing off
var ErrBrokerUnavailable = errors.New("amqp broker unavailable")

// AMQPPublisher publishes sync events to RabbitMQ
type AMQPPublisher struct {
	url  string
	dial func(url string) (*amqp.Connection, error)
	now  func() time.Time

	mu      sync.Mutex
	conn    *amqp.Connection
	ch      *amqp.Channel
	retryAt time.Time
}

// NewAMQPPublisher dials the broker and declares the exchange
func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	p := newAMQPPublisher(url, dialBroker)
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func newAMQPPublisher(url string, dial func(string) (*amqp.Connection, error)) *AMQPPublisher {
	return &AMQPPublisher{
		url:  url,
		dial: dial,
		now:  time.Now,
	}
}

// dialBroker is amqp.Dial with a short connect timeout
func dialBroker(url string) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout),
	})
}

func (p *AMQPPublisher) connect() error {
	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("channel open: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("exchange declare: %w", err)
	}

	p.conn = conn
	p.ch = ch
	return nil
}

// Publish sends the event with the event type as routing key. A dropped
// broker connection is re-dialed at most once per backoff window; in
// between, Publish returns ErrBrokerUnavailable without dialing.
func (p *AMQPPublisher) Publish(ctx context.Context, event SyncEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() || p.ch == nil || p.ch.IsClosed() {
		if p.now().Before(p.retryAt) {
			return ErrBrokerUnavailable
		}
		if p.conn != nil {
			_ = p.conn.Close()
			p.conn, p.ch = nil, nil
		}
		if err := p.connect(); err != nil {
			p.retryAt = p.now().Add(redialBackoff)
			return err
		}
	}

	return p.ch.PublishWithContext(ctx, ExchangeName, event.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
}

// Close closes the channel and connection
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
