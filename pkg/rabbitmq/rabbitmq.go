// Package rabbitmq wraps an AMQP connection with automatic reconnection and
// a publish call that retries once the channel is back.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	pkgLog "scm-event-dispatcher/pkg/log"
)

var ErrNotConnected = errors.New("rabbitmq: channel is not available")

// Config describes the broker and the exchange messages are published to.
type Config struct {
	URL            string
	Exchange       string
	ExchangeKind   string // Defaults to "topic"
	ConnectionName string
	MaxAttempts    int // Initial connection attempts, defaults to 10
}

// Connection manages an AMQP connection and channel.
type Connection struct {
	cfg Config
	l   pkgLog.Logger

	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel

	stopOnce sync.Once
	stop     chan struct{}
}

// NewConnection creates a Connection. Call Connect before publishing.
func NewConnection(cfg Config, l pkgLog.Logger) *Connection {
	if cfg.ExchangeKind == "" {
		cfg.ExchangeKind = amqp.ExchangeTopic
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	return &Connection{cfg: cfg, l: l, stop: make(chan struct{})}
}

// Connect dials with exponential backoff, declares the exchange and starts
// watching for connection loss.
func (c *Connection) Connect(ctx context.Context) error {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for attempt := 1; ; attempt++ {
		err := c.connect()
		if err == nil {
			c.l.Infof(ctx, "rabbitmq: connected on attempt %d", attempt)
			break
		}
		if attempt >= c.cfg.MaxAttempts {
			return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempt, err)
		}
		c.l.Warnf(ctx, "rabbitmq: connection attempt %d failed, retrying in %s: %v", attempt, backoff, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}

	go c.monitor()
	return nil
}

func (c *Connection) connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel != nil && !c.channel.IsClosed() {
		c.channel.Close()
	}
	if c.conn != nil && !c.conn.IsClosed() {
		c.conn.Close()
	}

	conn, err := amqp.DialConfig(c.cfg.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp.Table{
			"connection_name": c.cfg.ConnectionName,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}
	if c.cfg.Exchange != "" {
		if err := ch.ExchangeDeclare(c.cfg.Exchange, c.cfg.ExchangeKind, true, false, false, false, nil); err != nil {
			conn.Close()
			return fmt.Errorf("failed to declare exchange %s: %w", c.cfg.Exchange, err)
		}
	}

	c.conn = conn
	c.channel = ch
	return nil
}

func (c *Connection) monitor() {
	ctx := context.Background()
	for {
		c.mu.RLock()
		if c.conn == nil || c.channel == nil {
			c.mu.RUnlock()
			return
		}
		connClose := c.conn.NotifyClose(make(chan *amqp.Error, 1))
		chanClose := c.channel.NotifyClose(make(chan *amqp.Error, 1))
		c.mu.RUnlock()

		var cause *amqp.Error
		select {
		case <-c.stop:
			return
		case cause = <-connClose:
		case cause = <-chanClose:
		}
		if cause == nil {
			// Graceful close.
			return
		}
		c.l.Errorf(ctx, "rabbitmq: connection lost, reconnecting: %v", cause)
		if !c.reconnect(ctx) {
			return
		}
	}
}

func (c *Connection) reconnect(ctx context.Context) bool {
	backoff := time.Second
	const maxBackoff = 30 * time.Second
	for attempt := 1; ; attempt++ {
		select {
		case <-c.stop:
			return false
		default:
		}
		err := c.connect()
		if err == nil {
			c.l.Infof(ctx, "rabbitmq: reconnected after %d attempts", attempt)
			return true
		}
		c.l.Warnf(ctx, "rabbitmq: reconnect attempt %d failed: %v", attempt, err)
		select {
		case <-c.stop:
			return false
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

// Publish sends body to the configured exchange, retrying briefly while the
// channel is being re-established.
func (c *Connection) Publish(ctx context.Context, routingKey string, body []byte) error {
	const maxRetries = 3
	delay := 100 * time.Millisecond

	for attempt := 1; attempt <= maxRetries; attempt++ {
		c.mu.RLock()
		ch := c.channel
		c.mu.RUnlock()

		if ch != nil && !ch.IsClosed() {
			err := ch.PublishWithContext(ctx, c.cfg.Exchange, routingKey, false, false, amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now(),
				Body:         body,
			})
			if err == nil {
				return nil
			}
			if !ch.IsClosed() {
				return fmt.Errorf("failed to publish message: %w", err)
			}
		}

		if attempt == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("%w after %d attempts", ErrNotConnected, maxRetries)
}

// IsHealthy reports whether both the connection and channel are open.
func (c *Connection) IsHealthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil && !c.conn.IsClosed() && c.channel != nil && !c.channel.IsClosed()
}

// Close stops reconnection and closes the connection.
func (c *Connection) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		if err != nil && !errors.Is(err, amqp.ErrClosed) {
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}
	return nil
}
