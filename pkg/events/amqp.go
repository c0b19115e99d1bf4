package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"pygely_backend/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	maxReconnectAttempts = 10
	maxReconnectBackoff  = 30 * time.Second
)

// ErrNotConnected is returned by Publish while the broker connection is down.
var ErrNotConnected = errors.New("amqp publisher not connected")

// AMQPPublisher sends events as persistent JSON messages to a durable queue
// through the default exchange. A dropped connection is redialled in the
// background with exponential backoff.
type AMQPPublisher struct {
	url     string
	queue   string
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool
	mu      sync.Mutex
}

func NewAMQPPublisher(amqpURL, queue string) (*AMQPPublisher, error) {
	p := &AMQPPublisher{url: amqpURL, queue: queue}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		p.queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to declare queue %s: %w", p.queue, err)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		ch.Close()
		return conn.Close()
	}
	p.conn, p.channel = conn, ch
	p.mu.Unlock()

	go p.handleReconnect(conn.NotifyClose(make(chan *amqp.Error, 1)))

	logger.Log.Info("Connected to RabbitMQ",
		zap.String("host", hostOf(p.url)),
		zap.String("queue", p.queue))
	return nil
}

// handleReconnect waits for the connection to drop and redials it. A clean
// Close delivers no error and ends the loop.
func (p *AMQPPublisher) handleReconnect(notifyClose <-chan *amqp.Error) {
	amqpErr, ok := <-notifyClose
	if !ok || amqpErr == nil {
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.channel = nil
	p.mu.Unlock()

	logger.Log.Warn("RabbitMQ connection closed, reconnecting", zap.String("reason", amqpErr.Error()))

	for attempt := 0; attempt < maxReconnectAttempts; attempt++ {
		time.Sleep(reconnectBackoff(attempt))
		if p.isClosed() {
			return
		}
		if err := p.connect(); err != nil {
			logger.Log.Error("RabbitMQ reconnection failed",
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}
		logger.Log.Info("Reconnected to RabbitMQ", zap.Int("attempts", attempt+1))
		return
	}
	logger.Log.Error("Giving up reconnecting to RabbitMQ", zap.Int("attempts", maxReconnectAttempts))
}

func reconnectBackoff(attempt int) time.Duration {
	if attempt >= 5 {
		return maxReconnectBackoff
	}
	backoff := time.Duration(1<<attempt) * time.Second
	if backoff > maxReconnectBackoff {
		return maxReconnectBackoff
	}
	return backoff
}

func (p *AMQPPublisher) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *AMQPPublisher) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.channel == nil {
		return ErrNotConnected
	}

	return p.channel.PublishWithContext(
		ctx,
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    evt.ID.String(),
			Type:         string(evt.Type),
			Timestamp:    evt.OccurredAt,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid"
	}
	return u.Host
}
