// Package amqp publishes document change notifications to RabbitMQ.
package amqp

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/simaogato/wealthtrack/internal/log"
	"github.com/simaogato/wealthtrack/internal/usecase/store"
)

// RoutingKey is used for every document change message
const RoutingKey = "document.changed"

const publishTimeout = 5 * time.Second

// Channel is the subset of *amqp091.Channel the publisher uses
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher forwards store change events to a durable direct exchange.
// Events are queued so the store never waits on the broker; when the queue
// is full the event is dropped and logged.
type Publisher struct {
	conn     *amqp091.Connection
	channel  Channel
	exchange string
	logger   *log.Logger
	events   chan store.ChangeEvent
}

// Dial connects to url and declares the exchange
func Dial(url, exchange string, logger *log.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	p := NewPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

// NewPublisher wraps an open channel
func NewPublisher(ch Channel, exchange string, logger *log.Logger) *Publisher {
	return &Publisher{
		channel:  ch,
		exchange: exchange,
		logger:   logger.WithComponent(log.ComponentAMQP),
		events:   make(chan store.ChangeEvent, 64),
	}
}

// Handle queues ev for publishing; it is meant to be passed to store.Subscribe
func (p *Publisher) Handle(ev store.ChangeEvent) {
	select {
	case p.events <- ev:
	default:
		p.logger.Warn("publish queue full, dropping change event", log.FieldRevision, ev.Revision)
	}
}

// Run publishes queued events until ctx is done
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-p.events:
			if err := p.Publish(ctx, ev); err != nil {
				p.logger.ErrorContext(ctx, "publish failed",
					log.FieldOperation, log.OpPublish,
					log.FieldRevision, ev.Revision,
					log.FieldError, err,
				)
			}
		}
	}
}

// Publish sends one change event synchronously
func (p *Publisher) Publish(ctx context.Context, ev store.ChangeEvent) error {
	body, err := NewDocumentChangedMessage(ev.Revision, ev.Areas).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		RoutingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.logger.DebugContext(ctx, "published document change",
		log.FieldOperation, log.OpPublish,
		log.FieldRevision, ev.Revision,
		log.FieldAreas, ev.Areas,
	)
	return nil
}

// Close closes the channel and connection
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
