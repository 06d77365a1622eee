// Package rabbitmq publishes outbox messages to a RabbitMQ topic exchange.
// The routing key is the event type, e.g. "order.status_changed", so consumers
// can bind to "order.#" or to a single event.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"

	"foodtruck/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const ContentTypeJSON = "application/json"

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher implements ports.EventPublisher.
type Publisher struct {
	conn     *amqp.Connection
	channel  Channel
	exchange string
}

// NewPublisher dials url, opens a channel and declares a durable topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		return nil, errors.New("rabbitmq exchange is required")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Publisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
	}, nil
}

// NewChannelPublisher publishes on an already open channel.
func NewChannelPublisher(channel Channel, exchange string) *Publisher {
	return &Publisher{
		channel:  channel,
		exchange: exchange,
	}
}

// Publish sends message as a persistent JSON publishing.
func (p *Publisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  ContentTypeJSON,
		MessageId:    message.ID.String(),
		Type:         message.Type,
		Timestamp:    message.OccurredAt,
		Headers: amqp.Table{
			"aggregate_id": message.AggregateID,
		},
		Body: message.Payload,
	}

	if err := p.channel.PublishWithContext(
		ctx,
		p.exchange,
		message.Type,
		false, // mandatory
		false, // immediate
		msg,
	); err != nil {
		return fmt.Errorf("publish %s %s: %w", message.Type, message.ID, err)
	}
	return nil
}

// Close closes the channel and, when the publisher dialed it, the connection.
func (p *Publisher) Close() error {
	var err error
	if p.channel != nil {
		err = p.channel.Close()
	}
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
