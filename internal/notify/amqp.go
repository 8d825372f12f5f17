package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"

	"buildsafe/internal/model"
)

// ExchangeName is the topic exchange all BuildSafe events go through.
// Routing key is the event type, e.g. "milestone.verified".
const ExchangeName = "buildsafe.events"

// AMQPEmitter publishes notification events to a RabbitMQ topic exchange
// for external consumers (buyer apps, dashboards).
type AMQPEmitter struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

var _ Emitter = (*AMQPEmitter)(nil)

// NewAMQPEmitter connects to the broker and declares the events exchange.
func NewAMQPEmitter(url string) (*AMQPEmitter, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPEmitter{conn: conn, channel: ch}, nil
}

// Emit publishes the event as a persistent JSON message, routed by its type.
func (e *AMQPEmitter) Emit(ctx context.Context, n *model.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	return e.channel.PublishWithContext(ctx,
		ExchangeName,
		string(n.Type),
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			MessageId:    n.ID,
			Timestamp:    n.CreatedAt,
			DeliveryMode: amqp091.Persistent,
		},
	)
}

// IsConnected reports whether the broker connection is still alive.
func (e *AMQPEmitter) IsConnected() bool {
	return e.conn != nil && e.channel != nil && !e.conn.IsClosed()
}

// Close releases the channel and connection.
func (e *AMQPEmitter) Close() {
	if e.channel != nil {
		_ = e.channel.Close()
	}
	if e.conn != nil {
		_ = e.conn.Close()
	}
}
