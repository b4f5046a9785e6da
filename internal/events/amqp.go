package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// AMQPPublisher publishes events to a durable topic exchange, routed by event type.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

// Publish sends the event as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// amqp091 channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	slog.DebugContext(ctx, "Published event", slog.String("type", event.Type), slog.String("event_id", event.ID))
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
