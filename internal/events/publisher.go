// Package events publishes order lifecycle messages for downstream consumers
// such as the warehouse.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// OrderItem is one line of an order-created message
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderCreated is published once an order has been accepted by the order API
type OrderCreated struct {
	OrderID         string      `json:"orderId"`
	ExternalOrderID string      `json:"externalOrderId"`
	CartID          string      `json:"cartId"`
	CustomerID      string      `json:"customerId"`
	Total           string      `json:"total"`
	PaymentMethod   string      `json:"paymentMethod"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Publisher sends order events
type Publisher interface {
	PublishOrderCreated(ctx context.Context, msg OrderCreated) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops every message
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) PublishOrderCreated(context.Context, OrderCreated) error { return nil }

func (nopPublisher) Close() error { return nil }

type rabbitPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *zap.Logger
}

// NewRabbitPublisher dials RabbitMQ and declares a durable queue
func NewRabbitPublisher(uri, queue string, logger *zap.Logger) (Publisher, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return &rabbitPublisher{
		conn:    conn,
		channel: ch,
		queue:   queue,
		logger:  logger,
	}, nil
}

func (p *rabbitPublisher) PublishOrderCreated(ctx context.Context, msg OrderCreated) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.OrderID,
			Timestamp:    msg.CreatedAt,
			Type:         "order_created",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish order %s: %w", msg.OrderID, err)
	}

	p.logger.Debug("Published order event", zap.String("order_id", msg.OrderID), zap.String("queue", p.queue))
	return nil
}

func (p *rabbitPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
