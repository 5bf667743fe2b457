package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &RabbitMQ{conn: conn, channel: channel}, nil
}

// DeclareQueue creates a durable queue if it doesn't exist.
func (r *RabbitMQ) DeclareQueue(name string) error {
	_, err := r.channel.QueueDeclare(
		name,  // queue name
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}
	return nil
}

func (r *RabbitMQ) Publish(ctx context.Context, queue string, body []byte) error {
	err := r.channel.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", queue, err)
	}
	return nil
}

// Consume is used by delivery workers and tests.
func (r *RabbitMQ) Consume(queue string) (<-chan amqp.Delivery, error) {
	msgs, err := r.channel.Consume(queue, "", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", queue, err)
	}
	return msgs, nil
}

func (r *RabbitMQ) Close() {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}
}

// OutboundMessage is the payload a delivery worker reads from the reply queue.
type OutboundMessage struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// RabbitSender hands replies to a queue for the transport to deliver.
type RabbitSender struct {
	mq    *RabbitMQ
	queue string
}

func NewRabbitSender(mq *RabbitMQ, queue string) (*RabbitSender, error) {
	if err := mq.DeclareQueue(queue); err != nil {
		return nil, err
	}
	return &RabbitSender{mq: mq, queue: queue}, nil
}

func (s *RabbitSender) SendText(ctx context.Context, to, body string) error {
	data, err := json.Marshal(OutboundMessage{To: to, Body: body})
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}
	return s.mq.Publish(ctx, s.queue, data)
}
