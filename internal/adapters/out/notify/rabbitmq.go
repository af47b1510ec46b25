package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orderlifecycle/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// ChannelPublisher is the part of *amqp.Channel the notifier needs.
type ChannelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQNotifier publishes OrderChanged messages to a topic exchange.
// Routing keys are order.<status> for status events and order.<kind> for
// assignment events, e.g. order.delivered or order.assigned.
type RabbitMQNotifier struct {
	publisher ChannelPublisher
	exchange  string
}

func NewRabbitMQNotifier(publisher ChannelPublisher, exchange string) *RabbitMQNotifier {
	return &RabbitMQNotifier{publisher: publisher, exchange: exchange}
}

// RabbitMQConnection owns the connection and publish channel.
type RabbitMQConnection struct {
	conn    *amqp.Connection
	Channel *amqp.Channel
}

// DialRabbitMQ connects and declares a durable topic exchange.
func DialRabbitMQ(url, exchange string) (*RabbitMQConnection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("rabbitmq: open channel: %w", err), conn.Close())
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, errors.Join(fmt.Errorf("rabbitmq: declare exchange %s: %w", exchange, err), conn.Close())
	}

	return &RabbitMQConnection{conn: conn, Channel: ch}, nil
}

func (c *RabbitMQConnection) Close() error {
	return errors.Join(c.Channel.Close(), c.conn.Close())
}

func (n *RabbitMQNotifier) Notify(ctx context.Context, o *order.Order, e order.Event) error {
	msg := NewOrderChanged(o, e)
	body, err := msg.Marshal()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = n.publisher.PublishWithContext(ctx, n.exchange, RoutingKey(e), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    msg.EventID,
		Timestamp:    msg.OccurredAt,
		Type:         msg.Kind,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish to %s: %w", n.exchange, err)
	}
	return nil
}

func RoutingKey(e order.Event) string {
	switch e.Kind {
	case order.EventAssigned:
		return "order.assigned"
	case order.EventUnassigned:
		return "order.unassigned"
	default:
		return "order." + strings.ToLower(e.Current.String())
	}
}
