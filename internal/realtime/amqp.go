package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

// AMQPBroker publishes events to a topic exchange so that other processes
// holding websocket connections can relay them.
type AMQPBroker struct {
	conn     *amqp091.Connection
	exchange string
}

// DialAMQP connects to url and declares a durable topic exchange.
func DialAMQP(url, exchange string) (*AMQPBroker, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &AMQPBroker{conn: conn, exchange: exchange}, nil
}

// RoutingKey maps a topic to an AMQP routing key: "role:T1:admin" becomes
// "role.T1.admin".
func RoutingKey(topic string) string {
	return strings.ReplaceAll(topic, ":", ".")
}

// Publish sends ev as JSON with the topic as routing key.
func (b *AMQPBroker) Publish(ctx context.Context, topic string, ev model.Event) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	body, err := json.Marshal(Message{Topic: topic, Event: ev})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = ch.PublishWithContext(ctx, b.exchange, RoutingKey(topic), false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Transient,
		MessageId:    ev.ID.String(),
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Close closes the underlying connection.
func (b *AMQPBroker) Close() error {
	return b.conn.Close()
}
