package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/chanjin5212/myfarm-storefront/internal/helpers"
)

// RoutingPatterns are the bindings the notification queue consumes.
var RoutingPatterns = []string{"user.*", "password.*"}

type ActivityPublisher interface {
	Publish(ctx context.Context, event ActivityEvent) error
}

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQPublisher struct {
	mu       sync.Mutex
	channel  Channel
	exchange string
	log      *logrus.Logger
}

func NewRabbitMQPublisher(ch Channel, exchange string, log *logrus.Logger) (*RabbitMQPublisher, error) {
	if err := DeclareExchange(ch, exchange); err != nil {
		return nil, err
	}

	return &RabbitMQPublisher{channel: ch, exchange: exchange, log: log}, nil
}

func DeclareExchange(ch Channel, exchange string) error {
	err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, event ActivityEvent) error {
	if event.EventID == "" {
		event.EventID = helpers.GenerateNewID().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.Publish(
		p.exchange,         // exchange
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
			Body:         body,
		})
	if err != nil {
		p.log.WithFields(logrus.Fields{"type": event.Type, "error": err}).Error("Failed to publish activity event")
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.log.WithFields(logrus.Fields{"type": event.Type, "event_id": event.EventID}).Debug("Published activity event")
	return nil
}

// NoopPublisher is used when RabbitMQ is not configured.
type NoopPublisher struct {
	log *logrus.Logger
}

func NewNoopPublisher(log *logrus.Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

func (p *NoopPublisher) Publish(_ context.Context, event ActivityEvent) error {
	p.log.WithField("type", event.Type).Debug("Activity publishing disabled, event dropped")
	return nil
}
