// Package notification publishes alert-created events for downstream
// consumers. Delivery is best-effort: a failed publish is logged and never
// fails the ingestion that produced the alert.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"fraudwatch/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher emits alert events.
type Publisher interface {
	PublishAlert(ctx context.Context, alert *models.Alert) error
	Close() error
}

// LogPublisher is the default publisher when no broker is configured.
type LogPublisher struct{}

// NewLogPublisher creates a publisher that only logs.
func NewLogPublisher() *LogPublisher { return &LogPublisher{} }

// PublishAlert logs the alert event.
func (p *LogPublisher) PublishAlert(ctx context.Context, alert *models.Alert) error {
	log.Printf("alert created: id=%s transaction=%s risk=%.1f", alert.ID, alert.TransactionID, alert.RiskScore)
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() error { return nil }

// AMQPConfig holds RabbitMQ publisher settings.
type AMQPConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

// AMQPPublisher publishes alert events to a RabbitMQ exchange.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     AMQPConfig
}

// NewAMQPPublisher connects to RabbitMQ and declares the exchange.
func NewAMQPPublisher(cfg AMQPConfig) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: ch, cfg: cfg}, nil
}

// PublishAlert sends the alert as a JSON message.
func (p *AMQPPublisher) PublishAlert(ctx context.Context, alert *models.Alert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, p.cfg.Exchange, p.cfg.RoutingKey, false, false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish alert: %w", err)
	}
	return nil
}

// Close shuts down the channel and connection.
func (p *AMQPPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
