// Package rabbitmq publishes job events to a topic exchange. The routing key
// is the event type, so consumers can bind to "offer.*" or "job.assigned".
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/job"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Config struct {
	URL            string
	Exchange       string
	ConnectRetries int
	RetryInterval  time.Duration
}

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	logger   *slog.Logger
}

// Dial connects, retrying as configured, and declares a durable topic
// exchange.
func Dial(cfg Config, logger *slog.Logger) (*Publisher, error) {
	attempts := max(cfg.ConnectRetries, 1)

	var (
		conn *amqp.Connection
		err  error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			break
		}
		logger.Warn("failed to connect to RabbitMQ", "attempt", attempt, "error", err)
		if attempt < attempts {
			time.Sleep(cfg.RetryInterval)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err = ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %w", cfg.Exchange, err)
	}

	p := NewPublisher(ch, cfg.Exchange, logger)
	p.conn = conn
	return p, nil
}

// NewPublisher wraps an already declared channel.
func NewPublisher(ch channel, exchange string, logger *slog.Logger) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, logger: logger.With("component", "rabbitmq")}
}

// message is the wire form of a job event.
type message struct {
	Type          string    `json:"type"`
	JobID         string    `json:"job_id"`
	JobType       string    `json:"job_type"`
	OriginalJobID string    `json:"original_job_id,omitempty"`
	OfferID       string    `json:"offer_id,omitempty"`
	DriverID      string    `json:"driver_id,omitempty"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func toMessage(e job.Event) message {
	m := message{
		Type:       string(e.Type),
		JobID:      e.JobID.String(),
		JobType:    e.JobType.String(),
		OfferID:    e.OfferID,
		Status:     e.Status.String(),
		OccurredAt: e.OccurredAt.UTC(),
	}
	if e.OriginalJobID != nil {
		m.OriginalJobID = e.OriginalJobID.String()
	}
	if e.DriverID != nil {
		m.DriverID = e.DriverID.String()
	}
	return m
}

// Publish implements ports.EventPublisher.
func (p *Publisher) Publish(ctx context.Context, e job.Event) error {
	body, err := json.Marshal(toMessage(e))
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, string(e.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.JobID.String() + ":" + string(e.Type),
		Timestamp:    e.OccurredAt,
		Type:         string(e.Type),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", e.Type, err)
	}

	p.logger.DebugContext(ctx, "event published", "event_type", string(e.Type), "job_id", e.JobID.String())
	return nil
}

func (p *Publisher) Close() error {
	var err error
	if p.ch != nil {
		err = p.ch.Close()
	}
	if p.conn != nil {
		if closeErr := p.conn.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}
