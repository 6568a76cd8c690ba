package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"postboard-service/internal/domain/custom_errors"
	ports "postboard-service/internal/domain/ports/output"
	"postboard-service/internal/infrastructure/config"

	"github.com/nats-io/nats.go"
)

const (
	connectTimeout = 5 * time.Second
	drainTimeout   = 10 * time.Second
)

// Publisher writes domain events as JSON to core NATS subjects.
type Publisher struct {
	conn    *nats.Conn
	closed  chan struct{}
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewPublisher(cfg config.NATS, log ports.Logger, metrics ports.MetricsProvider) (*Publisher, error) {
	closed := make(chan struct{})
	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.Timeout(connectTimeout),
		nats.DrainTimeout(drainTimeout),
		nats.MaxReconnects(-1),
		nats.ClosedHandler(func(_ *nats.Conn) {
			close(closed)
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		log.Error("Failed to connect to NATS", slog.String("url", cfg.URL), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info("Successfully connected to NATS", slog.String("url", conn.ConnectedUrl()))
	return &Publisher{conn: conn, closed: closed, log: log, metrics: metrics}, nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		p.metrics.IncrementEventsPublished(subject, false)
		p.log.Error("Failed to marshal event", slog.String("subject", subject), slog.String("error", err.Error()))
		return fmt.Errorf("failed to marshal event for %s: %w", subject, err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.metrics.IncrementEventsPublished(subject, false)
		p.log.Error("Failed to publish event",
			slog.String("subject", subject),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", custom_errors.ErrPublishFailed, err)
	}

	p.metrics.IncrementEventsPublished(subject, true)
	p.log.Debug("Event published", slog.String("subject", subject), slog.Int("bytes", len(data)))
	return nil
}

// Close flushes pending messages and returns once the connection is closed.
func (p *Publisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.log.Error("Failed to drain NATS connection", slog.String("error", err.Error()))
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}

	select {
	case <-p.closed:
	case <-time.After(drainTimeout + time.Second):
		return fmt.Errorf("NATS connection still open after %s", drainTimeout)
	}

	p.log.Info("NATS connection closed")
	return nil
}

// NoopPublisher is used when NATS is disabled.
type NoopPublisher struct {
	log ports.Logger
}

func NewNoopPublisher(log ports.Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

func (n *NoopPublisher) Publish(ctx context.Context, subject string, event any) error {
	n.log.Debug("Event publishing disabled", slog.String("subject", subject))
	return nil
}
