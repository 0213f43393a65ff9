// Package events publishes idea lifecycle notifications. Delivery is best
// effort: callers log and count failures but never roll back on them.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"github.com/wso2/idea-management-api/internal/config"
	"github.com/wso2/idea-management-api/internal/models"
)

// Event kinds, appended to the configured subject prefix
const (
	KindSubmitted     = "submitted"
	KindStatusChanged = "status_changed"
)

// IdeaEvent is the JSON payload of a lifecycle notification
type IdeaEvent struct {
	Kind           string            `json:"-"`
	IdeaID         string            `json:"ideaId"`
	Status         models.IdeaStatus `json:"status"`
	PreviousStatus models.IdeaStatus `json:"previousStatus,omitempty"`
	Actor          string            `json:"actor"`
	OccurredAt     int64             `json:"occurredAt"`
}

// Publisher delivers lifecycle events
type Publisher interface {
	Publish(ctx context.Context, event IdeaEvent) error
	Close() error
}

// NoopPublisher discards every event
type NoopPublisher struct{}

// Publish does nothing
func (NoopPublisher) Publish(context.Context, IdeaEvent) error { return nil }

// Close does nothing
func (NoopPublisher) Close() error { return nil }

// conn is the subset of *nats.Conn used by the publisher
type conn interface {
	Publish(subject string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Drain() error
}

// NATSPublisher publishes events as core NATS messages
type NATSPublisher struct {
	nc      conn
	prefix  string
	timeout time.Duration
	logger  *logrus.Logger
}

// NewPublisher returns a NATS publisher when events are enabled and a no-op
// publisher otherwise
func NewPublisher(cfg *config.EventsConfig, logger *logrus.Logger) (Publisher, error) {
	if !cfg.Enabled {
		return NoopPublisher{}, nil
	}

	nc, err := nats.Connect(cfg.NATSURL,
		nats.Name("idea-management-api"),
		nats.Timeout(cfg.Timeout),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.WithError(err).Warn("Disconnected from NATS")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.WithField("url", c.ConnectedUrl()).Info("Reconnected to NATS")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.WithField("url", cfg.NATSURL).Info("Connected to NATS")
	return newNATSPublisher(nc, cfg.SubjectPrefix, cfg.Timeout, logger), nil
}

func newNATSPublisher(nc conn, prefix string, timeout time.Duration, logger *logrus.Logger) *NATSPublisher {
	return &NATSPublisher{nc: nc, prefix: prefix, timeout: timeout, logger: logger}
}

// Subject returns the subject an event is published on
func (p *NATSPublisher) Subject(kind string) string {
	return p.prefix + "." + kind
}

// Publish sends the event and waits for the server to acknowledge the flush
func (p *NATSPublisher) Publish(ctx context.Context, event IdeaEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := p.Subject(event.Kind)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	if err := p.nc.FlushTimeout(p.timeout); err != nil {
		return fmt.Errorf("failed to flush %s: %w", subject, err)
	}

	p.logger.WithFields(logrus.Fields{
		"subject": subject,
		"idea_id": event.IdeaID,
	}).Debug("Published idea event")
	return nil
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}
