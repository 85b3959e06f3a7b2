// Package eventlog publishes domain events to the structured log when no broker is configured.
package eventlog

import (
	"context"
	"log/slog"

	"github.com/hsbu/gopay-api-demo/internal/domain/event"
)

type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, e event.Event) error {
	p.logger.InfoContext(ctx, "domain event",
		"event_id", e.ID.String(),
		"type", string(e.Type),
		"user_id", e.UserID,
		"occurred_at", e.OccurredAt,
		"payload", e.Payload,
	)
	return nil
}
