package messaging

import (
	"context"
	"log/slog"

	"github.com/bibbank/guestrisk/pkg/events"
)

// LogPublisher implements port.EventPublisher by logging events. It is used
// when no Kafka brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogPublisher creates a publisher that writes each event at the given level.
func NewLogPublisher(logger *slog.Logger, level slog.Level) *LogPublisher {
	return &LogPublisher{logger: logger, level: level}
}

// Publish logs every event. It never fails.
func (p *LogPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	for _, evt := range domainEvents {
		p.logger.Log(ctx, p.level, "domain event",
			slog.String("event_type", evt.EventType()),
			slog.String("event_id", evt.EventID().String()),
			slog.String("aggregate_id", evt.AggregateID().String()),
			slog.String("tenant_id", evt.TenantID()),
			slog.String("payload", string(evt.Payload())),
		)
	}
	return nil
}
