package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/atvirokodosprendimai/estacionamento/internal/core/domain"
)

// LogPublisher is the publisher used when no webhook is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, topic string, event domain.EventEnvelope) error {
	p.logger.Info("outbox publish",
		zap.String("topic", topic),
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
		zap.String("aggregate", event.AggregateType+"/"+event.AggregateID),
		zap.ByteString("payload", event.Payload),
	)
	return nil
}
