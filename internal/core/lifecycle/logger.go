package lifecycle

import (
	"context"
	"log/slog"

	"github.com/aevon-lab/devicescout/internal/core/eventbus"
)

// EventLogger writes every SystemMessage to the structured log.
type EventLogger struct {
	sub *eventbus.Subscription[SystemEvent]
}

func NewEventLogger(bus *Bus, logger *slog.Logger) (*EventLogger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sub, err := eventbus.Subscribe[SystemMessage](bus, func(ctx context.Context, msg SystemMessage) {
		logger.InfoContext(ctx, "[Lifecycle] "+msg.Code, "service", msg.Service)
	})
	if err != nil {
		return nil, err
	}
	return &EventLogger{sub: sub}, nil
}

func (l *EventLogger) Close() {
	l.sub.Cancel()
}
