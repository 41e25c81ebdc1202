package notify

import (
	"fmt"

	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/pkg/logger"
)

// EventLogger subscribes to the event bus and logs an audit line per domain
// event. Commands already notify their own outcomes; this feed is the
// machine-readable trail for everything that changed state.
type EventLogger struct {
	log *logger.Logger
}

// NewEventLogger creates the audit subscriber.
func NewEventLogger(log *logger.Logger) *EventLogger {
	return &EventLogger{log: log.With(logger.Component("audit"))}
}

// Register attaches the subscriber to the bus.
func (s *EventLogger) Register(bus shared.EventSubscriber) error {
	return bus.SubscribeAll(s.handle)
}

func (s *EventLogger) handle(event shared.Event) error {
	s.log.Info(fmt.Sprintf("event %s", event.EventType()),
		logger.String("aggregate_id", event.AggregateID()),
		logger.Any("payload", event.Payload()),
	)
	return nil
}
