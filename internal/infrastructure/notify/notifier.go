// Package notify implements the user-facing notification port. The default
// sink is the structured log; the event subscriber additionally turns domain
// events into notifications so side observers (a bot, a desktop tray, a
// future webhook) get the same feed without touching the command handlers.
package notify

import (
	"context"

	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/pkg/logger"
)

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	log *logger.Logger
}

var _ shared.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(logger.Component("notify"))}
}

// Notify implements shared.Notifier.
func (n *LogNotifier) Notify(_ context.Context, severity shared.Severity, message string) {
	field := logger.String("severity", string(severity))
	switch severity {
	case shared.SeverityError:
		n.log.Error(message, field)
	case shared.SeverityWarning:
		n.log.Warn(message, field)
	default:
		n.log.Info(message, field)
	}
}
