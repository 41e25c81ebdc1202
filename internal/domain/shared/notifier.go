package shared

import "context"

// Severity classifies a notification for the human operator.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notifier is the outbound port for reporting operation outcomes to a human.
// Implementations are best-effort: the engine fires and forgets, never blocks
// on delivery, and never fails an operation because a notification failed.
type Notifier interface {
	Notify(ctx context.Context, severity Severity, message string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(context.Context, Severity, string) {}
