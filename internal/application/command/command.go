// Package command contains write operations (CQRS - Commands).
//
// Every handler follows the same transactional shape:
//
//	validate -> snapshot -> mutate directory -> SaveAll -> publish + notify
//
// When SaveAll fails the snapshot is restored, so the in-memory directory
// never diverges from storage past a failed call. Handlers are not safe for
// concurrent use; the application facade serializes all calls into them.
package command

import (
	"context"

	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/shared"
)

// persistOrRollback writes the full directory state through the store and
// restores the pre-mutation snapshot when the write fails.
func persistOrRollback(ctx context.Context, dir *roster.Directory, store roster.Store, snap *roster.Snapshot, op string) error {
	if err := store.SaveAll(ctx, dir.Groups(), dir.Students()); err != nil {
		dir.Restore(snap)
		return shared.WrapError("storage", op, shared.ErrPersistence, "failed to persist state", err)
	}
	return nil
}

// notify reports an outcome without ever failing the operation. A nil
// notifier is treated as "notifications disabled".
func notify(ctx context.Context, n shared.Notifier, severity shared.Severity, message string) {
	if n == nil {
		return
	}
	n.Notify(ctx, severity, message)
}

// publish sends a domain event, ignoring delivery errors: events drive
// best-effort notifications, never domain outcomes.
func publish(p shared.EventPublisher, event shared.Event) {
	if p == nil {
		return
	}
	_ = p.Publish(event)
}
