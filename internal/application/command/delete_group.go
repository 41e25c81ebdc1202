package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE GROUP COMMAND
// Removes a group and every student enrolled in it. The cascade is
// unconditional: asking the operator "are you sure" is a UI concern and
// never lives here.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteGroupCommand contains the data to delete a group.
type DeleteGroupCommand struct {
	// Name identifies the group to delete.
	Name string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c DeleteGroupCommand) Validate() error {
	if c.Name == "" {
		return errors.New("delete_group: name is required")
	}
	return nil
}

// DeleteGroupResult contains the result of deleting a group.
type DeleteGroupResult struct {
	// StudentsRemoved is how many students were removed by the cascade.
	StudentsRemoved int
}

// DeleteGroupHandler handles the DeleteGroupCommand.
type DeleteGroupHandler struct {
	dir      *roster.Directory
	store    roster.Store
	notifier shared.Notifier
	events   shared.EventPublisher
}

// NewDeleteGroupHandler creates a new DeleteGroupHandler.
func NewDeleteGroupHandler(dir *roster.Directory, store roster.Store, notifier shared.Notifier, events shared.EventPublisher) *DeleteGroupHandler {
	return &DeleteGroupHandler{dir: dir, store: store, notifier: notifier, events: events}
}

// Handle executes the delete group command.
func (h *DeleteGroupHandler) Handle(ctx context.Context, cmd DeleteGroupCommand) (*DeleteGroupResult, error) {
	if err := cmd.Validate(); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, err.Error())
		return nil, shared.WrapError("roster", "DeleteGroup", shared.ErrValidation, "invalid command", err)
	}

	snap := h.dir.Snapshot()
	removed, err := h.dir.DeleteGroup(cmd.Name)
	if err != nil {
		notify(ctx, h.notifier, shared.SeverityError, fmt.Sprintf("group not found: %s", cmd.Name))
		return nil, err
	}

	if err := persistOrRollback(ctx, h.dir, h.store, snap, "DeleteGroup"); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, "failed to save the group deletion")
		return nil, err
	}

	event := shared.NewGroupDeletedEvent(cmd.Name, len(removed))
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	publish(h.events, event)
	notify(ctx, h.notifier, shared.SeveritySuccess, fmt.Sprintf("group deleted: %s (%d students removed)", cmd.Name, len(removed)))

	return &DeleteGroupResult{StudentsRemoved: len(removed)}, nil
}
