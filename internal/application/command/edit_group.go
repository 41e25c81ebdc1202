package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// EDIT GROUP COMMAND
// Renames and reconfigures a group. A rename cascades to every member
// student inside the same mutation, so the rename is observably atomic:
// there is no moment where a student still points at the old name while the
// group record is gone.
// ══════════════════════════════════════════════════════════════════════════════

// EditGroupCommand contains the data to edit a group.
type EditGroupCommand struct {
	// OldName identifies the group being edited.
	OldName string

	// NewName is the (possibly unchanged) group name.
	NewName string

	// NewTimeSlot replaces the free-text time display string.
	NewTimeSlot string

	// NewDays replaces the weekly schedule.
	NewDays []string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c EditGroupCommand) Validate() error {
	if c.OldName == "" {
		return errors.New("edit_group: old name is required")
	}
	if c.NewName == "" {
		return errors.New("edit_group: new name is required")
	}
	if len(c.NewDays) == 0 {
		return errors.New("edit_group: at least one meeting day is required")
	}
	for _, d := range c.NewDays {
		if !timeutil.IsWeekdayLabel(d) {
			return fmt.Errorf("edit_group: unknown weekday label: %q", d)
		}
	}
	return nil
}

// EditGroupResult contains the result of editing a group.
type EditGroupResult struct {
	// Renamed indicates whether the group name changed.
	Renamed bool

	// MembersUpdated is how many students were re-pointed to the new name.
	MembersUpdated int
}

// EditGroupHandler handles the EditGroupCommand.
type EditGroupHandler struct {
	dir      *roster.Directory
	store    roster.Store
	notifier shared.Notifier
	events   shared.EventPublisher
}

// NewEditGroupHandler creates a new EditGroupHandler.
func NewEditGroupHandler(dir *roster.Directory, store roster.Store, notifier shared.Notifier, events shared.EventPublisher) *EditGroupHandler {
	return &EditGroupHandler{dir: dir, store: store, notifier: notifier, events: events}
}

// Handle executes the edit group command.
func (h *EditGroupHandler) Handle(ctx context.Context, cmd EditGroupCommand) (*EditGroupResult, error) {
	if err := cmd.Validate(); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, err.Error())
		return nil, shared.WrapError("roster", "EditGroup", shared.ErrValidation, "invalid command", err)
	}

	snap := h.dir.Snapshot()
	members, err := h.dir.EditGroup(cmd.OldName, cmd.NewName, cmd.NewTimeSlot, cmd.NewDays)
	if err != nil {
		switch {
		case shared.IsNotFound(err):
			notify(ctx, h.notifier, shared.SeverityError, fmt.Sprintf("group not found: %s", cmd.OldName))
		case shared.IsConflict(err):
			notify(ctx, h.notifier, shared.SeverityError, fmt.Sprintf("group name already taken: %s", cmd.NewName))
		default:
			notify(ctx, h.notifier, shared.SeverityError, err.Error())
		}
		return nil, err
	}

	if err := persistOrRollback(ctx, h.dir, h.store, snap, "EditGroup"); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, "failed to save the group changes")
		return nil, err
	}

	event := shared.NewGroupUpdatedEvent(cmd.OldName, cmd.NewName, members)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	publish(h.events, event)
	notify(ctx, h.notifier, shared.SeveritySuccess, fmt.Sprintf("group updated: %s", cmd.NewName))

	return &EditGroupResult{
		Renamed:        cmd.OldName != cmd.NewName,
		MembersUpdated: members,
	}, nil
}
