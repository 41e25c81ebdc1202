package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hadir-app/hadir/internal/domain/group"
	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD GROUP COMMAND
// Creates a new group with a weekly schedule. The group name is the primary
// key of the whole system: students reference their group by it.
// ══════════════════════════════════════════════════════════════════════════════

// AddGroupCommand contains the data to create a group.
type AddGroupCommand struct {
	// Name uniquely identifies the group.
	Name string

	// TimeSlot is a free-text display string, never parsed.
	TimeSlot string

	// Days are weekday labels from the fixed 7-symbol domain.
	Days []string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c AddGroupCommand) Validate() error {
	if c.Name == "" {
		return errors.New("add_group: name is required")
	}
	if len(c.Days) == 0 {
		return errors.New("add_group: at least one meeting day is required")
	}
	for _, d := range c.Days {
		if !timeutil.IsWeekdayLabel(d) {
			return fmt.Errorf("add_group: unknown weekday label: %q", d)
		}
	}
	return nil
}

// AddGroupResult contains the result of creating a group.
type AddGroupResult struct {
	// Group is the created group.
	Group *group.Group

	// CreatedAt is when the group was created.
	CreatedAt time.Time
}

// AddGroupHandler handles the AddGroupCommand.
type AddGroupHandler struct {
	dir      *roster.Directory
	store    roster.Store
	notifier shared.Notifier
	events   shared.EventPublisher
}

// NewAddGroupHandler creates a new AddGroupHandler.
func NewAddGroupHandler(dir *roster.Directory, store roster.Store, notifier shared.Notifier, events shared.EventPublisher) *AddGroupHandler {
	return &AddGroupHandler{dir: dir, store: store, notifier: notifier, events: events}
}

// Handle executes the add group command.
func (h *AddGroupHandler) Handle(ctx context.Context, cmd AddGroupCommand) (*AddGroupResult, error) {
	if err := cmd.Validate(); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, err.Error())
		return nil, shared.WrapError("roster", "AddGroup", shared.ErrValidation, "invalid command", err)
	}

	g, err := group.New(cmd.Name, cmd.TimeSlot, cmd.Days)
	if err != nil {
		notify(ctx, h.notifier, shared.SeverityError, err.Error())
		return nil, shared.WrapError("roster", "AddGroup", shared.ErrValidation, "invalid group", err)
	}

	snap := h.dir.Snapshot()
	if err := h.dir.AddGroup(g); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, fmt.Sprintf("group already exists: %s", cmd.Name))
		return nil, err
	}

	if err := persistOrRollback(ctx, h.dir, h.store, snap, "AddGroup"); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, "failed to save the new group")
		return nil, err
	}

	event := shared.NewGroupCreatedEvent(g.Name, g.TimeSlot, g.Schedule.Days())
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	publish(h.events, event)
	notify(ctx, h.notifier, shared.SeveritySuccess, fmt.Sprintf("group added: %s", g.Name))

	return &AddGroupResult{Group: g, CreatedAt: time.Now()}, nil
}
