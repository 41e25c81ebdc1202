package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// EDIT STUDENT COMMAND
// Updates a student's name, phone and group. When the group changes the
// student moves rosters in the same mutation. Ledgers are untouched.
// ══════════════════════════════════════════════════════════════════════════════

// EditStudentCommand contains the data to edit a student.
type EditStudentCommand struct {
	// StudentID identifies the student.
	StudentID int

	// NewName replaces the display name.
	NewName string

	// NewPhone replaces the contact number.
	NewPhone string

	// NewGroup references the (possibly unchanged) group.
	NewGroup string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c EditStudentCommand) Validate() error {
	if c.StudentID == 0 {
		return errors.New("edit_student: student id is required")
	}
	if c.NewName == "" {
		return errors.New("edit_student: name is required")
	}
	if c.NewGroup == "" {
		return errors.New("edit_student: group name is required")
	}
	return nil
}

// EditStudentResult contains the result of editing a student.
type EditStudentResult struct {
	// GroupChanged indicates the student moved to a different group.
	GroupChanged bool
}

// EditStudentHandler handles the EditStudentCommand.
type EditStudentHandler struct {
	dir      *roster.Directory
	store    roster.Store
	notifier shared.Notifier
	events   shared.EventPublisher
}

// NewEditStudentHandler creates a new EditStudentHandler.
func NewEditStudentHandler(dir *roster.Directory, store roster.Store, notifier shared.Notifier, events shared.EventPublisher) *EditStudentHandler {
	return &EditStudentHandler{dir: dir, store: store, notifier: notifier, events: events}
}

// Handle executes the edit student command.
func (h *EditStudentHandler) Handle(ctx context.Context, cmd EditStudentCommand) (*EditStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, err.Error())
		return nil, shared.WrapError("roster", "EditStudent", shared.ErrValidation, "invalid command", err)
	}

	snap := h.dir.Snapshot()
	groupChanged, err := h.dir.EditStudent(cmd.StudentID, cmd.NewName, cmd.NewPhone, cmd.NewGroup)
	if err != nil {
		if errors.Is(err, shared.ErrGroupNotFound) {
			notify(ctx, h.notifier, shared.SeverityError, fmt.Sprintf("group not found: %s", cmd.NewGroup))
		} else {
			notify(ctx, h.notifier, shared.SeverityError, fmt.Sprintf("student not found: %d", cmd.StudentID))
		}
		return nil, err
	}

	if err := persistOrRollback(ctx, h.dir, h.store, snap, "EditStudent"); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, "failed to save the student changes")
		return nil, err
	}

	event := shared.NewStudentUpdatedEvent(cmd.StudentID, cmd.NewName, cmd.NewGroup, groupChanged)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	publish(h.events, event)
	notify(ctx, h.notifier, shared.SeveritySuccess, fmt.Sprintf("student updated: %s", cmd.NewName))

	return &EditStudentResult{GroupChanged: groupChanged}, nil
}
