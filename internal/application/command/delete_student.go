package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE STUDENT COMMAND
// Removes a student from the directory and from its group's roster. The id
// is not recycled: the identity registry keeps it reserved until restart.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteStudentCommand contains the data to delete a student.
type DeleteStudentCommand struct {
	// StudentID identifies the student.
	StudentID int

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c DeleteStudentCommand) Validate() error {
	if c.StudentID == 0 {
		return errors.New("delete_student: student id is required")
	}
	return nil
}

// DeleteStudentResult contains the result of deleting a student.
type DeleteStudentResult struct {
	// Name is the removed student's name.
	Name string
}

// DeleteStudentHandler handles the DeleteStudentCommand.
type DeleteStudentHandler struct {
	dir      *roster.Directory
	store    roster.Store
	notifier shared.Notifier
	events   shared.EventPublisher
}

// NewDeleteStudentHandler creates a new DeleteStudentHandler.
func NewDeleteStudentHandler(dir *roster.Directory, store roster.Store, notifier shared.Notifier, events shared.EventPublisher) *DeleteStudentHandler {
	return &DeleteStudentHandler{dir: dir, store: store, notifier: notifier, events: events}
}

// Handle executes the delete student command.
func (h *DeleteStudentHandler) Handle(ctx context.Context, cmd DeleteStudentCommand) (*DeleteStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, err.Error())
		return nil, shared.WrapError("roster", "DeleteStudent", shared.ErrValidation, "invalid command", err)
	}

	snap := h.dir.Snapshot()
	s, err := h.dir.DeleteStudent(cmd.StudentID)
	if err != nil {
		notify(ctx, h.notifier, shared.SeverityError, fmt.Sprintf("student not found: %d", cmd.StudentID))
		return nil, err
	}

	if err := persistOrRollback(ctx, h.dir, h.store, snap, "DeleteStudent"); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, "failed to save the student deletion")
		return nil, err
	}

	event := shared.NewStudentRemovedEvent(s.ID, s.Name)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	publish(h.events, event)
	notify(ctx, h.notifier, shared.SeveritySuccess, fmt.Sprintf("student deleted: %s", s.Name))

	return &DeleteStudentResult{Name: s.Name}, nil
}
