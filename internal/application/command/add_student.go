package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadir-app/hadir/internal/domain/identity"
	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD STUDENT COMMAND
// Enrolls a new student: allocates a fresh 5-digit id, attaches the student
// to an existing group with empty ledgers, and asks the code encoder to
// render the id card artifact. Code generation is best-effort: the student
// is already persisted when it runs, and a render failure only produces a
// warning, exactly like the original system.
// ══════════════════════════════════════════════════════════════════════════════

// AddStudentCommand contains the data to enroll a student.
type AddStudentCommand struct {
	// Name is the student's display name.
	Name string

	// Phone is a free-text contact number.
	Phone string

	// GroupName references an existing group.
	GroupName string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c AddStudentCommand) Validate() error {
	if c.Name == "" {
		return errors.New("add_student: name is required")
	}
	if c.GroupName == "" {
		return errors.New("add_student: group name is required")
	}
	return nil
}

// AddStudentResult contains the result of enrolling a student.
type AddStudentResult struct {
	// Student is the created student with its allocated id.
	Student *student.Student

	// CodePath is where the id card artifact was written ("" if disabled
	// or the render failed).
	CodePath string
}

// AddStudentHandler handles the AddStudentCommand.
type AddStudentHandler struct {
	dir      *roster.Directory
	store    roster.Store
	registry *identity.Registry
	encoder  identity.CodeEncoder
	notifier shared.Notifier
	events   shared.EventPublisher
}

// NewAddStudentHandler creates a new AddStudentHandler.
func NewAddStudentHandler(
	dir *roster.Directory,
	store roster.Store,
	registry *identity.Registry,
	encoder identity.CodeEncoder,
	notifier shared.Notifier,
	events shared.EventPublisher,
) *AddStudentHandler {
	if encoder == nil {
		encoder = identity.NopEncoder{}
	}
	return &AddStudentHandler{
		dir:      dir,
		store:    store,
		registry: registry,
		encoder:  encoder,
		notifier: notifier,
		events:   events,
	}
}

// Handle executes the add student command.
func (h *AddStudentHandler) Handle(ctx context.Context, cmd AddStudentCommand) (*AddStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, err.Error())
		return nil, shared.WrapError("roster", "AddStudent", shared.ErrValidation, "invalid command", err)
	}

	if _, ok := h.dir.Group(cmd.GroupName); !ok {
		notify(ctx, h.notifier, shared.SeverityError, fmt.Sprintf("group not found: %s", cmd.GroupName))
		return nil, shared.ErrGroupNotFound
	}

	id, err := h.registry.Allocate()
	if err != nil {
		notify(ctx, h.notifier, shared.SeverityError, "no free student ids left")
		return nil, err
	}

	s, err := student.New(id, cmd.Name, cmd.Phone, cmd.GroupName)
	if err != nil {
		notify(ctx, h.notifier, shared.SeverityError, err.Error())
		return nil, shared.WrapError("roster", "AddStudent", shared.ErrValidation, "invalid student", err)
	}

	snap := h.dir.Snapshot()
	if err := h.dir.AddStudent(s); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, err.Error())
		return nil, err
	}

	if err := persistOrRollback(ctx, h.dir, h.store, snap, "AddStudent"); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, "failed to save the new student")
		return nil, err
	}

	codePath, codeErr := h.encoder.Encode(ctx, s.ID, s.Name)
	if codeErr != nil {
		notify(ctx, h.notifier, shared.SeverityWarning, fmt.Sprintf("could not render id code for %s: %v", s.Name, codeErr))
		codePath = ""
	}

	event := shared.NewStudentEnrolledEvent(s.ID, s.Name, s.Group, codePath)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	publish(h.events, event)
	notify(ctx, h.notifier, shared.SeveritySuccess, fmt.Sprintf("student added: %s (ID: %d)", s.Name, s.ID))

	return &AddStudentResult{Student: s, CodePath: codePath}, nil
}
