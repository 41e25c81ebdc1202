package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/internal/domain/student"
	"github.com/hadir-app/hadir/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// EVALUATE STUDENT COMMAND
// Upserts the star rating (1-3) and notes for a student on a calendar date.
// Last write wins per day: re-evaluating overwrites the earlier entry.
// ══════════════════════════════════════════════════════════════════════════════

// EvaluateStudentCommand contains the data to rate a student.
type EvaluateStudentCommand struct {
	// StudentID identifies the student.
	StudentID int

	// Stars is the rating, between 1 and 3 inclusive.
	Stars int

	// Notes is free text attached to the rating.
	Notes string

	// Date is the calendar date being rated (zero value = today).
	Date time.Time

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c EvaluateStudentCommand) Validate() error {
	if c.StudentID == 0 {
		return errors.New("evaluate_student: student id is required")
	}
	return nil
}

// EvaluateStudentResult contains the result of rating a student.
type EvaluateStudentResult struct {
	// Date is the ISO date the rating was stored under.
	Date string

	// Replaced indicates an earlier same-day rating was overwritten.
	Replaced bool
}

// EvaluateStudentHandler handles the EvaluateStudentCommand.
type EvaluateStudentHandler struct {
	dir      *roster.Directory
	store    roster.Store
	notifier shared.Notifier
	events   shared.EventPublisher
}

// NewEvaluateStudentHandler creates a new EvaluateStudentHandler.
func NewEvaluateStudentHandler(dir *roster.Directory, store roster.Store, notifier shared.Notifier, events shared.EventPublisher) *EvaluateStudentHandler {
	return &EvaluateStudentHandler{dir: dir, store: store, notifier: notifier, events: events}
}

// Handle executes the evaluate student command.
func (h *EvaluateStudentHandler) Handle(ctx context.Context, cmd EvaluateStudentCommand) (*EvaluateStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, err.Error())
		return nil, shared.WrapError("evaluation", "Evaluate", shared.ErrValidation, "invalid command", err)
	}

	s, ok := h.dir.Student(cmd.StudentID)
	if !ok {
		notify(ctx, h.notifier, shared.SeverityError, fmt.Sprintf("student not found: %d", cmd.StudentID))
		return nil, shared.ErrStudentNotFound
	}

	if cmd.Stars < student.MinStars || cmd.Stars > student.MaxStars {
		notify(ctx, h.notifier, shared.SeverityError,
			fmt.Sprintf("stars must be between %d and %d", student.MinStars, student.MaxStars))
		return nil, shared.ErrStarsOutOfRange
	}

	day := cmd.Date
	if day.IsZero() {
		day = timeutil.Today()
	}
	date := timeutil.FormatDateStr(day)
	_, replaced := s.EvaluationOn(date)

	snap := h.dir.Snapshot()
	if err := s.Evaluate(date, cmd.Stars, cmd.Notes); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, err.Error())
		return nil, err
	}

	if err := persistOrRollback(ctx, h.dir, h.store, snap, "EvaluateStudent"); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, "failed to save the evaluation")
		return nil, err
	}

	event := shared.NewStudentEvaluatedEvent(s.ID, s.Name, date, cmd.Stars)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	publish(h.events, event)
	notify(ctx, h.notifier, shared.SeveritySuccess, fmt.Sprintf("student evaluated: %s (%d stars)", s.Name, cmd.Stars))

	return &EvaluateStudentResult{Date: date, Replaced: replaced}, nil
}
