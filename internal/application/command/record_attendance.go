package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD ATTENDANCE COMMAND
// Marks a student present for a calendar date. The record is accepted only
// when the date's weekday is one of the student's group days, and only once
// per date. A second attempt on the same date reports Duplicate rather than
// silently succeeding, so a scanner can tell "already checked in" apart
// from "checked in now".
// ══════════════════════════════════════════════════════════════════════════════

// RecordAttendanceCommand contains the data to record a presence.
type RecordAttendanceCommand struct {
	// StudentID identifies the student (typically decoded from a scan).
	StudentID int

	// Date is the calendar date to record (zero value = today).
	Date time.Time

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c RecordAttendanceCommand) Validate() error {
	if c.StudentID == 0 {
		return errors.New("record_attendance: student id is required")
	}
	return nil
}

// RecordAttendanceResult contains the result of recording a presence.
type RecordAttendanceResult struct {
	// StudentID is the student the record belongs to.
	StudentID int

	// Date is the recorded ISO date.
	Date string

	// DayLabel is the weekday label of the recorded date.
	DayLabel string
}

// RecordAttendanceHandler handles the RecordAttendanceCommand.
type RecordAttendanceHandler struct {
	dir      *roster.Directory
	store    roster.Store
	notifier shared.Notifier
	events   shared.EventPublisher
}

// NewRecordAttendanceHandler creates a new RecordAttendanceHandler.
func NewRecordAttendanceHandler(dir *roster.Directory, store roster.Store, notifier shared.Notifier, events shared.EventPublisher) *RecordAttendanceHandler {
	return &RecordAttendanceHandler{dir: dir, store: store, notifier: notifier, events: events}
}

// Handle executes the record attendance command.
func (h *RecordAttendanceHandler) Handle(ctx context.Context, cmd RecordAttendanceCommand) (*RecordAttendanceResult, error) {
	if err := cmd.Validate(); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, err.Error())
		return nil, shared.WrapError("attendance", "Record", shared.ErrValidation, "invalid command", err)
	}

	day := cmd.Date
	if day.IsZero() {
		day = timeutil.Today()
	}
	date := timeutil.FormatDateStr(day)
	label := timeutil.WeekdayLabel(day)

	s, ok := h.dir.Student(cmd.StudentID)
	if !ok {
		notify(ctx, h.notifier, shared.SeverityError, fmt.Sprintf("student not found: %d", cmd.StudentID))
		return nil, shared.ErrStudentNotFound
	}

	g, ok := h.dir.Group(s.Group)
	if !ok {
		// The student's group reference dangles; treat like the group lookup
		// failing in any other operation.
		notify(ctx, h.notifier, shared.SeverityError, fmt.Sprintf("group not found: %s", s.Group))
		return nil, shared.ErrDanglingGroupRef
	}

	if !g.Schedule.Meets(label) {
		notify(ctx, h.notifier, shared.SeverityError, fmt.Sprintf("today (%s) is not one of the group days", label))
		return nil, shared.ErrNotScheduledDay
	}

	snap := h.dir.Snapshot()
	if err := s.MarkPresent(date); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, "attendance already recorded for this student today")
		return nil, err
	}

	if err := persistOrRollback(ctx, h.dir, h.store, snap, "RecordAttendance"); err != nil {
		notify(ctx, h.notifier, shared.SeverityError, "failed to save the attendance record")
		return nil, err
	}

	event := shared.NewAttendanceRecordedEvent(s.ID, s.Name, date, label)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	publish(h.events, event)
	notify(ctx, h.notifier, shared.SeveritySuccess, fmt.Sprintf("attendance recorded for %s on %s", s.Name, date))

	return &RecordAttendanceResult{
		StudentID: s.ID,
		Date:      date,
		DayLabel:  label,
	}, nil
}
