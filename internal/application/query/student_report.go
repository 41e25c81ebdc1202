package query

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPORT QUERY
// Walks every calendar date in [start, end], keeps the dates falling on the
// group's scheduled weekdays, and emits one row per kept date with the
// student's presence and that day's evaluation. Absence is implicit: a
// scheduled date missing from the attendance ledger is an absent row.
// ══════════════════════════════════════════════════════════════════════════════

// StudentReportQuery contains the parameters of a per-student report.
type StudentReportQuery struct {
	// StudentID identifies the student.
	StudentID int

	// StartDate is the inclusive range start (YYYY-MM-DD).
	StartDate string

	// EndDate is the inclusive range end (YYYY-MM-DD). A start after the
	// end is not an error: the walk simply covers no dates and the report
	// comes out empty.
	EndDate string
}

// Validate validates the query.
func (q StudentReportQuery) Validate() error {
	if q.StudentID == 0 {
		return errors.New("student_report: student id is required")
	}
	return nil
}

// StudentReportSummary holds the derived statistics of a student report.
type StudentReportSummary struct {
	// TotalScheduledDays is how many dates in range fell on group days.
	TotalScheduledDays int

	// PresentDays is how many of those the student attended.
	PresentDays int

	// AbsentDays = TotalScheduledDays - PresentDays.
	AbsentDays int

	// AttendancePercentage is PresentDays/TotalScheduledDays*100
	// (0 when there were no scheduled days at all).
	AttendancePercentage float64

	// AbsencePercentage is the complement (0 when no scheduled days).
	AbsencePercentage float64
}

// StudentReport is the full result: one row per scheduled date plus the
// summary, already shaped as an exporter table.
type StudentReport struct {
	StudentID   int
	StudentName string
	GroupName   string
	Summary     StudentReportSummary
	Table       Table

	// FilePath is where the exporter wrote the report ("" when no exporter
	// was configured).
	FilePath string
}

// StudentReportHandler handles the StudentReportQuery.
type StudentReportHandler struct {
	dir        *roster.Directory
	exporter   Exporter
	reportsDir string
}

// NewStudentReportHandler creates a new StudentReportHandler. A nil exporter
// produces the in-memory report without writing a file.
func NewStudentReportHandler(dir *roster.Directory, exporter Exporter, reportsDir string) *StudentReportHandler {
	return &StudentReportHandler{dir: dir, exporter: exporter, reportsDir: reportsDir}
}

// Handle executes the student report query.
func (h *StudentReportHandler) Handle(ctx context.Context, q StudentReportQuery) (*StudentReport, error) {
	if err := q.Validate(); err != nil {
		return nil, shared.WrapError("report", "StudentReport", shared.ErrValidation, "invalid query", err)
	}

	s, ok := h.dir.Student(q.StudentID)
	if !ok {
		return nil, shared.ErrStudentNotFound
	}
	g, ok := h.dir.Group(s.Group)
	if !ok {
		return nil, shared.ErrGroupNotFound
	}

	start, err := timeutil.ParseDate(q.StartDate)
	if err != nil {
		return nil, shared.ErrBadDateFormat
	}
	end, err := timeutil.ParseDate(q.EndDate)
	if err != nil {
		return nil, shared.ErrBadDateFormat
	}

	report := &StudentReport{
		StudentID:   s.ID,
		StudentName: s.Name,
		GroupName:   s.Group,
		Table: Table{
			Sheet:   "تقرير الحضور",
			Headers: []string{"التاريخ", "اليوم", "الحضور", "التقييم", "الملاحظات"},
		},
	}

	// Walk forward regardless of order; start > end yields zero rows.
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		label := timeutil.WeekdayLabel(day)
		if !g.Schedule.Meets(label) {
			continue
		}
		date := timeutil.FormatDateStr(day)
		report.Summary.TotalScheduledDays++

		row := TableRow{Tone: ToneBad}
		presence := PresenceAbsent
		stars := NoEvaluation
		notes := NoNotes

		if s.HasAttended(date) {
			report.Summary.PresentDays++
			row.Tone = ToneGood
			presence = PresencePresent
			if ev, has := s.EvaluationOn(date); has {
				stars = strconv.Itoa(ev.Stars)
				notes = ev.Notes
			}
		}

		row.Cells = []string{date, label, presence, stars, notes}
		report.Table.Rows = append(report.Table.Rows, row)
	}

	total := report.Summary.TotalScheduledDays
	present := report.Summary.PresentDays
	report.Summary.AbsentDays = total - present
	if total > 0 {
		report.Summary.AttendancePercentage = float64(present) / float64(total) * 100
		report.Summary.AbsencePercentage = 100 - report.Summary.AttendancePercentage
	}

	report.Table.Summary = []string{
		fmt.Sprintf("تقرير الحضور للطالب %s (ID: %d)", s.Name, s.ID),
		fmt.Sprintf("نسبة الحضور: %.2f%%", report.Summary.AttendancePercentage),
		fmt.Sprintf("نسبة الغياب: %.2f%%", report.Summary.AbsencePercentage),
		fmt.Sprintf("حضر: %d مرة", present),
		fmt.Sprintf("غاب: %d مرة", report.Summary.AbsentDays),
	}

	if h.exporter != nil {
		path := filepath.Join(h.reportsDir, fmt.Sprintf("%s_report.xlsx", s.Name))
		if err := h.exporter.Write(ctx, report.Table, path); err != nil {
			return nil, shared.WrapError("report", "StudentReport", shared.ErrPersistence, "failed to write report file", err)
		}
		report.FilePath = path
	}

	return report, nil
}
