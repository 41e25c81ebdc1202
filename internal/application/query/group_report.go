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
// GROUP REPORT QUERY
// One row per current member of the group, with attendance counts and
// percentages over the date range and the student's lifetime average rating.
//
// Two quirks are kept from the system this replaces, on purpose:
//   - "total possible days" is len(scheduleDays) * (weeks in range), an
//     approximation rather than an exact count of matching weekdays;
//   - the attended dates are filtered only by the range, not by schedule
//     membership, so an off-schedule record still counts here.
// Reports produced by both systems stay comparable this way.
// ══════════════════════════════════════════════════════════════════════════════

// GroupReportQuery contains the parameters of a per-group report.
type GroupReportQuery struct {
	// GroupName identifies the group.
	GroupName string

	// StartDate is the inclusive range start (YYYY-MM-DD).
	StartDate string

	// EndDate is the inclusive range end (YYYY-MM-DD).
	EndDate string
}

// Validate validates the query.
func (q GroupReportQuery) Validate() error {
	if q.GroupName == "" {
		return errors.New("group_report: group name is required")
	}
	return nil
}

// GroupReportRow holds one student's statistics within the group report.
type GroupReportRow struct {
	StudentName          string
	PresentDays          int
	AbsentDays           int
	TotalPossibleDays    int
	AttendancePercentage float64
	AbsencePercentage    float64
	AverageEvaluation    float64
}

// GroupReport is the full result with rows shaped as an exporter table.
type GroupReport struct {
	GroupName string
	StartDate string
	EndDate   string
	Rows      []GroupReportRow
	Table     Table

	// FilePath is where the exporter wrote the report ("" when no exporter
	// was configured).
	FilePath string
}

// GroupReportHandler handles the GroupReportQuery.
type GroupReportHandler struct {
	dir        *roster.Directory
	exporter   Exporter
	reportsDir string
}

// NewGroupReportHandler creates a new GroupReportHandler.
func NewGroupReportHandler(dir *roster.Directory, exporter Exporter, reportsDir string) *GroupReportHandler {
	return &GroupReportHandler{dir: dir, exporter: exporter, reportsDir: reportsDir}
}

// Handle executes the group report query.
func (h *GroupReportHandler) Handle(ctx context.Context, q GroupReportQuery) (*GroupReport, error) {
	if err := q.Validate(); err != nil {
		return nil, shared.WrapError("report", "GroupReport", shared.ErrValidation, "invalid query", err)
	}

	g, ok := h.dir.Group(q.GroupName)
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

	weeks := timeutil.DaysBetween(start, end)/7 + 1
	totalPossible := g.Schedule.Len() * weeks

	report := &GroupReport{
		GroupName: g.Name,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Table: Table{
			Sheet: "تقرير المجموعة",
			Headers: []string{
				"الطالب", "الحضور (%)", "الغياب (%)", "الحضور (عدد)", "الغياب (عدد)", "متوسط التقييم",
			},
		},
	}

	for _, s := range h.dir.StudentsInGroup(g.Name) {
		present := len(s.AttendanceBetween(q.StartDate, q.EndDate))

		row := GroupReportRow{
			StudentName:       s.Name,
			PresentDays:       present,
			TotalPossibleDays: totalPossible,
			AbsentDays:        totalPossible - present,
			AverageEvaluation: s.AverageStars(),
		}
		if totalPossible > 0 {
			row.AttendancePercentage = float64(present) / float64(totalPossible) * 100
			row.AbsencePercentage = 100 - row.AttendancePercentage
		}
		report.Rows = append(report.Rows, row)

		tone := ToneBad
		if row.AttendancePercentage >= 50 {
			tone = ToneGood
		}
		report.Table.Rows = append(report.Table.Rows, TableRow{
			Tone: tone,
			Cells: []string{
				s.Name,
				fmt.Sprintf("%.2f%%", row.AttendancePercentage),
				fmt.Sprintf("%.2f%%", row.AbsencePercentage),
				strconv.Itoa(row.PresentDays),
				strconv.Itoa(row.AbsentDays),
				fmt.Sprintf("%.1f", row.AverageEvaluation),
			},
		})
	}

	report.Table.Summary = []string{
		fmt.Sprintf("تقرير المجموعة %s", g.Name),
		fmt.Sprintf("من %s إلى %s", q.StartDate, q.EndDate),
	}

	if h.exporter != nil {
		path := filepath.Join(h.reportsDir, fmt.Sprintf("%s_group_report.xlsx", g.Name))
		if err := h.exporter.Write(ctx, report.Table, path); err != nil {
			return nil, shared.WrapError("report", "GroupReport", shared.ErrPersistence, "failed to write report file", err)
		}
		report.FilePath = path
	}

	return report, nil
}
