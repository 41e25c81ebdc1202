package query

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER EXPORT QUERY
// Flat listing of every student: id, name, group, phone, lifetime attendance
// count, and the stars of the most recent evaluation. "Most recent" is the
// lexicographic maximum of the evaluation dates, which is the latest
// calendar day because dates are ISO YYYY-MM-DD strings.
// ══════════════════════════════════════════════════════════════════════════════

// RosterExportRow is one student in the roster listing.
type RosterExportRow struct {
	StudentID      int
	Name           string
	Group          string
	Phone          string
	AttendanceDays int

	// LastStars is the most recent evaluation's stars, or 0 with
	// HasEvaluation false when the student was never evaluated.
	LastStars     int
	HasEvaluation bool
}

// RosterExport is the full listing shaped as an exporter table.
type RosterExport struct {
	Rows  []RosterExportRow
	Table Table

	// FilePath is where the exporter wrote the listing ("" when no
	// exporter was configured).
	FilePath string
}

// RosterExportHandler produces the roster listing.
type RosterExportHandler struct {
	dir        *roster.Directory
	exporter   Exporter
	reportsDir string
}

// NewRosterExportHandler creates a new RosterExportHandler.
func NewRosterExportHandler(dir *roster.Directory, exporter Exporter, reportsDir string) *RosterExportHandler {
	return &RosterExportHandler{dir: dir, exporter: exporter, reportsDir: reportsDir}
}

// Handle executes the roster export.
func (h *RosterExportHandler) Handle(ctx context.Context) (*RosterExport, error) {
	export := &RosterExport{
		Table: Table{
			Sheet: "قائمة الطلاب",
			Headers: []string{
				"الطالب", "ID", "المجموعة", "رقم الهاتف", "عدد أيام الحضور", "آخر تقييم",
			},
		},
	}

	for _, s := range h.dir.Students() {
		row := RosterExportRow{
			StudentID:      s.ID,
			Name:           s.Name,
			Group:          s.Group,
			Phone:          s.Phone,
			AttendanceDays: len(s.Attendance),
		}
		lastStars := NoEvaluation
		if _, ev, ok := s.LastEvaluation(); ok {
			row.LastStars = ev.Stars
			row.HasEvaluation = true
			lastStars = strconv.Itoa(ev.Stars)
		}
		export.Rows = append(export.Rows, row)
		export.Table.Rows = append(export.Table.Rows, TableRow{
			Cells: []string{
				s.Name,
				strconv.Itoa(s.ID),
				s.Group,
				s.Phone,
				strconv.Itoa(len(s.Attendance)),
				lastStars,
			},
		})
	}

	if h.exporter != nil {
		path := filepath.Join(h.reportsDir, "students_list.xlsx")
		if err := h.exporter.Write(ctx, export.Table, path); err != nil {
			return nil, shared.WrapError("report", "RosterExport", shared.ErrPersistence, "failed to write roster file", err)
		}
		export.FilePath = path
	}

	return export, nil
}
