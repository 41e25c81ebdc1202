package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir/internal/domain/shared"
)

func TestGroupReportUsesWeekApproximation(t *testing.T) {
	dir := seedDirectory(t)
	h := NewGroupReportHandler(dir, nil, "")

	// 7 whole days between the bounds -> 2 "weeks"; 2 schedule days per
	// week -> 4 possible days, even though only 2 scheduled dates actually
	// fall in the range.
	report, err := h.Handle(context.Background(), GroupReportQuery{
		GroupName: "Alpha",
		StartDate: "2023-01-01",
		EndDate:   "2023-01-08",
	})
	require.NoError(t, err)

	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	assert.Equal(t, "Omar", row.StudentName)
	assert.Equal(t, 4, row.TotalPossibleDays)
	assert.Equal(t, 1, row.PresentDays)
	assert.Equal(t, 3, row.AbsentDays)
	assert.InDelta(t, 25.0, row.AttendancePercentage, 1e-9)
	assert.InDelta(t, 3.0, row.AverageEvaluation, 1e-9)
}

func TestGroupReportCountsOffScheduleAttendance(t *testing.T) {
	dir := seedDirectory(t)
	s, _ := dir.Student(11111)
	// A Friday record; off schedule but inside the range still counts.
	require.NoError(t, s.MarkPresent("2023-01-06"))

	h := NewGroupReportHandler(dir, nil, "")
	report, err := h.Handle(context.Background(), GroupReportQuery{
		GroupName: "Alpha",
		StartDate: "2023-01-01",
		EndDate:   "2023-01-08",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Rows[0].PresentDays)
}

func TestGroupReportToneSplitsAtFiftyPercent(t *testing.T) {
	dir := seedDirectory(t)
	h := NewGroupReportHandler(dir, nil, "")

	// One attended of 2 possible -> 50%, good tone.
	report, err := h.Handle(context.Background(), GroupReportQuery{
		GroupName: "Alpha",
		StartDate: "2023-01-02",
		EndDate:   "2023-01-04",
	})
	require.NoError(t, err)
	assert.Equal(t, ToneGood, report.Table.Rows[0].Tone)

	// Zero attended in an empty stretch -> bad tone.
	report, err = h.Handle(context.Background(), GroupReportQuery{
		GroupName: "Alpha",
		StartDate: "2023-03-01",
		EndDate:   "2023-03-08",
	})
	require.NoError(t, err)
	assert.Equal(t, ToneBad, report.Table.Rows[0].Tone)
}

func TestGroupReportErrors(t *testing.T) {
	dir := seedDirectory(t)
	h := NewGroupReportHandler(dir, nil, "")

	_, err := h.Handle(context.Background(), GroupReportQuery{GroupName: "Ghost", StartDate: "2023-01-01", EndDate: "2023-01-08"})
	assert.True(t, shared.IsNotFound(err))

	_, err = h.Handle(context.Background(), GroupReportQuery{GroupName: "Alpha", StartDate: "bad", EndDate: "2023-01-08"})
	assert.True(t, shared.IsInvalidRange(err))
}

func TestGroupReportWritesFile(t *testing.T) {
	dir := seedDirectory(t)
	exporter := &captureExporter{}
	h := NewGroupReportHandler(dir, exporter, "reports")

	report, err := h.Handle(context.Background(), GroupReportQuery{
		GroupName: "Alpha",
		StartDate: "2023-01-01",
		EndDate:   "2023-01-08",
	})
	require.NoError(t, err)
	assert.Equal(t, "reports/Alpha_group_report.xlsx", report.FilePath)
	assert.Equal(t, "تقرير المجموعة", exporter.table.Sheet)
}
