package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir/internal/domain/student"
)

func TestRosterExportRows(t *testing.T) {
	dir := seedDirectory(t)
	s, _ := dir.Student(11111)
	require.NoError(t, s.Evaluate("2023-02-01", 1, "later entry"))

	h := NewRosterExportHandler(dir, nil, "")
	export, err := h.Handle(context.Background())
	require.NoError(t, err)

	require.Len(t, export.Rows, 1)
	row := export.Rows[0]
	assert.Equal(t, 11111, row.StudentID)
	assert.Equal(t, "Omar", row.Name)
	assert.Equal(t, "Alpha", row.Group)
	assert.Equal(t, 1, row.AttendanceDays)
	assert.True(t, row.HasEvaluation)

	// Latest calendar day wins, not the highest rating.
	assert.Equal(t, 1, row.LastStars)

	require.Len(t, export.Table.Rows, 1)
	assert.Equal(t, []string{"Omar", "11111", "Alpha", "+123", "1", "1"}, export.Table.Rows[0].Cells)
}

func TestRosterExportNeverEvaluatedStudent(t *testing.T) {
	dir := seedDirectory(t)
	fresh, err := student.New(22222, "Sara", "", "Alpha")
	require.NoError(t, err)
	require.NoError(t, dir.AddStudent(fresh))

	h := NewRosterExportHandler(dir, nil, "")
	export, err := h.Handle(context.Background())
	require.NoError(t, err)

	require.Len(t, export.Rows, 2)
	row := export.Rows[1]
	assert.False(t, row.HasEvaluation)
	assert.Zero(t, row.LastStars)
	assert.Equal(t, NoEvaluation, export.Table.Rows[1].Cells[5])
}

func TestRosterExportWritesFile(t *testing.T) {
	dir := seedDirectory(t)
	exporter := &captureExporter{}
	h := NewRosterExportHandler(dir, exporter, "reports")

	export, err := h.Handle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "reports/students_list.xlsx", export.FilePath)
	assert.Equal(t, "قائمة الطلاب", exporter.table.Sheet)
}
