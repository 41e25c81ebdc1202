package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir/internal/domain/group"
	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/student"
	"github.com/hadir-app/hadir/pkg/timeutil"
)

// captureExporter records the last table and path it was asked to write.
type captureExporter struct {
	table Table
	path  string
	calls int
}

func (e *captureExporter) Write(_ context.Context, table Table, path string) error {
	e.table = table
	e.path = path
	e.calls++
	return nil
}

// seedDirectory builds a directory with one group meeting Monday and
// Wednesday and one student (id 11111) present on Monday 2023-01-02 with a
// same-day evaluation.
func seedDirectory(t *testing.T) *roster.Directory {
	t.Helper()
	g, err := group.New("Alpha", "17:00 - 19:00", []string{timeutil.DayMonday, timeutil.DayWednesday})
	require.NoError(t, err)

	s, err := student.New(11111, "Omar", "+123", "Alpha")
	require.NoError(t, err)
	require.NoError(t, s.MarkPresent("2023-01-02"))
	require.NoError(t, s.Evaluate("2023-01-02", 3, "great"))

	return roster.Load([]*group.Group{g}, []*student.Student{s})
}
