package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/pkg/timeutil"
)

// 2023-01-02 is a Monday, a scheduled day for the fixture group.
var monday = timeutil.Date(2023, 1, 2)

func TestRecordAttendanceOnScheduledDay(t *testing.T) {
	f := newFixture(t)
	h := NewRecordAttendanceHandler(f.dir, f.store, f.notifier, f.events)

	res, err := h.Handle(context.Background(), RecordAttendanceCommand{StudentID: 11111, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, "2023-01-02", res.Date)
	assert.Equal(t, timeutil.DayMonday, res.DayLabel)

	s, _ := f.dir.Student(11111)
	assert.True(t, s.HasAttended("2023-01-02"))
	assert.Equal(t, 1, f.store.saves)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, shared.EventAttendanceRecorded, f.events.events[0].EventType())

	sev, ok := f.notifier.last()
	require.True(t, ok)
	assert.Equal(t, shared.SeveritySuccess, sev)
}

func TestRecordAttendanceRejectsOffScheduleDay(t *testing.T) {
	f := newFixture(t)
	h := NewRecordAttendanceHandler(f.dir, f.store, f.notifier, f.events)

	// 2023-01-03 is a Tuesday; the group meets Monday and Wednesday.
	_, err := h.Handle(context.Background(), RecordAttendanceCommand{StudentID: 11111, Date: timeutil.Date(2023, 1, 3)})
	assert.True(t, shared.IsInvalidDay(err))

	s, _ := f.dir.Student(11111)
	assert.Empty(t, s.Attendance)
	assert.Zero(t, f.store.saves)
	assert.Empty(t, f.events.events)
}

func TestRecordAttendanceRejectsSameDayTwice(t *testing.T) {
	f := newFixture(t)
	h := NewRecordAttendanceHandler(f.dir, f.store, f.notifier, f.events)

	_, err := h.Handle(context.Background(), RecordAttendanceCommand{StudentID: 11111, Date: monday})
	require.NoError(t, err)

	_, err = h.Handle(context.Background(), RecordAttendanceCommand{StudentID: 11111, Date: monday})
	assert.True(t, shared.IsDuplicate(err))

	s, _ := f.dir.Student(11111)
	assert.Len(t, s.Attendance, 1)
	assert.Equal(t, 1, f.store.saves)
	assert.Len(t, f.events.events, 1)
}

func TestRecordAttendanceUnknownStudent(t *testing.T) {
	f := newFixture(t)
	h := NewRecordAttendanceHandler(f.dir, f.store, f.notifier, f.events)

	_, err := h.Handle(context.Background(), RecordAttendanceCommand{StudentID: 99999, Date: monday})
	assert.True(t, shared.IsNotFound(err))
}

func TestRecordAttendanceRollsBackOnPersistFailure(t *testing.T) {
	f := newFixture(t)
	f.store.failNext = true
	h := NewRecordAttendanceHandler(f.dir, f.store, f.notifier, f.events)

	_, err := h.Handle(context.Background(), RecordAttendanceCommand{StudentID: 11111, Date: monday})
	assert.True(t, shared.IsPersistence(err))

	// The in-memory mark was undone along with the failed save.
	s, _ := f.dir.Student(11111)
	assert.False(t, s.HasAttended("2023-01-02"))
	assert.Empty(t, f.events.events)

	// The same record succeeds once the backend recovers.
	_, err = h.Handle(context.Background(), RecordAttendanceCommand{StudentID: 11111, Date: monday})
	require.NoError(t, err)
}
