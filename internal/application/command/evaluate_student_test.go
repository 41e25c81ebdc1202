package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/pkg/timeutil"
)

func TestEvaluateStudent(t *testing.T) {
	f := newFixture(t)
	h := NewEvaluateStudentHandler(f.dir, f.store, f.notifier, f.events)

	res, err := h.Handle(context.Background(), EvaluateStudentCommand{
		StudentID: 11111,
		Stars:     3,
		Notes:     "excellent recitation",
		Date:      timeutil.Date(2023, 1, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, "2023-01-02", res.Date)
	assert.False(t, res.Replaced)

	s, _ := f.dir.Student(11111)
	ev, ok := s.EvaluationOn("2023-01-02")
	require.True(t, ok)
	assert.Equal(t, 3, ev.Stars)
	assert.Equal(t, "excellent recitation", ev.Notes)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, shared.EventStudentEvaluated, f.events.events[0].EventType())
}

func TestEvaluateStudentRejectsOutOfRangeStarsBeforeMutation(t *testing.T) {
	f := newFixture(t)
	h := NewEvaluateStudentHandler(f.dir, f.store, f.notifier, f.events)

	for _, stars := range []int{0, 4, 5, -1} {
		_, err := h.Handle(context.Background(), EvaluateStudentCommand{
			StudentID: 11111,
			Stars:     stars,
			Date:      timeutil.Date(2023, 1, 2),
		})
		assert.True(t, shared.IsInvalidRange(err), "stars=%d", stars)
	}

	s, _ := f.dir.Student(11111)
	assert.Empty(t, s.Evaluation)
	assert.Zero(t, f.store.saves)
}

func TestEvaluateStudentSameDayOverwrites(t *testing.T) {
	f := newFixture(t)
	h := NewEvaluateStudentHandler(f.dir, f.store, f.notifier, f.events)
	day := timeutil.Date(2023, 1, 2)

	_, err := h.Handle(context.Background(), EvaluateStudentCommand{StudentID: 11111, Stars: 1, Notes: "weak", Date: day})
	require.NoError(t, err)

	res, err := h.Handle(context.Background(), EvaluateStudentCommand{StudentID: 11111, Stars: 3, Notes: "improved", Date: day})
	require.NoError(t, err)
	assert.True(t, res.Replaced)

	s, _ := f.dir.Student(11111)
	assert.Len(t, s.Evaluation, 1)
	ev, _ := s.EvaluationOn("2023-01-02")
	assert.Equal(t, 3, ev.Stars)
	assert.Equal(t, "improved", ev.Notes)
}

func TestEvaluateStudentUnknownStudent(t *testing.T) {
	f := newFixture(t)
	h := NewEvaluateStudentHandler(f.dir, f.store, f.notifier, f.events)

	_, err := h.Handle(context.Background(), EvaluateStudentCommand{StudentID: 99999, Stars: 2})
	assert.True(t, shared.IsNotFound(err))
}

func TestEvaluateStudentRollsBackOnPersistFailure(t *testing.T) {
	f := newFixture(t)
	f.store.failNext = true
	h := NewEvaluateStudentHandler(f.dir, f.store, f.notifier, f.events)

	_, err := h.Handle(context.Background(), EvaluateStudentCommand{
		StudentID: 11111,
		Stars:     2,
		Date:      timeutil.Date(2023, 1, 2),
	})
	assert.True(t, shared.IsPersistence(err))

	s, _ := f.dir.Student(11111)
	assert.Empty(t, s.Evaluation)
}
