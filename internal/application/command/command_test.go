package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir/internal/domain/group"
	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/internal/domain/student"
	"github.com/hadir-app/hadir/pkg/timeutil"
)

// memStore is an in-memory roster.Store for handler tests. failNext makes
// the next SaveAll fail once, to exercise the rollback path.
type memStore struct {
	groups   []*group.Group
	students []*student.Student
	saves    int
	failNext bool
}

func (m *memStore) LoadAll(context.Context) ([]*group.Group, []*student.Student, error) {
	return m.groups, m.students, nil
}

func (m *memStore) SaveAll(_ context.Context, groups []*group.Group, students []*student.Student) error {
	if m.failNext {
		m.failNext = false
		return errors.New("backend unavailable")
	}
	m.groups = groups
	m.students = students
	m.saves++
	return nil
}

// captureNotifier records every notification it receives.
type captureNotifier struct {
	severities []shared.Severity
	messages   []string
}

func (n *captureNotifier) Notify(_ context.Context, severity shared.Severity, message string) {
	n.severities = append(n.severities, severity)
	n.messages = append(n.messages, message)
}

func (n *captureNotifier) last() (shared.Severity, bool) {
	if len(n.severities) == 0 {
		return "", false
	}
	return n.severities[len(n.severities)-1], true
}

// captureEvents records every published event.
type captureEvents struct {
	events []shared.Event
}

func (p *captureEvents) Publish(event shared.Event) error {
	p.events = append(p.events, event)
	return nil
}

// fixture bundles a seeded directory with capturing collaborators.
type fixture struct {
	dir      *roster.Directory
	store    *memStore
	notifier *captureNotifier
	events   *captureEvents
}

// newFixture seeds one group meeting Monday and Wednesday with one enrolled
// student (id 11111).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	g, err := group.New("Alpha", "17:00 - 19:00", []string{timeutil.DayMonday, timeutil.DayWednesday})
	require.NoError(t, err)
	s, err := student.New(11111, "Omar", "+123", "Alpha")
	require.NoError(t, err)

	return &fixture{
		dir:      roster.Load([]*group.Group{g}, []*student.Student{s}),
		store:    &memStore{},
		notifier: &captureNotifier{},
		events:   &captureEvents{},
	}
}
