package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir/internal/domain/group"
	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/internal/domain/student"
	"github.com/hadir-app/hadir/pkg/timeutil"
)

func mustGroup(t *testing.T, name string, days ...string) *group.Group {
	t.Helper()
	if len(days) == 0 {
		days = []string{timeutil.DayMonday}
	}
	g, err := group.New(name, "17:00 - 19:00", days)
	require.NoError(t, err)
	return g
}

func mustStudent(t *testing.T, id int, name, groupName string) *student.Student {
	t.Helper()
	s, err := student.New(id, name, "", groupName)
	require.NoError(t, err)
	return s
}

func seedDirectory(t *testing.T) *Directory {
	t.Helper()
	d := NewDirectory()
	require.NoError(t, d.AddGroup(mustGroup(t, "Alpha")))
	require.NoError(t, d.AddGroup(mustGroup(t, "Beta")))
	require.NoError(t, d.AddStudent(mustStudent(t, 11111, "Omar", "Alpha")))
	require.NoError(t, d.AddStudent(mustStudent(t, 22222, "Sara", "Alpha")))
	require.NoError(t, d.AddStudent(mustStudent(t, 33333, "Ali", "Beta")))
	return d
}

func TestAddGroupRejectsDuplicateName(t *testing.T) {
	d := NewDirectory()
	require.NoError(t, d.AddGroup(mustGroup(t, "Alpha")))

	err := d.AddGroup(mustGroup(t, "Alpha"))
	assert.True(t, shared.IsConflict(err))
	assert.Equal(t, 1, d.GroupCount())
}

func TestEditGroupRenameCascadesToStudents(t *testing.T) {
	d := seedDirectory(t)

	members, err := d.EditGroup("Alpha", "Gamma", "18:00", []string{timeutil.DayTuesday})
	require.NoError(t, err)
	assert.Equal(t, 2, members)

	_, ok := d.Group("Alpha")
	assert.False(t, ok)
	g, ok := d.Group("Gamma")
	require.True(t, ok)
	assert.Equal(t, "18:00", g.TimeSlot)
	assert.True(t, g.Schedule.Meets(timeutil.DayTuesday))

	for _, id := range []int{11111, 22222} {
		s, ok := d.Student(id)
		require.True(t, ok)
		assert.Equal(t, "Gamma", s.Group)
	}
	s, _ := d.Student(33333)
	assert.Equal(t, "Beta", s.Group)
}

func TestEditGroupRejectsTakenNewName(t *testing.T) {
	d := seedDirectory(t)

	_, err := d.EditGroup("Alpha", "Beta", "18:00", []string{timeutil.DayMonday})
	assert.True(t, shared.IsConflict(err))

	// Unchanged on failure.
	s, _ := d.Student(11111)
	assert.Equal(t, "Alpha", s.Group)
}

func TestDeleteGroupCascadesToStudents(t *testing.T) {
	d := seedDirectory(t)

	removed, err := d.DeleteGroup("Alpha")
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	assert.Equal(t, 1, d.GroupCount())
	assert.Equal(t, 1, d.StudentCount())
	_, ok := d.Student(11111)
	assert.False(t, ok)
	_, ok = d.Student(33333)
	assert.True(t, ok)
}

func TestAddStudentRequiresLiveGroup(t *testing.T) {
	d := NewDirectory()

	err := d.AddStudent(mustStudent(t, 11111, "Omar", "Ghost"))
	assert.True(t, shared.IsNotFound(err))
	assert.Zero(t, d.StudentCount())
}

func TestAddStudentRejectsTakenID(t *testing.T) {
	d := seedDirectory(t)

	err := d.AddStudent(mustStudent(t, 11111, "Clone", "Beta"))
	assert.True(t, shared.IsConflict(err))
}

func TestEditStudentMovesGroups(t *testing.T) {
	d := seedDirectory(t)

	changed, err := d.EditStudent(11111, "Omar K", "+111", "Beta")
	require.NoError(t, err)
	assert.True(t, changed)

	s, _ := d.Student(11111)
	assert.Equal(t, "Omar K", s.Name)
	assert.Equal(t, "+111", s.Phone)
	assert.Equal(t, "Beta", s.Group)

	changed, err = d.EditStudent(11111, "Omar K", "+111", "Beta")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = d.EditStudent(11111, "Omar K", "+111", "Ghost")
	assert.True(t, shared.IsNotFound(err))
}

func TestListingsKeepInsertionOrder(t *testing.T) {
	d := seedDirectory(t)

	var names []string
	for _, g := range d.Groups() {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Alpha", "Beta"}, names)

	var ids []int
	for _, s := range d.Students() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int{11111, 22222, 33333}, ids)

	var alpha []int
	for _, s := range d.StudentsInGroup("Alpha") {
		alpha = append(alpha, s.ID)
	}
	assert.Equal(t, []int{11111, 22222}, alpha)
}

func TestSnapshotRestoreUndoesMutations(t *testing.T) {
	d := seedDirectory(t)
	snap := d.Snapshot()

	_, err := d.DeleteGroup("Alpha")
	require.NoError(t, err)
	s, _ := d.Student(33333)
	require.NoError(t, s.MarkPresent("2023-01-02"))

	d.Restore(snap)

	assert.Equal(t, 2, d.GroupCount())
	assert.Equal(t, 3, d.StudentCount())
	restored, ok := d.Student(33333)
	require.True(t, ok)
	assert.Empty(t, restored.Attendance)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	d := seedDirectory(t)
	snap := d.Snapshot()

	// Mutating the live student must not leak into the snapshot.
	s, _ := d.Student(11111)
	require.NoError(t, s.MarkPresent("2023-01-02"))

	d.Restore(snap)
	restored, _ := d.Student(11111)
	assert.Empty(t, restored.Attendance)
}

func TestLoadSkipsDuplicatesAndKeepsDanglingStudents(t *testing.T) {
	g := mustGroup(t, "Alpha")
	d := Load(
		[]*group.Group{g, mustGroup(t, "Alpha")},
		[]*student.Student{
			mustStudent(t, 11111, "Omar", "Alpha"),
			mustStudent(t, 11111, "Dup", "Alpha"),
			mustStudent(t, 22222, "Orphan", "Gone"),
		},
	)

	assert.Equal(t, 1, d.GroupCount())
	assert.Equal(t, 2, d.StudentCount())

	s, ok := d.Student(11111)
	require.True(t, ok)
	assert.Equal(t, "Omar", s.Name)

	orphan, ok := d.Student(22222)
	require.True(t, ok)
	assert.Equal(t, "Gone", orphan.Group)
}
