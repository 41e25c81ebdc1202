// Package roster contains the Directory aggregate: the single owner of the
// group and student collections and the referential rules between them.
// All mutations of either collection go through the directory so that a
// student always points at a live group (cascading renames and deletes are
// performed here, atomically in memory).
package roster

import (
	"github.com/hadir-app/hadir/internal/domain/group"
	"github.com/hadir-app/hadir/internal/domain/shared"
	"github.com/hadir-app/hadir/internal/domain/student"
)

// Directory exclusively owns the live groups (keyed by name) and students
// (keyed by id). It is a plain in-memory aggregate: persistence and call
// serialization are the caller's concern.
type Directory struct {
	groups   map[string]*group.Group
	students map[int]*student.Student

	// Insertion order, kept so listings and reports are deterministic.
	groupOrder   []string
	studentOrder []int
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		groups:   make(map[string]*group.Group),
		students: make(map[int]*student.Student),
	}
}

// Load builds a directory from previously persisted collections. Students
// referencing a group that no longer exists are kept as-is: the dangling
// reference is detected per-operation (attendance on such a student reports
// NotFound), matching how the system has always treated them.
func Load(groups []*group.Group, students []*student.Student) *Directory {
	d := NewDirectory()
	for _, g := range groups {
		if _, dup := d.groups[g.Name]; dup {
			continue
		}
		d.groups[g.Name] = g
		d.groupOrder = append(d.groupOrder, g.Name)
	}
	for _, s := range students {
		if _, dup := d.students[s.ID]; dup {
			continue
		}
		d.students[s.ID] = s
		d.studentOrder = append(d.studentOrder, s.ID)
	}
	return d
}

// ══════════════════════════════════════════════════════════════════════════════
// LOOKUPS
// ══════════════════════════════════════════════════════════════════════════════

// Group returns the group with the given name.
func (d *Directory) Group(name string) (*group.Group, bool) {
	g, ok := d.groups[name]
	return g, ok
}

// Student returns the student with the given id.
func (d *Directory) Student(id int) (*student.Student, bool) {
	s, ok := d.students[id]
	return s, ok
}

// Groups returns all groups in insertion order.
func (d *Directory) Groups() []*group.Group {
	out := make([]*group.Group, 0, len(d.groupOrder))
	for _, name := range d.groupOrder {
		out = append(out, d.groups[name])
	}
	return out
}

// Students returns all students in insertion order.
func (d *Directory) Students() []*student.Student {
	out := make([]*student.Student, 0, len(d.studentOrder))
	for _, id := range d.studentOrder {
		out = append(out, d.students[id])
	}
	return out
}

// StudentsInGroup returns the students of one group in insertion order.
func (d *Directory) StudentsInGroup(groupName string) []*student.Student {
	out := make([]*student.Student, 0)
	for _, id := range d.studentOrder {
		if s := d.students[id]; s.Group == groupName {
			out = append(out, s)
		}
	}
	return out
}

// GroupCount returns the number of live groups.
func (d *Directory) GroupCount() int { return len(d.groups) }

// StudentCount returns the number of live students.
func (d *Directory) StudentCount() int { return len(d.students) }

// ══════════════════════════════════════════════════════════════════════════════
// GROUP MUTATIONS
// ══════════════════════════════════════════════════════════════════════════════

// AddGroup inserts a new group. Conflict if the name is already taken.
func (d *Directory) AddGroup(g *group.Group) error {
	if _, exists := d.groups[g.Name]; exists {
		return shared.ErrGroupExists
	}
	d.groups[g.Name] = g
	d.groupOrder = append(d.groupOrder, g.Name)
	return nil
}

// EditGroup renames and reconfigures a group. When the name changes, every
// student of the old group is re-pointed to the new name in the same call,
// so no observer ever sees a student referencing a gone group.
// Returns the number of students whose reference was updated.
func (d *Directory) EditGroup(oldName, newName, timeSlot string, days []string) (int, error) {
	g, ok := d.groups[oldName]
	if !ok {
		return 0, shared.ErrGroupNotFound
	}
	if newName != oldName {
		if _, taken := d.groups[newName]; taken {
			return 0, shared.ErrGroupExists
		}
	}

	updated, err := group.New(newName, timeSlot, days)
	if err != nil {
		return 0, shared.WrapError("roster", "EditGroup", shared.ErrValidation, "invalid group", err)
	}

	*g = *updated
	if newName != oldName {
		delete(d.groups, oldName)
		d.groups[newName] = g
		for i, name := range d.groupOrder {
			if name == oldName {
				d.groupOrder[i] = newName
				break
			}
		}
	}

	members := 0
	for _, s := range d.students {
		if s.Group == oldName {
			s.Group = newName
			members++
		}
	}
	return members, nil
}

// DeleteGroup removes a group and cascades: every student referencing it is
// removed from the directory as well. Returns the removed students.
func (d *Directory) DeleteGroup(name string) ([]*student.Student, error) {
	if _, ok := d.groups[name]; !ok {
		return nil, shared.ErrGroupNotFound
	}

	delete(d.groups, name)
	for i, n := range d.groupOrder {
		if n == name {
			d.groupOrder = append(d.groupOrder[:i], d.groupOrder[i+1:]...)
			break
		}
	}

	removed := make([]*student.Student, 0)
	kept := d.studentOrder[:0]
	for _, id := range d.studentOrder {
		s := d.students[id]
		if s.Group == name {
			removed = append(removed, s)
			delete(d.students, id)
		} else {
			kept = append(kept, id)
		}
	}
	d.studentOrder = kept
	return removed, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT MUTATIONS
// ══════════════════════════════════════════════════════════════════════════════

// AddStudent inserts a new student. The referenced group must exist and the
// id must be unused (the identity registry guarantees the latter; this check
// is the aggregate's own invariant).
func (d *Directory) AddStudent(s *student.Student) error {
	if _, ok := d.groups[s.Group]; !ok {
		return shared.ErrGroupNotFound
	}
	if _, taken := d.students[s.ID]; taken {
		return shared.ErrStudentExists
	}
	d.students[s.ID] = s
	d.studentOrder = append(d.studentOrder, s.ID)
	return nil
}

// EditStudent updates a student's details. The new group must exist; when it
// differs from the current one, the student moves rosters in the same call.
func (d *Directory) EditStudent(id int, newName, newPhone, newGroup string) (groupChanged bool, err error) {
	s, ok := d.students[id]
	if !ok {
		return false, shared.ErrStudentNotFound
	}
	if _, ok := d.groups[newGroup]; !ok {
		return false, shared.ErrGroupNotFound
	}

	s.Name = newName
	s.Phone = newPhone
	if s.Group != newGroup {
		s.Group = newGroup
		groupChanged = true
	}
	return groupChanged, nil
}

// DeleteStudent removes a student from the directory.
func (d *Directory) DeleteStudent(id int) (*student.Student, error) {
	s, ok := d.students[id]
	if !ok {
		return nil, shared.ErrStudentNotFound
	}
	delete(d.students, id)
	for i, sid := range d.studentOrder {
		if sid == id {
			d.studentOrder = append(d.studentOrder[:i], d.studentOrder[i+1:]...)
			break
		}
	}
	return s, nil
}
