package roster

import (
	"github.com/hadir-app/hadir/internal/domain/group"
	"github.com/hadir-app/hadir/internal/domain/student"
)

// Snapshot is a deep copy of the directory state, taken before a mutation so
// a failed persist can be rolled back completely. Command handlers follow
// the pattern: snapshot, mutate, save, restore on save failure. That keeps
// the in-memory state and storage from ever diverging past a failed call.
type Snapshot struct {
	groups       []*group.Group
	students     []*student.Student
	groupOrder   []string
	studentOrder []int
}

// Snapshot captures the current state.
func (d *Directory) Snapshot() *Snapshot {
	snap := &Snapshot{
		groups:       make([]*group.Group, 0, len(d.groupOrder)),
		students:     make([]*student.Student, 0, len(d.studentOrder)),
		groupOrder:   append([]string(nil), d.groupOrder...),
		studentOrder: append([]int(nil), d.studentOrder...),
	}
	for _, name := range d.groupOrder {
		snap.groups = append(snap.groups, d.groups[name].Clone())
	}
	for _, id := range d.studentOrder {
		snap.students = append(snap.students, d.students[id].Clone())
	}
	return snap
}

// Restore replaces the directory state with the snapshot's.
func (d *Directory) Restore(snap *Snapshot) {
	d.groups = make(map[string]*group.Group, len(snap.groups))
	d.students = make(map[int]*student.Student, len(snap.students))
	d.groupOrder = append([]string(nil), snap.groupOrder...)
	d.studentOrder = append([]int(nil), snap.studentOrder...)
	for _, g := range snap.groups {
		d.groups[g.Name] = g.Clone()
	}
	for _, s := range snap.students {
		d.students[s.ID] = s.Clone()
	}
}
