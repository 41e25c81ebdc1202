// Package group contains the domain model of a group: a named, recurring
// class with a free-text time slot and a weekly schedule of meeting days.
// This is core business logic with no external dependencies.
package group

import (
	"errors"
	"strings"

	"github.com/hadir-app/hadir/pkg/timeutil"
)

// Validation errors returned by the constructor.
var (
	ErrEmptyName  = errors.New("group: name cannot be empty")
	ErrNoDays     = errors.New("group: at least one meeting day is required")
	ErrUnknownDay = errors.New("group: unknown weekday label")
)

// Group is a named, recurring class. Name is the primary key used by every
// relation in the system; students reference their group by it.
type Group struct {
	// Name uniquely identifies the group.
	Name string

	// TimeSlot is a free-text display string ("17:00 - 19:00"). Never parsed.
	TimeSlot string

	// Schedule is the set of weekdays the group meets on.
	Schedule Schedule
}

// New creates a validated group. The day labels must be drawn from the fixed
// 7-symbol weekday domain and at least one is required.
func New(name, timeSlot string, days []string) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(days) == 0 {
		return nil, ErrNoDays
	}
	for _, d := range days {
		if !timeutil.IsWeekdayLabel(d) {
			return nil, ErrUnknownDay
		}
	}
	return &Group{
		Name:     name,
		TimeSlot: timeSlot,
		Schedule: NewSchedule(days),
	}, nil
}

// Rename changes the group's name. The caller (the directory) is responsible
// for cascading the rename to member students atomically.
func (g *Group) Rename(newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	g.Name = newName
	return nil
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	return &Group{
		Name:     g.Name,
		TimeSlot: g.TimeSlot,
		Schedule: NewSchedule(g.Schedule.Days()),
	}
}
