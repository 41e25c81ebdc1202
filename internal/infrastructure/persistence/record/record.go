// Package record defines the flat storage representation shared by every
// store backend, and the lossless codecs between it and the domain model.
//
// The attendance ledger is stored as a comma-joined list of ISO dates (the
// dates themselves never contain commas, so the join round-trips exactly).
// The evaluation ledger is stored as a JSON object keyed by ISO date; notes
// may contain any characters, including the list delimiter, and survive
// unchanged. Empty ledgers serialize to the empty string in both cases.
package record

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hadir-app/hadir/internal/domain/group"
	"github.com/hadir-app/hadir/internal/domain/student"
)

// DaysSeparator joins weekday labels and attendance dates in storage.
const DaysSeparator = ","

// GroupRecord is the flat form of a group.
type GroupRecord struct {
	Name     string `json:"name"`
	TimeSlot string `json:"time"`
	Days     string `json:"days"`
}

// StudentRecord is the flat form of a student with both ledgers serialized.
type StudentRecord struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Group      string `json:"group"`
	Attendance string `json:"attendance"`
	Evaluation string `json:"evaluation"`
}

// EncodeGroup flattens a group for storage.
func EncodeGroup(g *group.Group) GroupRecord {
	return GroupRecord{
		Name:     g.Name,
		TimeSlot: g.TimeSlot,
		Days:     strings.Join(g.Schedule.Days(), DaysSeparator),
	}
}

// DecodeGroup rebuilds a group from its flat form. Unknown day labels were
// rejected at write time; any that still appear (hand-edited storage) are
// dropped by the schedule constructor rather than failing the whole load.
func DecodeGroup(r GroupRecord) *group.Group {
	var days []string
	if r.Days != "" {
		days = strings.Split(r.Days, DaysSeparator)
	}
	return &group.Group{
		Name:     r.Name,
		TimeSlot: r.TimeSlot,
		Schedule: group.NewSchedule(days),
	}
}

// EncodeStudent flattens a student for storage.
func EncodeStudent(s *student.Student) (StudentRecord, error) {
	rec := StudentRecord{
		ID:         s.ID,
		Name:       s.Name,
		Phone:      s.Phone,
		Group:      s.Group,
		Attendance: strings.Join(s.Attendance, DaysSeparator),
	}
	if len(s.Evaluation) > 0 {
		raw, err := json.Marshal(s.Evaluation)
		if err != nil {
			return StudentRecord{}, fmt.Errorf("record: encode evaluation for student %d: %w", s.ID, err)
		}
		rec.Evaluation = string(raw)
	}
	return rec, nil
}

// DecodeStudent rebuilds a student from its flat form.
func DecodeStudent(r StudentRecord) (*student.Student, error) {
	s := &student.Student{
		ID:         r.ID,
		Name:       r.Name,
		Phone:      r.Phone,
		Group:      r.Group,
		Attendance: make([]string, 0),
		Evaluation: make(map[string]student.Evaluation),
	}
	if r.Attendance != "" {
		s.Attendance = strings.Split(r.Attendance, DaysSeparator)
	}
	if r.Evaluation != "" && r.Evaluation != "{}" {
		if err := json.Unmarshal([]byte(r.Evaluation), &s.Evaluation); err != nil {
			return nil, fmt.Errorf("record: decode evaluation for student %d: %w", r.ID, err)
		}
	}
	return s, nil
}

// EncodeStudents flattens a whole collection, preserving order.
func EncodeStudents(students []*student.Student) ([]StudentRecord, error) {
	out := make([]StudentRecord, 0, len(students))
	for _, s := range students {
		rec, err := EncodeStudent(s)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// DecodeStudents rebuilds a whole collection, preserving order.
func DecodeStudents(records []StudentRecord) ([]*student.Student, error) {
	out := make([]*student.Student, 0, len(records))
	for _, r := range records {
		s, err := DecodeStudent(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// EncodeGroups flattens a whole collection, preserving order.
func EncodeGroups(groups []*group.Group) []GroupRecord {
	out := make([]GroupRecord, 0, len(groups))
	for _, g := range groups {
		out = append(out, EncodeGroup(g))
	}
	return out
}

// DecodeGroups rebuilds a whole collection, preserving order.
func DecodeGroups(records []GroupRecord) []*group.Group {
	out := make([]*group.Group, 0, len(records))
	for _, r := range records {
		out = append(out, DecodeGroup(r))
	}
	return out
}
