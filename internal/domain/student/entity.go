// Package student contains the domain model of an enrolled student together
// with the two per-student ledgers: the attendance ledger (set of dates the
// student was present) and the evaluation ledger (per-day star rating plus
// notes). This is core business logic with no external dependencies.
package student

import (
	"errors"
	"strings"

	"github.com/hadir-app/hadir/internal/domain/shared"
)

// Star rating bounds for evaluations.
const (
	MinStars = 1
	MaxStars = 3
)

// Validation errors returned by the constructor.
var (
	ErrEmptyName = errors.New("student: name cannot be empty")
	ErrNoGroup   = errors.New("student: group reference cannot be empty")
)

// Evaluation is one day's star rating with free-text notes.
type Evaluation struct {
	Stars int    `json:"stars"`
	Notes string `json:"notes"`
}

// Student is an enrolled individual belonging to exactly one group.
type Student struct {
	// ID is the unique 5-digit identifier, immutable once assigned.
	ID int

	// Name is the student's display name.
	Name string

	// Phone is a free-text contact number.
	Phone string

	// Group is the name of the group the student belongs to.
	Group string

	// Attendance is the ordered set of ISO dates (YYYY-MM-DD) the student
	// was present. Each date appears at most once; absence is implicit.
	Attendance []string

	// Evaluation maps ISO dates to that day's rating. At most one entry per
	// day; re-evaluating the same day overwrites.
	Evaluation map[string]Evaluation
}

// New creates a validated student with empty ledgers.
func New(id int, name, phone, groupName string) (*Student, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(groupName) == "" {
		return nil, ErrNoGroup
	}
	return &Student{
		ID:         id,
		Name:       name,
		Phone:      phone,
		Group:      groupName,
		Attendance: make([]string, 0),
		Evaluation: make(map[string]Evaluation),
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE LEDGER
// ══════════════════════════════════════════════════════════════════════════════

// HasAttended reports whether the student was marked present on date.
func (s *Student) HasAttended(date string) bool {
	for _, d := range s.Attendance {
		if d == date {
			return true
		}
	}
	return false
}

// MarkPresent appends date to the attendance ledger. A second mark on the
// same date is rejected with a Duplicate error rather than silently ignored,
// so callers can tell "already recorded" from "recorded now".
func (s *Student) MarkPresent(date string) error {
	if s.HasAttended(date) {
		return shared.ErrAlreadyRecorded
	}
	s.Attendance = append(s.Attendance, date)
	return nil
}

// AttendanceBetween returns the attended dates within [start, end], both
// inclusive, as ISO date strings. ISO dates compare lexicographically, so a
// plain string comparison is the date comparison.
func (s *Student) AttendanceBetween(start, end string) []string {
	out := make([]string, 0)
	for _, d := range s.Attendance {
		if d >= start && d <= end {
			out = append(out, d)
		}
	}
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// EVALUATION LEDGER
// ══════════════════════════════════════════════════════════════════════════════

// Evaluate upserts the rating for date. Last write wins per calendar day.
func (s *Student) Evaluate(date string, stars int, notes string) error {
	if stars < MinStars || stars > MaxStars {
		return shared.ErrStarsOutOfRange
	}
	if s.Evaluation == nil {
		s.Evaluation = make(map[string]Evaluation)
	}
	s.Evaluation[date] = Evaluation{Stars: stars, Notes: notes}
	return nil
}

// EvaluationOn returns the evaluation recorded for date, if any.
func (s *Student) EvaluationOn(date string) (Evaluation, bool) {
	ev, ok := s.Evaluation[date]
	return ev, ok
}

// LastEvaluation returns the most recent evaluation by date. Dates are ISO
// strings, so the lexicographic maximum is the latest calendar day.
func (s *Student) LastEvaluation() (string, Evaluation, bool) {
	if len(s.Evaluation) == 0 {
		return "", Evaluation{}, false
	}
	var latest string
	for date := range s.Evaluation {
		if date > latest {
			latest = date
		}
	}
	return latest, s.Evaluation[latest], true
}

// AverageStars returns the mean star rating over the student's entire
// evaluation history, or 0 when there are no evaluations.
func (s *Student) AverageStars() float64 {
	if len(s.Evaluation) == 0 {
		return 0
	}
	total := 0
	for _, ev := range s.Evaluation {
		total += ev.Stars
	}
	return float64(total) / float64(len(s.Evaluation))
}

// Clone returns a deep copy of the student including both ledgers.
func (s *Student) Clone() *Student {
	attendance := make([]string, len(s.Attendance))
	copy(attendance, s.Attendance)

	evaluation := make(map[string]Evaluation, len(s.Evaluation))
	for date, ev := range s.Evaluation {
		evaluation[date] = ev
	}

	return &Student{
		ID:         s.ID,
		Name:       s.Name,
		Phone:      s.Phone,
		Group:      s.Group,
		Attendance: attendance,
		Evaluation: evaluation,
	}
}
