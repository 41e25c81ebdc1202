package group

import (
	"github.com/hadir-app/hadir/pkg/timeutil"
)

// Schedule is the set of weekday labels a group meets on. It is a value
// object: construct it once, query it with Meets. The zero value is an empty
// schedule that matches no day.
type Schedule struct {
	days map[string]struct{}
}

// NewSchedule builds a schedule from weekday labels. Unknown labels are
// dropped and duplicates collapse, so a malformed input degrades to a smaller
// (possibly empty) schedule rather than an error. Callers that need strict
// validation check the labels up front.
func NewSchedule(labels []string) Schedule {
	days := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if timeutil.IsWeekdayLabel(label) {
			days[label] = struct{}{}
		}
	}
	return Schedule{days: days}
}

// Meets reports whether the group meets on the weekday named by label.
// An empty schedule never meets: there is no valid attendance day at all,
// which callers treat as a rejection, not an error.
func (s Schedule) Meets(label string) bool {
	if len(s.days) == 0 {
		return false
	}
	_, ok := s.days[label]
	return ok
}

// Days returns the schedule's labels in canonical week order (Saturday first).
func (s Schedule) Days() []string {
	out := make([]string, 0, len(s.days))
	for _, label := range timeutil.WeekLabels {
		if _, ok := s.days[label]; ok {
			out = append(out, label)
		}
	}
	return out
}

// Len returns the number of scheduled weekdays.
func (s Schedule) Len() int {
	return len(s.days)
}

// IsEmpty reports whether the schedule has no days at all.
func (s Schedule) IsEmpty() bool {
	return len(s.days) == 0
}
