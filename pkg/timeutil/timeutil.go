// Package timeutil provides naive calendar-date helpers for the attendance
// engine. Every date in the system is a plain YYYY-MM-DD value with no time
// or timezone component, so all helpers here work on day granularity.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// FormatDate is the standard date format (YYYY-MM-DD).
// ISO dates sort lexicographically, which the engine relies on.
const FormatDate = "2006-01-02"

// Date creates a naive calendar date (midnight UTC).
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date.
func Today() time.Time {
	return StartOfDay(time.Now())
}

// StartOfDay truncates a time to its calendar date.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDateStr formats a time as a date string (YYYY-MM-DD).
func FormatDateStr(t time.Time) string {
	return t.Format(FormatDate)
}

// ParseDate parses a date string (YYYY-MM-DD).
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(FormatDate, value, time.UTC)
}

// IsSameDay checks if two times fall on the same calendar date.
func IsSameDay(t1, t2 time.Time) bool {
	return t1.Year() == t2.Year() && t1.YearDay() == t2.YearDay()
}

// DaysBetween calculates the number of whole days between two dates.
// The result is never negative.
func DaysBetween(t1, t2 time.Time) int {
	a := StartOfDay(t1)
	b := StartOfDay(t2)
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// ══════════════════════════════════════════════════════════════════════════════
// WEEKDAY LABEL DOMAIN
// ══════════════════════════════════════════════════════════════════════════════

// The engine identifies weekdays by their Arabic display names, the same
// fixed 7-symbol domain the group schedules are written in. The week starts
// on Saturday, following the local school week.
const (
	DaySaturday  = "السبت"
	DaySunday    = "الأحد"
	DayMonday    = "الاثنين"
	DayTuesday   = "الثلاثاء"
	DayWednesday = "الأربعاء"
	DayThursday  = "الخميس"
	DayFriday    = "الجمعة"
)

// WeekLabels lists all weekday labels in week order (Saturday first).
var WeekLabels = []string{
	DaySaturday,
	DaySunday,
	DayMonday,
	DayTuesday,
	DayWednesday,
	DayThursday,
	DayFriday,
}

// WeekdayLabel returns the weekday label for a calendar date. The mapping
// depends only on the date's weekday, never on any display locale.
func WeekdayLabel(t time.Time) string {
	switch t.Weekday() {
	case time.Saturday:
		return DaySaturday
	case time.Sunday:
		return DaySunday
	case time.Monday:
		return DayMonday
	case time.Tuesday:
		return DayTuesday
	case time.Wednesday:
		return DayWednesday
	case time.Thursday:
		return DayThursday
	case time.Friday:
		return DayFriday
	default:
		return ""
	}
}

// IsWeekdayLabel reports whether s is one of the seven weekday labels.
func IsWeekdayLabel(s string) bool {
	for _, label := range WeekLabels {
		if s == label {
			return true
		}
	}
	return false
}
