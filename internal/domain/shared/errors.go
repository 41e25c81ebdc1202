// Package shared contains common domain types, errors, events, and ports
// that are used across all domain packages. This package has zero external
// dependencies beyond event identifiers.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
// These are the six outcome kinds every engine operation can report.
var (
	// ErrNotFound - a referenced group or student does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict - a unique key (group name, student id) is already taken.
	ErrConflict = errors.New("entity already exists")

	// ErrInvalidDay - attendance attempted on a weekday outside the group schedule.
	ErrInvalidDay = errors.New("day is not in the group schedule")

	// ErrDuplicate - attendance already recorded for that calendar date.
	ErrDuplicate = errors.New("already recorded for this date")

	// ErrInvalidRange - malformed date input or an out-of-domain rating.
	ErrInvalidRange = errors.New("value out of range")

	// ErrPersistence - the storage collaborator reported a failure.
	ErrPersistence = errors.New("persistence failure")

	// ErrValidation - command input failed validation before reaching the domain.
	ErrValidation = errors.New("validation error")

	// ErrExhausted - a bounded resource (the id space) ran out.
	ErrExhausted = errors.New("resource exhausted")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "roster", "attendance", "report"
	Op      string // Operation that failed, e.g., "AddGroup", "Record"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Roster domain errors
var (
	ErrGroupNotFound   = NewDomainError("roster", "FindGroup", ErrNotFound, "group not found")
	ErrGroupExists     = NewDomainError("roster", "AddGroup", ErrConflict, "group name already taken")
	ErrStudentNotFound = NewDomainError("roster", "FindStudent", ErrNotFound, "student not found")
	ErrStudentExists   = NewDomainError("roster", "AddStudent", ErrConflict, "student id already taken")
)

// Attendance domain errors
var (
	ErrNotScheduledDay  = NewDomainError("attendance", "Record", ErrInvalidDay, "today is not one of the group days")
	ErrAlreadyRecorded  = NewDomainError("attendance", "Record", ErrDuplicate, "attendance already recorded today")
	ErrDanglingGroupRef = NewDomainError("attendance", "Record", ErrNotFound, "student references a missing group")
)

// Evaluation domain errors
var (
	ErrStarsOutOfRange = NewDomainError("evaluation", "Evaluate", ErrInvalidRange, "stars must be between 1 and 3")
)

// Report domain errors
var (
	ErrBadDateFormat = NewDomainError("report", "ParseRange", ErrInvalidRange, "dates must be YYYY-MM-DD")
)

// Identity domain errors
var (
	ErrIDSpaceExhausted = NewDomainError("identity", "Allocate", ErrExhausted, "5-digit id space exhausted")
)

// Storage errors
var (
	ErrSaveFailed = NewDomainError("storage", "SaveAll", ErrPersistence, "failed to persist state")
	ErrLoadFailed = NewDomainError("storage", "LoadAll", ErrPersistence, "failed to load state")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if the error is a duplicate unique key error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsInvalidDay checks if the error is a non-scheduled weekday error.
func IsInvalidDay(err error) bool {
	return errors.Is(err, ErrInvalidDay)
}

// IsDuplicate checks if the error is a same-day duplicate attendance error.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsInvalidRange checks if the error is a malformed date or rating error.
func IsInvalidRange(err error) bool {
	return errors.Is(err, ErrInvalidRange) || errors.Is(err, ErrValidation)
}

// IsPersistence checks if the error came from the storage collaborator.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}
