package shared

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Every successful mutation of the directory emits
// exactly one of these after the state has been persisted.
const (
	// Group events
	EventGroupCreated EventType = "group.created"
	EventGroupUpdated EventType = "group.updated"
	EventGroupDeleted EventType = "group.deleted"

	// Student events
	EventStudentEnrolled EventType = "student.enrolled"
	EventStudentUpdated  EventType = "student.updated"
	EventStudentRemoved  EventType = "student.removed"

	// Ledger events
	EventAttendanceRecorded EventType = "attendance.recorded"
	EventStudentEvaluated   EventType = "student.evaluated"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateId   string    `json:"aggregate_id"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event with a fresh unique id.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
	}
}

// WithCorrelationID sets the correlation ID for tracing.
func (e BaseEvent) WithCorrelationID(id string) BaseEvent {
	e.CorrelationID = id
	return e
}

// ═══════════════════════════════════════════════════════════════════════════
// Group Events
// ═══════════════════════════════════════════════════════════════════════════

// GroupCreatedEvent is emitted when a new group is added.
type GroupCreatedEvent struct {
	BaseEvent
	Name     string   `json:"name"`
	TimeSlot string   `json:"time_slot"`
	Days     []string `json:"days"`
}

// Payload implements Event interface.
func (e GroupCreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"name":      e.Name,
		"time_slot": e.TimeSlot,
		"days":      e.Days,
	}
}

// NewGroupCreatedEvent creates a new GroupCreatedEvent.
func NewGroupCreatedEvent(name, timeSlot string, days []string) GroupCreatedEvent {
	return GroupCreatedEvent{
		BaseEvent: NewBaseEvent(EventGroupCreated, name),
		Name:      name,
		TimeSlot:  timeSlot,
		Days:      days,
	}
}

// GroupUpdatedEvent is emitted when a group is edited. When the group was
// renamed, OldName and NewName differ and every member student has been
// re-pointed to NewName already.
type GroupUpdatedEvent struct {
	BaseEvent
	OldName        string `json:"old_name"`
	NewName        string `json:"new_name"`
	MembersUpdated int    `json:"members_updated"`
}

// Payload implements Event interface.
func (e GroupUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"old_name":        e.OldName,
		"new_name":        e.NewName,
		"members_updated": e.MembersUpdated,
	}
}

// NewGroupUpdatedEvent creates a new GroupUpdatedEvent.
func NewGroupUpdatedEvent(oldName, newName string, membersUpdated int) GroupUpdatedEvent {
	return GroupUpdatedEvent{
		BaseEvent:      NewBaseEvent(EventGroupUpdated, newName),
		OldName:        oldName,
		NewName:        newName,
		MembersUpdated: membersUpdated,
	}
}

// GroupDeletedEvent is emitted when a group and its students are removed.
type GroupDeletedEvent struct {
	BaseEvent
	Name            string `json:"name"`
	StudentsRemoved int    `json:"students_removed"`
}

// Payload implements Event interface.
func (e GroupDeletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"name":             e.Name,
		"students_removed": e.StudentsRemoved,
	}
}

// NewGroupDeletedEvent creates a new GroupDeletedEvent.
func NewGroupDeletedEvent(name string, studentsRemoved int) GroupDeletedEvent {
	return GroupDeletedEvent{
		BaseEvent:       NewBaseEvent(EventGroupDeleted, name),
		Name:            name,
		StudentsRemoved: studentsRemoved,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Student Events
// ═══════════════════════════════════════════════════════════════════════════

// StudentEnrolledEvent is emitted when a new student is added to a group.
type StudentEnrolledEvent struct {
	BaseEvent
	StudentID int    `json:"student_id"`
	Name      string `json:"name"`
	Group     string `json:"group"`
	CodePath  string `json:"code_path,omitempty"`
}

// Payload implements Event interface.
func (e StudentEnrolledEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"name":       e.Name,
		"group":      e.Group,
		"code_path":  e.CodePath,
	}
}

// NewStudentEnrolledEvent creates a new StudentEnrolledEvent.
func NewStudentEnrolledEvent(studentID int, name, group, codePath string) StudentEnrolledEvent {
	return StudentEnrolledEvent{
		BaseEvent: NewBaseEvent(EventStudentEnrolled, name),
		StudentID: studentID,
		Name:      name,
		Group:     group,
		CodePath:  codePath,
	}
}

// StudentUpdatedEvent is emitted when student details change.
type StudentUpdatedEvent struct {
	BaseEvent
	StudentID    int    `json:"student_id"`
	Name         string `json:"name"`
	Group        string `json:"group"`
	GroupChanged bool   `json:"group_changed"`
}

// Payload implements Event interface.
func (e StudentUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id":    e.StudentID,
		"name":          e.Name,
		"group":         e.Group,
		"group_changed": e.GroupChanged,
	}
}

// NewStudentUpdatedEvent creates a new StudentUpdatedEvent.
func NewStudentUpdatedEvent(studentID int, name, group string, groupChanged bool) StudentUpdatedEvent {
	return StudentUpdatedEvent{
		BaseEvent:    NewBaseEvent(EventStudentUpdated, name),
		StudentID:    studentID,
		Name:         name,
		Group:        group,
		GroupChanged: groupChanged,
	}
}

// StudentRemovedEvent is emitted when a student is deleted.
type StudentRemovedEvent struct {
	BaseEvent
	StudentID int    `json:"student_id"`
	Name      string `json:"name"`
}

// Payload implements Event interface.
func (e StudentRemovedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"name":       e.Name,
	}
}

// NewStudentRemovedEvent creates a new StudentRemovedEvent.
func NewStudentRemovedEvent(studentID int, name string) StudentRemovedEvent {
	return StudentRemovedEvent{
		BaseEvent: NewBaseEvent(EventStudentRemoved, name),
		StudentID: studentID,
		Name:      name,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Ledger Events
// ═══════════════════════════════════════════════════════════════════════════

// AttendanceRecordedEvent is emitted when a presence is recorded.
type AttendanceRecordedEvent struct {
	BaseEvent
	StudentID int    `json:"student_id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	DayLabel  string `json:"day_label"`
}

// Payload implements Event interface.
func (e AttendanceRecordedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"name":       e.Name,
		"date":       e.Date,
		"day_label":  e.DayLabel,
	}
}

// NewAttendanceRecordedEvent creates a new AttendanceRecordedEvent.
func NewAttendanceRecordedEvent(studentID int, name, date, dayLabel string) AttendanceRecordedEvent {
	return AttendanceRecordedEvent{
		BaseEvent: NewBaseEvent(EventAttendanceRecorded, date),
		StudentID: studentID,
		Name:      name,
		Date:      date,
		DayLabel:  dayLabel,
	}
}

// StudentEvaluatedEvent is emitted when a star rating is upserted.
type StudentEvaluatedEvent struct {
	BaseEvent
	StudentID int    `json:"student_id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Stars     int    `json:"stars"`
}

// Payload implements Event interface.
func (e StudentEvaluatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"name":       e.Name,
		"date":       e.Date,
		"stars":      e.Stars,
	}
}

// NewStudentEvaluatedEvent creates a new StudentEvaluatedEvent.
func NewStudentEvaluatedEvent(studentID int, name, date string, stars int) StudentEvaluatedEvent {
	return StudentEvaluatedEvent{
		BaseEvent: NewBaseEvent(EventStudentEvaluated, date),
		StudentID: studentID,
		Name:      name,
		Date:      date,
		Stars:     stars,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Event ports
// ═══════════════════════════════════════════════════════════════════════════

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}

// NopPublisher discards all events. Useful in tests and tools.
type NopPublisher struct{}

// Publish implements EventPublisher.
func (NopPublisher) Publish(Event) error { return nil }
