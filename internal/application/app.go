// Package application wires the command and query handlers behind one
// facade. The engine itself is not reentrant-safe, so the facade carries the
// single-writer guard: every call into it is serialized on one mutex, which
// is the rule the surrounding system (scanner included) must respect.
package application

import (
	"context"
	"sync"

	"github.com/hadir-app/hadir/internal/application/command"
	"github.com/hadir-app/hadir/internal/application/query"
	"github.com/hadir-app/hadir/internal/domain/identity"
	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/shared"
)

// App is the serialized entry point into the attendance engine.
type App struct {
	mu sync.Mutex

	addGroup      *command.AddGroupHandler
	editGroup     *command.EditGroupHandler
	deleteGroup   *command.DeleteGroupHandler
	addStudent    *command.AddStudentHandler
	editStudent   *command.EditStudentHandler
	deleteStudent *command.DeleteStudentHandler
	record        *command.RecordAttendanceHandler
	evaluate      *command.EvaluateStudentHandler

	studentReport *query.StudentReportHandler
	groupReport   *query.GroupReportHandler
	rosterExport  *query.RosterExportHandler
}

// Deps bundles everything the handlers need.
type Deps struct {
	Directory  *roster.Directory
	Store      roster.Store
	Registry   *identity.Registry
	Encoder    identity.CodeEncoder
	Notifier   shared.Notifier
	Events     shared.EventPublisher
	Exporter   query.Exporter
	ReportsDir string
}

// New assembles the facade.
func New(d Deps) *App {
	return &App{
		addGroup:      command.NewAddGroupHandler(d.Directory, d.Store, d.Notifier, d.Events),
		editGroup:     command.NewEditGroupHandler(d.Directory, d.Store, d.Notifier, d.Events),
		deleteGroup:   command.NewDeleteGroupHandler(d.Directory, d.Store, d.Notifier, d.Events),
		addStudent:    command.NewAddStudentHandler(d.Directory, d.Store, d.Registry, d.Encoder, d.Notifier, d.Events),
		editStudent:   command.NewEditStudentHandler(d.Directory, d.Store, d.Notifier, d.Events),
		deleteStudent: command.NewDeleteStudentHandler(d.Directory, d.Store, d.Notifier, d.Events),
		record:        command.NewRecordAttendanceHandler(d.Directory, d.Store, d.Notifier, d.Events),
		evaluate:      command.NewEvaluateStudentHandler(d.Directory, d.Store, d.Notifier, d.Events),
		studentReport: query.NewStudentReportHandler(d.Directory, d.Exporter, d.ReportsDir),
		groupReport:   query.NewGroupReportHandler(d.Directory, d.Exporter, d.ReportsDir),
		rosterExport:  query.NewRosterExportHandler(d.Directory, d.Exporter, d.ReportsDir),
	}
}

// AddGroup creates a new group.
func (a *App) AddGroup(ctx context.Context, cmd command.AddGroupCommand) (*command.AddGroupResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addGroup.Handle(ctx, cmd)
}

// EditGroup renames/reconfigures a group, cascading renames to students.
func (a *App) EditGroup(ctx context.Context, cmd command.EditGroupCommand) (*command.EditGroupResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.editGroup.Handle(ctx, cmd)
}

// DeleteGroup removes a group and every student in it.
func (a *App) DeleteGroup(ctx context.Context, cmd command.DeleteGroupCommand) (*command.DeleteGroupResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deleteGroup.Handle(ctx, cmd)
}

// AddStudent enrolls a new student.
func (a *App) AddStudent(ctx context.Context, cmd command.AddStudentCommand) (*command.AddStudentResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addStudent.Handle(ctx, cmd)
}

// EditStudent updates a student's details.
func (a *App) EditStudent(ctx context.Context, cmd command.EditStudentCommand) (*command.EditStudentResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.editStudent.Handle(ctx, cmd)
}

// DeleteStudent removes a student.
func (a *App) DeleteStudent(ctx context.Context, cmd command.DeleteStudentCommand) (*command.DeleteStudentResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deleteStudent.Handle(ctx, cmd)
}

// RecordAttendance marks a student present.
func (a *App) RecordAttendance(ctx context.Context, cmd command.RecordAttendanceCommand) (*command.RecordAttendanceResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.record.Handle(ctx, cmd)
}

// EvaluateStudent upserts a star rating for a student.
func (a *App) EvaluateStudent(ctx context.Context, cmd command.EvaluateStudentCommand) (*command.EvaluateStudentResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.evaluate.Handle(ctx, cmd)
}

// StudentReport aggregates one student's attendance over a date range.
func (a *App) StudentReport(ctx context.Context, q query.StudentReportQuery) (*query.StudentReport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.studentReport.Handle(ctx, q)
}

// GroupReport aggregates a whole group's attendance over a date range.
func (a *App) GroupReport(ctx context.Context, q query.GroupReportQuery) (*query.GroupReport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.groupReport.Handle(ctx, q)
}

// RosterExport produces the flat student listing.
func (a *App) RosterExport(ctx context.Context) (*query.RosterExport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rosterExport.Handle(ctx)
}
