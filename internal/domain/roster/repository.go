package roster

import (
	"context"

	"github.com/hadir-app/hadir/internal/domain/group"
	"github.com/hadir-app/hadir/internal/domain/student"
)

// Store is the persistence port for the directory. Semantics are
// full-replace: every SaveAll rewrites both collections in one atomic write,
// so a crash mid-save leaves either the old state or the new state on disk,
// never a mix. There is no incremental diffing.
type Store interface {
	// LoadAll reads the complete persisted state.
	LoadAll(ctx context.Context) ([]*group.Group, []*student.Student, error)

	// SaveAll atomically replaces the complete persisted state.
	SaveAll(ctx context.Context, groups []*group.Group, students []*student.Student) error
}
