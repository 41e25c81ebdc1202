// Package identity allocates the unique 5-digit student identifiers and
// defines the ports for the optical code collaborator that turns an id into
// a scannable artifact and back.
package identity

import (
	"math/rand"
	"time"

	"github.com/hadir-app/hadir/internal/domain/shared"
)

// Inclusive bounds of the id space. ~90000 ids; exhaustion is practically
// unreachable for a single school but is still reported as a terminal error.
const (
	MinID = 10000
	MaxID = 99999
)

// capacity is the total number of allocatable ids.
const capacity = MaxID - MinID + 1

// Registry hands out previously-unused 5-digit ids by uniform rejection
// sampling. Ids are never reused within a run: deleting a student does not
// return its id to the pool, mirroring physical id-card semantics where a
// reprinted number would be confusing.
//
// Registry is not safe for concurrent use; the engine serializes all calls.
type Registry struct {
	used map[int]struct{}
	intn func(n int) int
}

// NewRegistry creates a registry with a time-seeded random source.
func NewRegistry() *Registry {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewRegistryWithRand(src.Intn)
}

// NewRegistryWithRand creates a registry with a caller-supplied random
// function (mainly for deterministic tests). intn must behave like
// rand.Intn: return a uniform value in [0, n).
func NewRegistryWithRand(intn func(n int) int) *Registry {
	return &Registry{
		used: make(map[int]struct{}),
		intn: intn,
	}
}

// Observe marks an id as taken without allocating it. Called once per live
// student when the directory is loaded from storage, so freshly allocated
// ids never collide with persisted ones.
func (r *Registry) Observe(id int) {
	r.used[id] = struct{}{}
}

// Allocated returns how many ids this registry considers taken.
func (r *Registry) Allocated() int {
	return len(r.used)
}

// Allocate returns a fresh unused id, sampling uniformly and rejecting
// collisions. Returns an Exhausted error when the whole space is taken.
func (r *Registry) Allocate() (int, error) {
	if len(r.used) >= capacity {
		return 0, shared.ErrIDSpaceExhausted
	}
	for {
		id := MinID + r.intn(capacity)
		if _, taken := r.used[id]; taken {
			continue
		}
		r.used[id] = struct{}{}
		return id, nil
	}
}
