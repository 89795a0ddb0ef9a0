package page

import (
	"sync"
	"time"

	"github.com/fajrulhm/perpus-admin/log"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MutationState is the lifecycle of one optimistic mutation. A mutation is
// Pending while the remote call is in flight; success commits the local
// patch, failure rolls back without ever touching the collection.
type MutationState int

const (
	StatePending MutationState = iota
	StateCommitted
	StateRolledBack
)

func (s MutationState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

type PatchOp int

const (
	OpAppend PatchOp = iota
	OpReplace
	OpRemove
)

// Mutation records one attempted change, observable while in flight.
type Mutation struct {
	ID        uuid.UUID
	Op        PatchOp
	StartedAt time.Time

	mu    sync.Mutex
	state MutationState
}

func (m *Mutation) State() MutationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mutation) settle(state MutationState) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

// Tracker keeps the in-flight mutations of one page so a concurrent read
// can see the exact pending set.
type Tracker struct {
	mu      sync.Mutex
	pending map[uuid.UUID]*Mutation
	history []*Mutation
}

func NewTracker() *Tracker {
	return &Tracker{pending: map[uuid.UUID]*Mutation{}}
}

func (t *Tracker) begin(op PatchOp) *Mutation {
	m := &Mutation{ID: uuid.New(), Op: op, StartedAt: time.Now(), state: StatePending}
	t.mu.Lock()
	t.pending[m.ID] = m
	t.mu.Unlock()
	return m
}

func (t *Tracker) settle(m *Mutation, state MutationState) {
	m.settle(state)
	t.mu.Lock()
	delete(t.pending, m.ID)
	t.history = append(t.history, m)
	t.mu.Unlock()
}

func (t *Tracker) PendingCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// History returns settled mutations, oldest first.
func (t *Tracker) History() []*Mutation {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*Mutation{}, t.history...)
}

// Apply runs one optimistic mutation against a collection: mark pending,
// issue the remote call, and patch locally only on success. The call
// returns the item to patch with: the server's entity for a create, the
// caller's optimistic copy for an update (server-computed fields reconcile
// on the next full load, not here). The item is ignored for a remove.
func Apply[T any](t *Tracker, c *Collection[T], op PatchOp, removeID int64, call func() (T, error)) (*Mutation, error) {
	m := t.begin(op)
	item, err := call()
	if err != nil {
		t.settle(m, StateRolledBack)
		log.Warn("Mutation rolled back",
			zap.String("mutation_id", m.ID.String()),
			zap.Error(err))
		return m, err
	}

	switch op {
	case OpAppend:
		c.append(item)
	case OpReplace:
		c.replace(item)
	case OpRemove:
		c.remove(removeID)
	}
	t.settle(m, StateCommitted)
	return m, nil
}
