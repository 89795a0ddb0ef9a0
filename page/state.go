package page

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/fajrulhm/perpus-admin/model"
	"github.com/fajrulhm/perpus-admin/session"
)

var stateSeq uint64

// State is the live state of one page visit: the collections fetched at
// mount and the mutation tracker. It exists from the page GET until the
// next visit to the same route replaces it, and its context dies with it so
// a stale fetch can never patch a superseded visit.
type State struct {
	Route string

	// Gen distinguishes visits: collection versions restart at zero on a
	// new visit, so memo keys include the generation.
	Gen uint64

	Books   *Collection[model.Book]
	Members *Collection[model.Member]
	Loans   *Collection[model.Loan]
	Fines   *Collection[model.Fine]

	Mutations *Tracker

	ctx    context.Context
	cancel context.CancelFunc
}

func NewState(parent context.Context, route string) *State {
	ctx, cancel := context.WithCancel(parent)
	return &State{
		Route:     route,
		Gen:       atomic.AddUint64(&stateSeq, 1),
		Books:     NewCollection(func(b model.Book) int64 { return b.ID }),
		Members:   NewCollection(func(m model.Member) int64 { return m.ID }),
		Loans:     NewCollection(func(l model.Loan) int64 { return l.ID }),
		Fines:     NewCollection(func(f model.Fine) int64 { return f.ID }),
		Mutations: NewTracker(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Context is the lifetime of this visit; fetches run under it.
func (s *State) Context() context.Context {
	return s.ctx
}

// Close cancels any in-flight work for this visit.
func (s *State) Close() {
	s.cancel()
}

// Registry maps (session, route) to the current page state. Swapping in a
// new state closes the old one, which is what makes navigation-away cancel
// outstanding fetches.
type Registry struct {
	mu     sync.Mutex
	states map[string]map[string]*State
}

func NewRegistry() *Registry {
	return &Registry{states: map[string]map[string]*State{}}
}

func (r *Registry) Swap(sessionID string, state *State) {
	r.mu.Lock()
	routes, ok := r.states[sessionID]
	if !ok {
		routes = map[string]*State{}
		r.states[sessionID] = routes
	}
	old := routes[state.Route]
	routes[state.Route] = state
	r.mu.Unlock()

	if old != nil {
		old.Close()
	}
}

func (r *Registry) Get(sessionID, route string) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	routes, ok := r.states[sessionID]
	if !ok {
		return nil, false
	}
	state, ok := routes[route]
	return state, ok
}

// DropSession closes and forgets every page of a session. Called on logout
// and on token change.
func (r *Registry) DropSession(sessionID string) {
	r.mu.Lock()
	routes := r.states[sessionID]
	delete(r.states, sessionID)
	r.mu.Unlock()

	for _, state := range routes {
		state.Close()
	}
}

// Watch drops a session's pages whenever its token changes, so the next
// render starts from a fresh fetch under the new identity.
func (r *Registry) Watch(events <-chan session.Event) {
	for ev := range events {
		r.DropSession(ev.SessionID)
	}
}
