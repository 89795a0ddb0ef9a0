// Package session is the single read/write boundary for the bearer token.
// Every other component goes through the Manager instead of reading ambient
// state, and token changes fan out to subscribers so page state can be
// dropped when a session logs in or out.
package session

import (
	"net/http"
	"sync"

	"github.com/fajrulhm/perpus-admin/config"
	"github.com/fajrulhm/perpus-admin/log"
	"github.com/fajrulhm/perpus-admin/model"
	"github.com/fajrulhm/perpus-admin/store"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Event is delivered on every token change. An empty Token means the
// session logged out.
type Event struct {
	SessionID string
	Token     string
}

type Manager struct {
	store *store.Store

	mu   sync.Mutex
	subs []chan Event
}

func NewManager(store *store.Store) *Manager {
	return &Manager{store: store}
}

// EnsureSession returns the browser session id from the request cookie,
// issuing a new session (and cookie) when there is none. isNew reports that
// this request is the session's first contact, which the guard uses to
// suppress the access-denied notice on first load.
func (m *Manager) EnsureSession(w http.ResponseWriter, r *http.Request) (id string, isNew bool, err error) {
	if cookie, cerr := r.Cookie(config.Opts.SessionCookie); cerr == nil && cookie.Value != "" {
		found, gerr := m.store.GetSession(&model.FindSession{ID: &cookie.Value})
		if gerr != nil {
			return "", false, errors.Wrap(gerr, "look up session")
		}
		if found != nil {
			return found.ID, false, nil
		}
		// Stale cookie from a wiped database: fall through and reissue.
	}

	id = uuid.NewString()
	if _, err := m.store.CreateSession(&model.Session{ID: id}); err != nil {
		return "", false, errors.Wrap(err, "create session")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     config.Opts.SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, true, nil
}

// Token returns the bearer token for a session. The empty string means not
// logged in; presence is the only signal checked, never validity.
func (m *Manager) Token(sessionID string) (string, error) {
	found, err := m.store.GetSession(&model.FindSession{ID: &sessionID})
	if err != nil {
		return "", errors.Wrap(err, "look up session")
	}
	if found == nil {
		return "", nil
	}
	return found.Token, nil
}

func (m *Manager) SetToken(sessionID, token string) error {
	if _, err := m.store.UpsertSessionToken(sessionID, token); err != nil {
		return errors.Wrap(err, "persist token")
	}
	m.notify(Event{SessionID: sessionID, Token: token})
	return nil
}

func (m *Manager) Clear(sessionID string) error {
	if _, err := m.store.UpsertSessionToken(sessionID, ""); err != nil {
		return errors.Wrap(err, "clear token")
	}
	m.notify(Event{SessionID: sessionID})
	return nil
}

// Subscribe returns a channel of token-change events. Delivery is best
// effort: a subscriber that stops draining loses events instead of blocking
// the login path.
func (m *Manager) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

func (m *Manager) notify(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- ev:
		default:
			log.Warn("Dropping session event, subscriber not draining",
				zap.String("session_id", ev.SessionID))
		}
	}
}
