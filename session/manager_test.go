package session

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/fajrulhm/perpus-admin/config"
	"github.com/fajrulhm/perpus-admin/store"
	"github.com/fajrulhm/perpus-admin/store/db"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	config.Opts = config.GetDefaultOptions()

	dir, err := os.MkdirTemp("", "perpus-admin-session")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	config.Opts.DSN = dir + "/sessions.db"
	testDB, err := db.NewDB()
	require.NoError(t, err)
	t.Cleanup(func() { testDB.Close() })
	require.NoError(t, testDB.Migrate(context.Background()))

	return NewManager(store.NewStore(testDB.DB))
}

func TestEnsureSessionIssuesCookieOnce(t *testing.T) {
	m := newTestManager(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/dashboard", nil)
	id, isNew, err := m.EnsureSession(w, r)
	require.NoError(t, err)
	require.True(t, isNew)
	require.NotEmpty(t, id)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, config.Opts.SessionCookie, cookies[0].Name)

	// Second request with the cookie resolves to the same session.
	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest("GET", "/dashboard", nil)
	r2.AddCookie(cookies[0])
	id2, isNew2, err := m.EnsureSession(w2, r2)
	require.NoError(t, err)
	require.False(t, isNew2)
	require.Equal(t, id, id2)
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	id, _, err := m.EnsureSession(w, r)
	require.NoError(t, err)

	token, err := m.Token(id)
	require.NoError(t, err)
	require.Empty(t, token)

	require.NoError(t, m.SetToken(id, "bearer-xyz"))
	token, err = m.Token(id)
	require.NoError(t, err)
	require.Equal(t, "bearer-xyz", token)

	require.NoError(t, m.Clear(id))
	token, err = m.Token(id)
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestSubscribeSeesTokenChanges(t *testing.T) {
	m := newTestManager(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	id, _, err := m.EnsureSession(w, r)
	require.NoError(t, err)

	events := m.Subscribe()
	require.NoError(t, m.SetToken(id, "tok"))
	require.NoError(t, m.Clear(id))

	ev := <-events
	require.Equal(t, id, ev.SessionID)
	require.Equal(t, "tok", ev.Token)

	ev = <-events
	require.Equal(t, id, ev.SessionID)
	require.Empty(t, ev.Token)
}
