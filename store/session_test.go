package store

import (
	"context"
	"os"
	"testing"

	"github.com/fajrulhm/perpus-admin/config"
	"github.com/fajrulhm/perpus-admin/model"
	"github.com/fajrulhm/perpus-admin/store/db"
)

func init() {
	config.Opts = config.GetDefaultOptions()
}

func createTestDB(t *testing.T) *db.DB {
	t.Helper()
	dir, err := os.MkdirTemp("", "perpus-admin-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	config.Opts.DSN = dir + "/session_test.db"
	testDB, err := db.NewDB()
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { testDB.Close() })

	if err := testDB.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	return testDB
}

func TestSessionTokenLifecycle(t *testing.T) {
	testDB := createTestDB(t)
	s := NewStore(testDB.DB)

	created, err := s.CreateSession(&model.Session{ID: "sess-1"})
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if created.Token != "" {
		t.Fatalf("New session should have no token, got %q", created.Token)
	}

	if _, err := s.UpsertSessionToken("sess-1", "token-abc"); err != nil {
		t.Fatalf("Failed to set token: %v", err)
	}

	id := "sess-1"
	got, err := s.GetSession(&model.FindSession{ID: &id})
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if got == nil || got.Token != "token-abc" {
		t.Fatalf("Expected token-abc, got %+v", got)
	}

	// Clearing is just an upsert with an empty token.
	if _, err := s.UpsertSessionToken("sess-1", ""); err != nil {
		t.Fatalf("Failed to clear token: %v", err)
	}
	got, err = s.GetSession(&model.FindSession{ID: &id})
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if got.Token != "" {
		t.Fatalf("Expected cleared token, got %q", got.Token)
	}

	if err := s.DeleteSession("sess-1"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	got, err = s.GetSession(&model.FindSession{ID: &id})
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if got != nil {
		t.Fatalf("Expected session to be gone, got %+v", got)
	}
}

func TestUpsertSessionTokenCreatesRow(t *testing.T) {
	testDB := createTestDB(t)
	s := NewStore(testDB.DB)

	if _, err := s.UpsertSessionToken("fresh", "tok"); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}
	id := "fresh"
	got, err := s.GetSession(&model.FindSession{ID: &id})
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if got == nil || got.Token != "tok" {
		t.Fatalf("Expected upsert to create the row, got %+v", got)
	}
}
