package store

import (
	"strings"
	"time"

	"github.com/fajrulhm/perpus-admin/model"
)

func (s *Store) GetSession(find *model.FindSession) (*model.Session, error) {
	if find.ID != nil {
		if cache, ok := s.sessionCache.Load(*find.ID); ok {
			return cache.(*model.Session), nil
		}
	}

	list, err := s.ListSessions(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	session := list[0]
	s.sessionCache.Store(session.ID, session)
	return session, nil
}

func (s *Store) ListSessions(find *model.FindSession) ([]*model.Session, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}

	query := `
		SELECT id, token, created_ts, updated_ts
		FROM session
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC
	`
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*model.Session{}
	for rows.Next() {
		var session model.Session
		if err := rows.Scan(&session.ID, &session.Token, &session.CreatedTs, &session.UpdatedTs); err != nil {
			return nil, err
		}
		list = append(list, &session)
	}
	return list, rows.Err()
}

func (s *Store) CreateSession(session *model.Session) (*model.Session, error) {
	now := time.Now().Unix()
	session.CreatedTs = now
	session.UpdatedTs = now

	stmt := `
		INSERT INTO session (id, token, created_ts, updated_ts)
		VALUES (?, ?, ?, ?)
	`
	if _, err := s.db.Exec(stmt, session.ID, session.Token, session.CreatedTs, session.UpdatedTs); err != nil {
		return nil, err
	}

	s.sessionCache.Store(session.ID, session)
	return session, nil
}

// UpsertSessionToken sets the token for an existing session, creating the
// row if it is missing. An empty token means logged out.
func (s *Store) UpsertSessionToken(id, token string) (*model.Session, error) {
	now := time.Now().Unix()
	stmt := `
		INSERT INTO session (id, token, created_ts, updated_ts)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = EXCLUDED.token, updated_ts = EXCLUDED.updated_ts
	`
	if _, err := s.db.Exec(stmt, id, token, now, now); err != nil {
		return nil, err
	}

	s.sessionCache.Delete(id)
	return s.GetSession(&model.FindSession{ID: &id})
}

func (s *Store) DeleteSession(id string) error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE id = ?`, id); err != nil {
		return err
	}
	s.sessionCache.Delete(id)
	return nil
}
