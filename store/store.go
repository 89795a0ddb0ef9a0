package store

import (
	"database/sql"
	"sync"
)

type Store struct {
	db           *sql.DB
	sessionCache sync.Map // map[string]*model.Session
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}
