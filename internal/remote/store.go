package remote

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrConflict reports that an insert hit the row uniqueness constraint.
// The events engine maps it to "already entered": the constraint is the
// only cross-process mutual exclusion the system relies on.
var ErrConflict = errors.New("remote: row already exists")

// Store is the adapter over the network-backed authoritative store. Every
// method can fail with a plain network/database error; callers are expected
// to degrade to local state.
type Store struct {
	db *sqlx.DB
}

// Connect opens the remote postgres store and ensures the schema exists
func Connect(dsn string) (*Store, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to remote store: %v", err)
	}
	s := &Store{db: db}
	if err := s.createTablesIfNotExists(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an existing connection, mainly for tests
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying connection
func (s *Store) Close() error {
	return s.db.Close()
}

func ddlStrings() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS revision_items (
			user_id VARCHAR(128) NOT NULL,
			lesson_id VARCHAR(128) NOT NULL,
			item_id VARCHAR(256) NOT NULL,
			path_id VARCHAR(128) NOT NULL,
			prompt TEXT NOT NULL,
			options TEXT[] NOT NULL,
			correct_option INT NOT NULL DEFAULT 0,
			times_wrong INT NOT NULL DEFAULT 1,
			times_correct INT NOT NULL DEFAULT 0,
			reviewed_once BOOLEAN NOT NULL DEFAULT FALSE,
			last_reviewed_at TIMESTAMP,
			first_wrong_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, lesson_id, item_id)
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id VARCHAR(128) PRIMARY KEY,
			xp INT NOT NULL DEFAULT 0,
			coins INT NOT NULL DEFAULT 0,
			streak INT NOT NULL DEFAULT 0,
			last_streak_update TIMESTAMP NOT NULL DEFAULT 'epoch',
			shield_count INT NOT NULL DEFAULT 0,
			last_xp_gain TIMESTAMP NOT NULL DEFAULT 'epoch',
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS event_entries (
			id UUID PRIMARY KEY,
			user_id VARCHAR(128) NOT NULL,
			event_id VARCHAR(128) NOT NULL,
			week_id VARCHAR(32) NOT NULL,
			score INT NOT NULL DEFAULT 0,
			answers INT[] NOT NULL DEFAULT '{}',
			completion_time DOUBLE PRECISION,
			provisional_rank INT NOT NULL DEFAULT 0,
			final_rank INT,
			rewards_claimed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, event_id, week_id)
		)`,
	}
}

func (s *Store) createTablesIfNotExists() error {
	for i, ddl := range ddlStrings() {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("error creating table %d: %w", i, err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is the postgres unique_violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
