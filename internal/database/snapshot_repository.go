package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
	"github.com/jmoiron/sqlx"
)

// SnapshotRepository persists the single serialized local-state record
// per user. The whole snapshot is rewritten after every mutation.
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates a new repository instance
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load reads the snapshot for a user. A missing row yields an empty,
// normalized snapshot rather than an error.
func (r *SnapshotRepository) Load(userID string) (*models.Snapshot, error) {
	var payload string
	err := r.db.Get(&payload, "SELECT payload FROM progress_snapshots WHERE user_id = $1", userID)
	if errors.Is(err, sql.ErrNoRows) {
		snap := &models.Snapshot{}
		snap.Normalize()
		return snap, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %v", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %v", err)
	}
	snap.Normalize()
	return &snap, nil
}

// SaveSnapshot serializes and upserts the snapshot row for a user
func (r *SnapshotRepository) SaveSnapshot(userID string, snap *models.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %v", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO progress_snapshots (user_id, payload, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP
	`, userID, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %v", err)
	}
	return nil
}
