package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type eventEntryRow struct {
	ID              uuid.UUID     `db:"id"`
	UserID          string        `db:"user_id"`
	EventID         string        `db:"event_id"`
	WeekID          string        `db:"week_id"`
	Score           int           `db:"score"`
	Answers         pq.Int64Array `db:"answers"`
	CompletionTime  *float64      `db:"completion_time"`
	ProvisionalRank int           `db:"provisional_rank"`
	FinalRank       *int          `db:"final_rank"`
	RewardsClaimed  bool          `db:"rewards_claimed"`
	CreatedAt       time.Time     `db:"created_at"`
}

func (r eventEntryRow) toModel() models.EventEntry {
	return models.EventEntry{
		ID:              r.ID,
		UserID:          r.UserID,
		EventID:         r.EventID,
		WeekID:          r.WeekID,
		Score:           r.Score,
		Answers:         []int64(r.Answers),
		CompletionTime:  r.CompletionTime,
		ProvisionalRank: r.ProvisionalRank,
		FinalRank:       r.FinalRank,
		RewardsClaimed:  r.RewardsClaimed,
		CreatedAt:       r.CreatedAt,
	}
}

// ExistsEventEntry reports whether a user already entered this event week
func (s *Store) ExistsEventEntry(ctx context.Context, userID, eventID, weekID string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM event_entries
		WHERE user_id = $1 AND event_id = $2 AND week_id = $3
	`, userID, eventID, weekID)
	if err != nil {
		return false, fmt.Errorf("failed to check event entry: %v", err)
	}
	return count > 0, nil
}

// InsertEventEntry inserts a new entry. A second insert for the same
// (user, event, week) triple fails with ErrConflict; the uniqueness
// constraint closes the check-then-insert race across devices.
func (s *Store) InsertEventEntry(ctx context.Context, entry models.EventEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO event_entries (
			id, user_id, event_id, week_id, score, answers, completion_time,
			provisional_rank, final_rank, rewards_claimed, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		entry.ID, entry.UserID, entry.EventID, entry.WeekID, entry.Score,
		pq.Int64Array(entry.Answers), entry.CompletionTime,
		entry.ProvisionalRank, entry.FinalRank, entry.RewardsClaimed, entry.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to insert event entry: %v", err)
	}
	return nil
}

// CountEntriesWithHigherScore counts entries strictly above a score
func (s *Store) CountEntriesWithHigherScore(ctx context.Context, eventID, weekID string, score int) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM event_entries
		WHERE event_id = $1 AND week_id = $2 AND score > $3
	`, eventID, weekID, score)
	if err != nil {
		return 0, fmt.Errorf("failed to count higher scores: %v", err)
	}
	return count, nil
}

// CountEntriesWithEqualScoreFasterTime counts same-score entries with a
// strictly faster completion time. Entries without a reported time never
// count as faster.
func (s *Store) CountEntriesWithEqualScoreFasterTime(ctx context.Context, eventID, weekID string, score int, completionTime *float64) (int, error) {
	if completionTime == nil {
		// No time reported: every timed same-score entry outranks it
		var count int
		err := s.db.GetContext(ctx, &count, `
			SELECT COUNT(*) FROM event_entries
			WHERE event_id = $1 AND week_id = $2 AND score = $3
			  AND completion_time IS NOT NULL
		`, eventID, weekID, score)
		if err != nil {
			return 0, fmt.Errorf("failed to count faster times: %v", err)
		}
		return count, nil
	}

	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM event_entries
		WHERE event_id = $1 AND week_id = $2 AND score = $3
		  AND completion_time IS NOT NULL AND completion_time < $4
	`, eventID, weekID, score, *completionTime)
	if err != nil {
		return 0, fmt.Errorf("failed to count faster times: %v", err)
	}
	return count, nil
}

// ReadLeaderboard returns a week's entries ordered by final-rank criteria:
// score descending, completion time ascending with nulls last, then
// submission time. limit <= 0 reads the full entry set.
func (s *Store) ReadLeaderboard(ctx context.Context, eventID, weekID string, limit int) ([]models.EventEntry, error) {
	query := `
		SELECT id, user_id, event_id, week_id, score, answers, completion_time,
		       provisional_rank, final_rank, rewards_claimed, created_at
		FROM event_entries
		WHERE event_id = $1 AND week_id = $2
		ORDER BY score DESC, completion_time ASC NULLS LAST, created_at ASC
	`
	args := []interface{}{eventID, weekID}
	if limit > 0 {
		query += " LIMIT $3"
		args = append(args, limit)
	}

	var rows []eventEntryRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %v", err)
	}

	entries := make([]models.EventEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.toModel())
	}
	return entries, nil
}

// ClaimEventEntry finalizes an entry in a single conditional row update:
// the rewards_claimed flag flips exactly once, recording the final rank in
// the same statement. Returns false when the entry was already claimed.
func (s *Store) ClaimEventEntry(ctx context.Context, entryID uuid.UUID, finalRank int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE event_entries
		SET final_rank = $1, rewards_claimed = TRUE
		WHERE id = $2 AND rewards_claimed = FALSE
	`, finalRank, entryID)
	if err != nil {
		return false, fmt.Errorf("failed to claim event entry: %v", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %v", err)
	}
	return rows == 1, nil
}
