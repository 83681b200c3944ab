package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
)

// ReadProfile pulls the remote profile aggregate for a user. A missing row
// yields (nil, nil): the user has simply never synced from another device.
func (s *Store) ReadProfile(ctx context.Context, userID string) (*models.ProfileAggregate, error) {
	var p models.ProfileAggregate
	err := s.db.GetContext(ctx, &p, `
		SELECT xp, coins, streak, last_streak_update, shield_count, last_xp_gain
		FROM profiles
		WHERE user_id = $1
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %v", err)
	}
	return &p, nil
}

// UpsertProfile pushes the merged local aggregate unconditionally
func (s *Store) UpsertProfile(ctx context.Context, userID string, p models.ProfileAggregate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (
			user_id, xp, coins, streak, last_streak_update, shield_count,
			last_xp_gain, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			xp = EXCLUDED.xp,
			coins = EXCLUDED.coins,
			streak = EXCLUDED.streak,
			last_streak_update = EXCLUDED.last_streak_update,
			shield_count = EXCLUDED.shield_count,
			last_xp_gain = EXCLUDED.last_xp_gain,
			updated_at = NOW()
	`, userID, p.XP, p.Coins, p.Streak, p.LastStreakUpdate, p.ShieldCount, p.LastXPGain)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %v", err)
	}
	return nil
}
