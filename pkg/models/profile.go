package models

import "time"

// ProfileAggregate is the per-user progress row reconciled between the
// local store and the remote profiles table. The two timestamped field
// groups (streak group, xp group) are merged independently during sync.
type ProfileAggregate struct {
	XP               int       `json:"xp" db:"xp"`
	Coins            int       `json:"coins" db:"coins"`
	Streak           int       `json:"streak" db:"streak"`
	LastStreakUpdate time.Time `json:"last_streak_update" db:"last_streak_update"`
	ShieldCount      int       `json:"shield_count" db:"shield_count"`
	LastXPGain       time.Time `json:"last_xp_gain" db:"last_xp_gain"`
}
