package models

import (
	"time"

	"github.com/google/uuid"
)

// EventEntry is one user's submission for a weekly event. At most one row
// exists per (user_id, event_id, week_id); the rewards_claimed flag is the
// guard that makes reward settlement exactly-once.
type EventEntry struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	EventID         string    `json:"event_id" db:"event_id"`
	WeekID          string    `json:"week_id" db:"week_id"`
	Score           int       `json:"score" db:"score"`
	Answers         []int64   `json:"answers" db:"answers"`
	CompletionTime  *float64  `json:"completion_time" db:"completion_time"` // Seconds, nil when the client did not report one
	ProvisionalRank int       `json:"provisional_rank" db:"provisional_rank"`
	FinalRank       *int      `json:"final_rank" db:"final_rank"`
	RewardsClaimed  bool      `json:"rewards_claimed" db:"rewards_claimed"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
