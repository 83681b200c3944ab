package events

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/catchzone151-stack/IslamQuest-sub001/internal/progress"
	"github.com/catchzone151-stack/IslamQuest-sub001/internal/remote"
	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventRemote is the slice of the remote store the ranking engine needs
type EventRemote interface {
	ExistsEventEntry(ctx context.Context, userID, eventID, weekID string) (bool, error)
	InsertEventEntry(ctx context.Context, entry models.EventEntry) error
	CountEntriesWithHigherScore(ctx context.Context, eventID, weekID string, score int) (int, error)
	CountEntriesWithEqualScoreFasterTime(ctx context.Context, eventID, weekID string, score int, completionTime *float64) (int, error)
	ReadLeaderboard(ctx context.Context, eventID, weekID string, limit int) ([]models.EventEntry, error)
	ClaimEventEntry(ctx context.Context, entryID uuid.UUID, finalRank int) (bool, error)
}

// Engine runs the weekly competitive events: one entry per user/event/week,
// provisional and final rank computation, and exactly-once reward
// settlement. The remote row constraints carry the cross-device guarantees;
// the engine turns them into the error taxonomy callers render.
type Engine struct {
	store    *progress.Store
	remote   EventRemote
	log      *zap.Logger
	entryFee int
	now      func() time.Time

	mu          sync.Mutex
	cachedWeek  string
	leaderboard map[string][]models.EventEntry // "event:week" -> ordered entries
	viewed      map[string]bool                // "event:week" -> results seen
}

// NewEngine creates the ranking engine for one user's store
func NewEngine(store *progress.Store, remote EventRemote, entryFee int, log *zap.Logger) *Engine {
	return &Engine{
		store:       store,
		remote:      remote,
		log:         log,
		entryFee:    entryFee,
		now:         time.Now,
		leaderboard: map[string][]models.EventEntry{},
		viewed:      map[string]bool{},
	}
}

// rolloverCheck drops the in-memory caches when the week changes. Must be
// called with the lock held. Remote history is untouched.
func (e *Engine) rolloverCheck(week string) {
	if e.cachedWeek != week {
		e.cachedWeek = week
		e.leaderboard = map[string][]models.EventEntry{}
		e.viewed = map[string]bool{}
	}
}

// SubmitEntry admits one entry per (user, event, week). The pre-insert
// existence check covers the common path; the remote uniqueness constraint
// covers the race, and its conflict maps to the same ErrAlreadyEntered.
// On success the provisional rank is returned and the entry fee debited.
func (e *Engine) SubmitEntry(ctx context.Context, eventID string, score int, answers []int64, completionTime *float64) (int, error) {
	userID := e.store.UserID()
	if userID == "" {
		return 0, ErrNotAuthenticated
	}
	weekID := WeekID(e.now())

	if e.entryFee > 0 && e.store.Profile().Coins < e.entryFee {
		return 0, ErrInsufficientCoins
	}

	exists, err := e.remote.ExistsEventEntry(ctx, userID, eventID, weekID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if exists {
		return 0, ErrAlreadyEntered
	}

	higher, err := e.remote.CountEntriesWithHigherScore(ctx, eventID, weekID, score)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	faster, err := e.remote.CountEntriesWithEqualScoreFasterTime(ctx, eventID, weekID, score, completionTime)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	provisionalRank := higher + faster + 1

	entry := models.EventEntry{
		ID:              uuid.New(),
		UserID:          userID,
		EventID:         eventID,
		WeekID:          weekID,
		Score:           score,
		Answers:         answers,
		CompletionTime:  completionTime,
		ProvisionalRank: provisionalRank,
		CreatedAt:       e.now().UTC(),
	}
	if err := e.remote.InsertEventEntry(ctx, entry); err != nil {
		if errors.Is(err, remote.ErrConflict) {
			return 0, ErrAlreadyEntered
		}
		return 0, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	if e.entryFee > 0 && !e.store.SpendCoins(e.entryFee) {
		// Balance moved between check and debit; the entry stands, the
		// fee is simply forgiven rather than driving coins negative.
		e.log.Warn("entry fee could not be debited", zap.String("event", eventID))
	}

	e.mu.Lock()
	e.rolloverCheck(weekID)
	delete(e.leaderboard, cacheKey(eventID, weekID))
	e.mu.Unlock()

	return provisionalRank, nil
}

// sortEntries orders a week's full entry set by the final-rank criteria:
// score descending, completion time ascending with missing times last,
// then submission time. Rank is the 1-based position in this order.
func sortEntries(entries []models.EventEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		switch {
		case a.CompletionTime == nil && b.CompletionTime == nil:
		case a.CompletionTime == nil:
			return false
		case b.CompletionTime == nil:
			return true
		case *a.CompletionTime != *b.CompletionTime:
			return *a.CompletionTime < *b.CompletionTime
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// ComputeFinalRank returns the user's 1-based rank over the closed week's
// full entry set, or ErrEntryNotFound when the user did not enter it.
func (e *Engine) ComputeFinalRank(ctx context.Context, eventID string) (int, error) {
	userID := e.store.UserID()
	if userID == "" {
		return 0, ErrNotAuthenticated
	}
	weekID := ClosedWeekID(e.now())

	entries, err := e.remote.ReadLeaderboard(ctx, eventID, weekID, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	sortEntries(entries)
	for i, entry := range entries {
		if entry.UserID == userID {
			return i + 1, nil
		}
	}
	return 0, ErrEntryNotFound
}

// RewardsForRank is the pure rank → payout lookup
func RewardsForRank(rank int) models.Rewards {
	switch {
	case rank == 1:
		return models.Rewards{XP: 1000, Coins: 300}
	case rank <= 3:
		return models.Rewards{XP: 750, Coins: 200}
	case rank <= 10:
		return models.Rewards{XP: 500, Coins: 100}
	default:
		return models.Rewards{XP: 100, Coins: 10}
	}
}

// ClaimRewards settles the user's entry for the closed week: computes the
// final rank, flips rewards_claimed and records the rank in one conditional
// row update, then credits the payout locally. The flag flip is the sole
// double-credit guard, so crediting happens strictly after it succeeds.
func (e *Engine) ClaimRewards(ctx context.Context, eventID string) (int, models.Rewards, error) {
	userID := e.store.UserID()
	if userID == "" {
		return 0, models.Rewards{}, ErrNotAuthenticated
	}
	weekID := ClosedWeekID(e.now())

	entries, err := e.remote.ReadLeaderboard(ctx, eventID, weekID, 0)
	if err != nil {
		return 0, models.Rewards{}, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	sortEntries(entries)

	rank := 0
	var entry models.EventEntry
	for i, candidate := range entries {
		if candidate.UserID == userID {
			rank = i + 1
			entry = candidate
			break
		}
	}
	if rank == 0 {
		return 0, models.Rewards{}, ErrEntryNotFound
	}
	if entry.RewardsClaimed {
		return 0, models.Rewards{}, ErrAlreadyClaimed
	}

	claimed, err := e.remote.ClaimEventEntry(ctx, entry.ID, rank)
	if err != nil {
		return 0, models.Rewards{}, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if !claimed {
		return 0, models.Rewards{}, ErrAlreadyClaimed
	}

	rewards := RewardsForRank(rank)
	e.store.CreditRewards(rewards)
	e.log.Info("event rewards claimed",
		zap.String("event", eventID),
		zap.String("week", weekID),
		zap.Int("rank", rank))
	return rank, rewards, nil
}

// Leaderboard returns the current week's top entries, read through the
// per-week cache. The cache empties on week rollover.
func (e *Engine) Leaderboard(ctx context.Context, eventID string, limit int) ([]models.EventEntry, error) {
	weekID := WeekID(e.now())
	key := cacheKey(eventID, weekID)

	e.mu.Lock()
	e.rolloverCheck(weekID)
	if cached, ok := e.leaderboard[key]; ok {
		e.mu.Unlock()
		return cached, nil
	}
	e.mu.Unlock()

	entries, err := e.remote.ReadLeaderboard(ctx, eventID, weekID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	sortEntries(entries)

	e.mu.Lock()
	e.leaderboard[key] = entries
	e.mu.Unlock()
	return entries, nil
}

// MarkResultsViewed remembers that the user has seen the closed week's
// results, so the results dialog is shown once per week.
func (e *Engine) MarkResultsViewed(eventID string) {
	weekID := ClosedWeekID(e.now())
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rolloverCheck(WeekID(e.now()))
	e.viewed[cacheKey(eventID, weekID)] = true
}

// ResultsViewed reports whether the closed week's results were already seen
func (e *Engine) ResultsViewed(eventID string) bool {
	weekID := ClosedWeekID(e.now())
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewed[cacheKey(eventID, weekID)]
}

func cacheKey(eventID, weekID string) string {
	return eventID + ":" + weekID
}
