package progress

import (
	"sync"
	"time"

	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
	"go.uber.org/zap"
)

// Persister writes the serialized snapshot record after each mutation
type Persister interface {
	SaveSnapshot(userID string, snap *models.Snapshot) error
}

// Store is the device-local progress state: the single source of truth the
// rest of the application reads. All mutation goes through its methods under
// one mutex; every mutator rewrites the snapshot before returning. Persist
// failures are logged and the in-memory state kept, so gameplay callers
// never fail on local I/O.
type Store struct {
	mu        sync.Mutex
	userID    string
	snap      *models.Snapshot
	persister Persister
	log       *zap.Logger
}

// NewStore wraps a loaded snapshot in a store owned by the given user
func NewStore(userID string, snap *models.Snapshot, persister Persister, log *zap.Logger) *Store {
	snap.Normalize()
	return &Store{
		userID:    userID,
		snap:      snap,
		persister: persister,
		log:       log,
	}
}

// UserID returns the owning user's stable identifier
func (s *Store) UserID() string {
	return s.userID
}

// persist must be called with the lock held
func (s *Store) persist() {
	if err := s.persister.SaveSnapshot(s.userID, s.snap); err != nil {
		s.log.Warn("failed to persist progress snapshot", zap.Error(err))
	}
}

// Profile returns a copy of the profile aggregate
func (s *Store) Profile() models.ProfileAggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Profile
}

// SetProfile replaces the profile aggregate with a merged result
func (s *Store) SetProfile(p models.ProfileAggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Profile = p
	s.persist()
}

// AddXP credits experience points and stamps the xp field group
func (s *Store) AddXP(amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Profile.XP += amount
	s.snap.Profile.LastXPGain = time.Now().UTC()
	s.persist()
}

// SpendCoins debits coins, returning false when the balance is too low
func (s *Store) SpendCoins(amount int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount > s.snap.Profile.Coins {
		return false
	}
	s.snap.Profile.Coins -= amount
	s.persist()
	return true
}

// CreditRewards applies an event payout to the profile
func (s *Store) CreditRewards(r models.Rewards) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Profile.XP += r.XP
	s.snap.Profile.Coins += r.Coins
	s.snap.Profile.LastXPGain = time.Now().UTC()
	s.persist()
}

// RecordStreakDay advances the daily streak. A one-day gap extends the
// streak, a two-day gap consumes a shield if one is available, anything
// longer resets to 1. Repeat calls on the same UTC day are no-ops.
func (s *Store) RecordStreakDay() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	last := s.snap.Profile.LastStreakUpdate
	switch daysBetween(last, now) {
	case 0:
		return
	case 1:
		s.snap.Profile.Streak++
	case 2:
		if s.snap.Profile.ShieldCount > 0 {
			s.snap.Profile.ShieldCount--
			s.snap.Profile.Streak++
		} else {
			s.snap.Profile.Streak = 1
		}
	default:
		s.snap.Profile.Streak = 1
	}
	s.snap.Profile.LastStreakUpdate = now
	s.persist()
}

// daysBetween counts whole UTC calendar days from a to b
func daysBetween(a, b time.Time) int {
	ay := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	by := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(by.Sub(ay).Hours() / 24)
}

// CompleteLesson bumps the completed-lesson counter for a path
func (s *Store) CompleteLesson(pathID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.CompletedLessons[pathID]++
	s.persist()
}

// CompletedLessons returns a copy of the per-path completion counters
func (s *Store) CompletedLessons() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.snap.CompletedLessons))
	for k, v := range s.snap.CompletedLessons {
		out[k] = v
	}
	return out
}

// Pool returns a copy of the weak-question pool
func (s *Store) Pool() []models.WeakQuestionItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WeakQuestionItem, len(s.snap.WeakQuestions))
	copy(out, s.snap.WeakQuestions)
	return out
}

// GetPoolItem looks up a pool item by its stable key
func (s *Store) GetPoolItem(itemID string) (models.WeakQuestionItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.snap.WeakQuestions {
		if it.ItemID == itemID {
			return it, true
		}
	}
	return models.WeakQuestionItem{}, false
}

// PutPoolItem inserts a pool item, or replaces the existing item with the
// same ItemID. The ItemID uniqueness invariant is enforced here.
func (s *Store) PutPoolItem(item models.WeakQuestionItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.snap.WeakQuestions {
		if it.ItemID == item.ItemID {
			s.snap.WeakQuestions[i] = item
			s.persist()
			return
		}
	}
	s.snap.WeakQuestions = append(s.snap.WeakQuestions, item)
	s.persist()
}

// RemovePoolItem drops a pool item. Only the explicit mastery-removal
// configuration ever calls this; nothing removes items implicitly.
func (s *Store) RemovePoolItem(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.snap.WeakQuestions {
		if it.ItemID == itemID {
			s.snap.WeakQuestions = append(s.snap.WeakQuestions[:i], s.snap.WeakQuestions[i+1:]...)
			s.persist()
			return
		}
	}
}

// ReplacePool swaps in a merged pool produced by the sync orchestrator
func (s *Store) ReplacePool(items []models.WeakQuestionItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.WeakQuestions = items
	s.persist()
}
