package revision

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/catchzone151-stack/IslamQuest-sub001/internal/progress"
	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
)

// QuestionBank serves the full question set of a learning path. Smart
// sessions sample from the whole bank, not just the weak pool.
type QuestionBank interface {
	QuestionsForPath(pathID string) []models.Question
	PathIDs() []string
}

// Config holds the explicit pool-curation policy
type Config struct {
	// RemoveAfterCorrectReviews drops an item from the pool once it has
	// been reviewed correctly this many times. 0 means never remove,
	// which is the default behavior.
	RemoveAfterCorrectReviews int
}

// Manager owns the weak-question pool: insertion on miss, review-session
// generation and review-outcome recording. All operations are local and
// never touch the network.
type Manager struct {
	store *progress.Store
	bank  QuestionBank
	cfg   Config
	rng   *rand.Rand
}

// NewManager creates a pool manager over the given store and bank
func NewManager(store *progress.Store, bank QuestionBank, cfg Config) *Manager {
	return &Manager{
		store: store,
		bank:  bank,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RecordMiss registers an incorrect answer. The first miss inserts a pool
// item with TimesWrong=1; later misses for the same question only bump the
// counter, so recording is idempotent on the item key.
func (m *Manager) RecordMiss(q models.Question, pathID, lessonID string) {
	if pathID == "" || lessonID == "" {
		return
	}
	q.PathID = pathID
	q.LessonID = lessonID
	itemID := q.ItemID()

	if existing, ok := m.store.GetPoolItem(itemID); ok {
		existing.TimesWrong++
		m.store.PutPoolItem(existing)
		return
	}

	m.store.PutPoolItem(models.WeakQuestionItem{
		ItemID:        itemID,
		LessonID:      lessonID,
		PathID:        pathID,
		Prompt:        q.Prompt,
		Options:       q.Options,
		CorrectOption: q.CorrectOption,
		TimesWrong:    1,
		FirstWrongAt:  time.Now().UTC(),
	})
}

// BuildMistakesSession picks up to maxCount weak questions, never-reviewed
// items first, then by how often they were missed. Order within those
// strata is randomized so sessions aren't memorizable.
func (m *Manager) BuildMistakesSession(maxCount int) []models.WeakQuestionItem {
	if maxCount <= 0 {
		return []models.WeakQuestionItem{}
	}
	pool := m.store.Pool()

	// Shuffle first, then stable-sort: equal-priority items keep a random
	// relative order while the priority strata stay intact.
	m.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].ReviewedOnce != pool[j].ReviewedOnce {
			return !pool[i].ReviewedOnce
		}
		return pool[i].TimesWrong > pool[j].TimesWrong
	})

	if len(pool) > maxCount {
		pool = pool[:maxCount]
	}
	return pool
}

// BuildSmartSession samples up to maxCount questions from the full bank of
// the path the learner is struggling with most. Mistake density per path is
// 1 - exp(-wrong/completed): zero mistakes gives density 0, one mistake per
// completed lesson already ≈0.63, so a path with recent mistakes dominates.
// With no mistakes anywhere it falls back to the most-completed path.
func (m *Manager) BuildSmartSession(maxCount int) []models.Question {
	if maxCount <= 0 || m.bank == nil {
		return []models.Question{}
	}

	wrongByPath := map[string]int{}
	for _, it := range m.store.Pool() {
		wrongByPath[it.PathID] += it.TimesWrong
	}
	completed := m.store.CompletedLessons()

	targetPath := ""
	bestDensity := 0.0
	for pathID, wrong := range wrongByPath {
		if wrong == 0 {
			continue
		}
		density := 1.0
		if done := completed[pathID]; done > 0 {
			density = 1.0 - math.Exp(-float64(wrong)/float64(done))
		}
		if density > bestDensity {
			bestDensity = density
			targetPath = pathID
		}
	}

	if targetPath == "" {
		mostDone := 0
		for pathID, done := range completed {
			if done > mostDone {
				mostDone = done
				targetPath = pathID
			}
		}
	}
	if targetPath == "" {
		return []models.Question{}
	}

	questions := m.bank.QuestionsForPath(targetPath)
	m.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	if len(questions) > maxCount {
		questions = questions[:maxCount]
	}
	return questions
}

// MarkReviewed records a review outcome for a pool item. Unknown item IDs
// are ignored. Removal only happens through the explicit configuration.
func (m *Manager) MarkReviewed(itemID string, wasCorrect bool) {
	item, ok := m.store.GetPoolItem(itemID)
	if !ok {
		return
	}

	now := time.Now().UTC()
	item.ReviewedOnce = true
	item.LastReviewedAt = &now
	if wasCorrect {
		item.TimesCorrect++
	} else {
		item.TimesWrong++
	}

	if wasCorrect && m.cfg.RemoveAfterCorrectReviews > 0 &&
		item.TimesCorrect >= m.cfg.RemoveAfterCorrectReviews {
		m.store.RemovePoolItem(itemID)
		return
	}
	m.store.PutPoolItem(item)
}
