package progress

import (
	"testing"
	"time"

	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingPersister struct {
	saves int
	last  *models.Snapshot
}

func (p *countingPersister) SaveSnapshot(_ string, snap *models.Snapshot) error {
	p.saves++
	p.last = snap
	return nil
}

func newTestStore() (*Store, *countingPersister) {
	p := &countingPersister{}
	return NewStore("user-1", &models.Snapshot{}, p, zap.NewNop()), p
}

func TestEveryMutationPersists(t *testing.T) {
	s, p := newTestStore()

	s.AddXP(10)
	s.CreditRewards(models.Rewards{XP: 5, Coins: 5})
	s.CompleteLesson("path-1")
	s.PutPoolItem(models.WeakQuestionItem{ItemID: "a", TimesWrong: 1})

	assert.Equal(t, 4, p.saves)
	assert.Equal(t, 15, p.last.Profile.XP)
}

func TestSpendCoins(t *testing.T) {
	s, _ := newTestStore()
	s.CreditRewards(models.Rewards{Coins: 100})

	assert.True(t, s.SpendCoins(60))
	assert.Equal(t, 40, s.Profile().Coins)
	assert.False(t, s.SpendCoins(60), "balance too low")
	assert.Equal(t, 40, s.Profile().Coins)
}

func TestPoolItemUniqueness(t *testing.T) {
	s, _ := newTestStore()

	s.PutPoolItem(models.WeakQuestionItem{ItemID: "a", TimesWrong: 1})
	s.PutPoolItem(models.WeakQuestionItem{ItemID: "a", TimesWrong: 2})
	require.Len(t, s.Pool(), 1)
	assert.Equal(t, 2, s.Pool()[0].TimesWrong)

	s.RemovePoolItem("a")
	assert.Empty(t, s.Pool())
	s.RemovePoolItem("a") // removing twice is harmless
}

func TestAddXPStampsGroupTimestamp(t *testing.T) {
	s, _ := newTestStore()
	s.AddXP(25)

	profile := s.Profile()
	assert.Equal(t, 25, profile.XP)
	assert.WithinDuration(t, time.Now().UTC(), profile.LastXPGain, time.Minute)
}

func TestStreakProgression(t *testing.T) {
	s, _ := newTestStore()

	// First ever streak day: long gap from the zero time resets to 1
	s.RecordStreakDay()
	assert.Equal(t, 1, s.Profile().Streak)

	// Same day again is a no-op
	s.RecordStreakDay()
	assert.Equal(t, 1, s.Profile().Streak)

	// Yesterday's update extends the streak
	s.SetProfile(models.ProfileAggregate{
		Streak:           5,
		LastStreakUpdate: time.Now().UTC().AddDate(0, 0, -1),
	})
	s.RecordStreakDay()
	assert.Equal(t, 6, s.Profile().Streak)
}

func TestStreakShieldConsumedOnTwoDayGap(t *testing.T) {
	s, _ := newTestStore()
	s.SetProfile(models.ProfileAggregate{
		Streak:           5,
		ShieldCount:      1,
		LastStreakUpdate: time.Now().UTC().AddDate(0, 0, -2),
	})

	s.RecordStreakDay()
	profile := s.Profile()
	assert.Equal(t, 6, profile.Streak)
	assert.Equal(t, 0, profile.ShieldCount)
}

func TestStreakResetsWithoutShield(t *testing.T) {
	s, _ := newTestStore()
	s.SetProfile(models.ProfileAggregate{
		Streak:           9,
		LastStreakUpdate: time.Now().UTC().AddDate(0, 0, -3),
	})

	s.RecordStreakDay()
	assert.Equal(t, 1, s.Profile().Streak)
}

func TestCopiesAreDetached(t *testing.T) {
	s, _ := newTestStore()
	s.PutPoolItem(models.WeakQuestionItem{ItemID: "a", TimesWrong: 1})
	s.CompleteLesson("p")

	pool := s.Pool()
	pool[0].TimesWrong = 99
	assert.Equal(t, 1, s.Pool()[0].TimesWrong)

	lessons := s.CompletedLessons()
	lessons["p"] = 99
	assert.Equal(t, 1, s.CompletedLessons()["p"])
}
