package syncer

import (
	"testing"
	"time"

	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func item(itemID string, lastReviewed *time.Time, timesWrong int) models.WeakQuestionItem {
	return models.WeakQuestionItem{
		ItemID:         itemID,
		LessonID:       "lesson-1",
		PathID:         "path-1",
		TimesWrong:     timesWrong,
		LastReviewedAt: lastReviewed,
	}
}

func TestMergeRevisionItemsLaterReviewWins(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	local := []models.WeakQuestionItem{item("q1", timePtr(t1), 5)}
	remote := []models.WeakQuestionItem{item("q1", timePtr(t0), 2)}

	merged := MergeRevisionItems(local, remote)
	require.Len(t, merged, 1)
	assert.Equal(t, 5, merged[0].TimesWrong, "local side reviewed later, must win")

	merged = MergeRevisionItems(remote, local)
	require.Len(t, merged, 1)
	assert.Equal(t, 5, merged[0].TimesWrong, "remote side reviewed later, must win")
}

func TestMergeRevisionItemsTieKeepsLocal(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	local := []models.WeakQuestionItem{item("q1", timePtr(t0), 5)}
	remote := []models.WeakQuestionItem{item("q1", timePtr(t0), 2)}

	merged := MergeRevisionItems(local, remote)
	require.Len(t, merged, 1)
	assert.Equal(t, 5, merged[0].TimesWrong)
}

func TestMergeRevisionItemsNeverReviewedLoses(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	local := []models.WeakQuestionItem{item("q1", nil, 5)}
	remote := []models.WeakQuestionItem{item("q1", timePtr(t0), 2)}

	merged := MergeRevisionItems(local, remote)
	require.Len(t, merged, 1)
	assert.Equal(t, 2, merged[0].TimesWrong)
}

func TestMergeRevisionItemsUnion(t *testing.T) {
	local := []models.WeakQuestionItem{item("q1", nil, 1)}
	remote := []models.WeakQuestionItem{item("q2", nil, 1), item("q3", nil, 1)}

	merged := MergeRevisionItems(local, remote)
	assert.Len(t, merged, 3)
}

func TestMergeProfileFieldGroups(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	// Stale remote xp group loses
	local := models.ProfileAggregate{XP: 100, LastXPGain: t1}
	remote := models.ProfileAggregate{XP: 50, LastXPGain: t0}
	merged := MergeProfile(local, &remote)
	assert.Equal(t, 100, merged.XP)

	// Fresh remote xp group wins
	local = models.ProfileAggregate{XP: 100, LastXPGain: t0}
	remote = models.ProfileAggregate{XP: 200, LastXPGain: t1}
	merged = MergeProfile(local, &remote)
	assert.Equal(t, 200, merged.XP)
}

func TestMergeProfileGroupsIndependent(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	// A stale remote streak must not drag down a fresh local xp gain even
	// though the remote xp group is newer.
	local := models.ProfileAggregate{
		XP: 100, LastXPGain: t0,
		Streak: 7, ShieldCount: 2, LastStreakUpdate: t1,
	}
	remote := models.ProfileAggregate{
		XP: 250, LastXPGain: t1,
		Streak: 3, ShieldCount: 0, LastStreakUpdate: t0,
	}

	merged := MergeProfile(local, &remote)
	assert.Equal(t, 250, merged.XP, "remote xp group is newer")
	assert.Equal(t, 7, merged.Streak, "local streak group is newer")
	assert.Equal(t, 2, merged.ShieldCount)
}

func TestMergeProfileEqualTimestampsKeepLocal(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	local := models.ProfileAggregate{XP: 100, LastXPGain: t0, Streak: 7, LastStreakUpdate: t0}
	remote := models.ProfileAggregate{XP: 200, LastXPGain: t0, Streak: 3, LastStreakUpdate: t0}

	merged := MergeProfile(local, &remote)
	assert.Equal(t, 100, merged.XP)
	assert.Equal(t, 7, merged.Streak)
}

func TestMergeProfileMissingRemote(t *testing.T) {
	local := models.ProfileAggregate{XP: 100}
	assert.Equal(t, local, MergeProfile(local, nil))
}
