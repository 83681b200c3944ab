package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepo(t *testing.T) *SnapshotRepository {
	t.Helper()
	db, err := Connect(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSnapshotRepository(db)
}

func TestLoadMissingSnapshotYieldsEmpty(t *testing.T) {
	repo := testRepo(t)

	snap, err := repo.Load("nobody")
	require.NoError(t, err)
	assert.Empty(t, snap.WeakQuestions)
	assert.NotNil(t, snap.CompletedLessons)
	assert.Zero(t, snap.Profile.XP)
}

func TestSnapshotRoundTrip(t *testing.T) {
	repo := testRepo(t)
	reviewed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	in := &models.Snapshot{
		Profile: models.ProfileAggregate{XP: 120, Coins: 40, Streak: 3},
		WeakQuestions: []models.WeakQuestionItem{{
			ItemID:         "p:l:0",
			LessonID:       "l",
			PathID:         "p",
			Prompt:         "prompt",
			Options:        []string{"a", "b"},
			TimesWrong:     2,
			ReviewedOnce:   true,
			LastReviewedAt: &reviewed,
			FirstWrongAt:   reviewed.Add(-time.Hour),
		}},
		CompletedLessons: map[string]int{"p": 4},
	}
	require.NoError(t, repo.SaveSnapshot("user-1", in))

	out, err := repo.Load("user-1")
	require.NoError(t, err)
	assert.Equal(t, in.Profile, out.Profile)
	require.Len(t, out.WeakQuestions, 1)
	assert.Equal(t, in.WeakQuestions[0], out.WeakQuestions[0])
	assert.Equal(t, 4, out.CompletedLessons["p"])
}

func TestSaveSnapshotOverwrites(t *testing.T) {
	repo := testRepo(t)

	require.NoError(t, repo.SaveSnapshot("user-1", &models.Snapshot{
		Profile: models.ProfileAggregate{XP: 10},
	}))
	require.NoError(t, repo.SaveSnapshot("user-1", &models.Snapshot{
		Profile: models.ProfileAggregate{XP: 20},
	}))

	out, err := repo.Load("user-1")
	require.NoError(t, err)
	assert.Equal(t, 20, out.Profile.XP)
}

func TestSnapshotsIsolatedPerUser(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.SaveSnapshot("a", &models.Snapshot{Profile: models.ProfileAggregate{XP: 1}}))
	require.NoError(t, repo.SaveSnapshot("b", &models.Snapshot{Profile: models.ProfileAggregate{XP: 2}}))

	a, err := repo.Load("a")
	require.NoError(t, err)
	b, err := repo.Load("b")
	require.NoError(t, err)
	assert.Equal(t, 1, a.Profile.XP)
	assert.Equal(t, 2, b.Profile.XP)
}
