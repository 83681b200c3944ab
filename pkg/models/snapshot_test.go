package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAppliesDefaults(t *testing.T) {
	var snap Snapshot
	snap.Normalize()

	assert.NotNil(t, snap.WeakQuestions)
	assert.NotNil(t, snap.CompletedLessons)
}

func TestNormalizeRepairsLooseItems(t *testing.T) {
	snap := Snapshot{
		WeakQuestions: []WeakQuestionItem{{ItemID: "a"}},
	}
	snap.Normalize()

	assert.NotNil(t, snap.WeakQuestions[0].Options)
	assert.Equal(t, 1, snap.WeakQuestions[0].TimesWrong, "a pooled item was wrong at least once")
}

func TestQuestionItemID(t *testing.T) {
	q := Question{PathID: "tajweed", LessonID: "l3", Index: 2}
	assert.Equal(t, "tajweed:l3:2", q.ItemID())
}
