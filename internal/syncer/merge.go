package syncer

import (
	"sort"

	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
)

type itemKey struct {
	lessonID string
	itemID   string
}

// MergeRevisionItems reconciles the local and remote weak-question sets.
// Items are keyed by (lesson, item); when both sides hold a key, the side
// with the strictly later LastReviewedAt wins. A never-reviewed side loses
// to a reviewed one, and an exact timestamp tie keeps local.
func MergeRevisionItems(local, remote []models.WeakQuestionItem) []models.WeakQuestionItem {
	merged := make(map[itemKey]models.WeakQuestionItem, len(local)+len(remote))
	for _, it := range local {
		merged[itemKey{it.LessonID, it.ItemID}] = it
	}
	for _, it := range remote {
		key := itemKey{it.LessonID, it.ItemID}
		existing, ok := merged[key]
		if !ok || reviewedAfter(it, existing) {
			merged[key] = it
		}
	}

	out := make([]models.WeakQuestionItem, 0, len(merged))
	for _, it := range merged {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// reviewedAfter reports whether a's last review is strictly later than b's
func reviewedAfter(a, b models.WeakQuestionItem) bool {
	if a.LastReviewedAt == nil {
		return false
	}
	if b.LastReviewedAt == nil {
		return true
	}
	return a.LastReviewedAt.After(*b.LastReviewedAt)
}

// MergeProfile reconciles the profile aggregate. The streak fields and the
// xp fields carry independent timestamps and are accepted or rejected as
// groups, so a stale remote streak can never drag a fresh local xp gain
// backwards (or the other way around). Remote wins a group only when its
// timestamp is strictly newer.
func MergeProfile(local models.ProfileAggregate, remote *models.ProfileAggregate) models.ProfileAggregate {
	if remote == nil {
		return local
	}

	merged := local
	if remote.LastStreakUpdate.After(local.LastStreakUpdate) {
		merged.Streak = remote.Streak
		merged.LastStreakUpdate = remote.LastStreakUpdate
		merged.ShieldCount = remote.ShieldCount
	}
	if remote.LastXPGain.After(local.LastXPGain) {
		merged.XP = remote.XP
		merged.LastXPGain = remote.LastXPGain
		merged.Coins = remote.Coins
	}
	return merged
}
