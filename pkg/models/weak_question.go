package models

import "time"

// WeakQuestionItem tracks a question the learner has answered incorrectly
// at least once. Items are keyed by ItemID and are never removed
// automatically unless a removal threshold is configured explicitly.
type WeakQuestionItem struct {
	ItemID         string     `json:"item_id" db:"item_id"`
	LessonID       string     `json:"lesson_id" db:"lesson_id"`
	PathID         string     `json:"path_id" db:"path_id"`
	Prompt         string     `json:"prompt" db:"prompt"`
	Options        []string   `json:"options" db:"options"`
	CorrectOption  int        `json:"correct_option" db:"correct_option"`
	TimesWrong     int        `json:"times_wrong" db:"times_wrong"`
	TimesCorrect   int        `json:"times_correct" db:"times_correct"`
	ReviewedOnce   bool       `json:"reviewed_once" db:"reviewed_once"`
	LastReviewedAt *time.Time `json:"last_reviewed_at" db:"last_reviewed_at"`
	FirstWrongAt   time.Time  `json:"first_wrong_at" db:"first_wrong_at"`
}

// Question rebuilds the bank-shaped question held inside a pool item so
// review sessions can be served straight from the pool.
func (w WeakQuestionItem) Question() Question {
	return Question{
		PathID:        w.PathID,
		LessonID:      w.LessonID,
		Prompt:        w.Prompt,
		Options:       w.Options,
		CorrectOption: w.CorrectOption,
	}
}
