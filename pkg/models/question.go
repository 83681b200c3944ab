package models

import "fmt"

// Question represents a single quiz question from a path's question bank
type Question struct {
	PathID        string   `json:"path_id" db:"path_id"`
	LessonID      string   `json:"lesson_id" db:"lesson_id"`
	Index         int      `json:"index" db:"question_index"` // Position of the question inside its lesson
	Prompt        string   `json:"prompt" db:"prompt"`
	Options       []string `json:"options" db:"options"`
	CorrectOption int      `json:"correct_option" db:"correct_option"`
}

// ItemID returns the stable key identifying this question across the
// local pool and the remote revision_items table.
func (q Question) ItemID() string {
	return fmt.Sprintf("%s:%s:%d", q.PathID, q.LessonID, q.Index)
}
