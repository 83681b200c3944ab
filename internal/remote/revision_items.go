package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
	"github.com/lib/pq"
)

type revisionItemRow struct {
	UserID         string         `db:"user_id"`
	LessonID       string         `db:"lesson_id"`
	ItemID         string         `db:"item_id"`
	PathID         string         `db:"path_id"`
	Prompt         string         `db:"prompt"`
	Options        pq.StringArray `db:"options"`
	CorrectOption  int            `db:"correct_option"`
	TimesWrong     int            `db:"times_wrong"`
	TimesCorrect   int            `db:"times_correct"`
	ReviewedOnce   bool           `db:"reviewed_once"`
	LastReviewedAt *time.Time     `db:"last_reviewed_at"`
	FirstWrongAt   time.Time      `db:"first_wrong_at"`
}

func (r revisionItemRow) toModel() models.WeakQuestionItem {
	return models.WeakQuestionItem{
		ItemID:         r.ItemID,
		LessonID:       r.LessonID,
		PathID:         r.PathID,
		Prompt:         r.Prompt,
		Options:        []string(r.Options),
		CorrectOption:  r.CorrectOption,
		TimesWrong:     r.TimesWrong,
		TimesCorrect:   r.TimesCorrect,
		ReviewedOnce:   r.ReviewedOnce,
		LastReviewedAt: r.LastReviewedAt,
		FirstWrongAt:   r.FirstWrongAt,
	}
}

// ReadRevisionItems pulls the full remote weak-question set for a user
func (s *Store) ReadRevisionItems(ctx context.Context, userID string) ([]models.WeakQuestionItem, error) {
	var rows []revisionItemRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT user_id, lesson_id, item_id, path_id, prompt, options,
		       correct_option, times_wrong, times_correct, reviewed_once,
		       last_reviewed_at, first_wrong_at
		FROM revision_items
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read revision items: %v", err)
	}

	items := make([]models.WeakQuestionItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toModel())
	}
	return items, nil
}

// UpsertRevisionItems pushes the full local set, last writer wins per row
// on the (user_id, lesson_id, item_id) key.
func (s *Store) UpsertRevisionItems(ctx context.Context, userID string, items []models.WeakQuestionItem) error {
	for _, it := range items {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO revision_items (
				user_id, lesson_id, item_id, path_id, prompt, options,
				correct_option, times_wrong, times_correct, reviewed_once,
				last_reviewed_at, first_wrong_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (user_id, lesson_id, item_id) DO UPDATE SET
				path_id = EXCLUDED.path_id,
				prompt = EXCLUDED.prompt,
				options = EXCLUDED.options,
				correct_option = EXCLUDED.correct_option,
				times_wrong = EXCLUDED.times_wrong,
				times_correct = EXCLUDED.times_correct,
				reviewed_once = EXCLUDED.reviewed_once,
				last_reviewed_at = EXCLUDED.last_reviewed_at,
				first_wrong_at = EXCLUDED.first_wrong_at
		`,
			userID, it.LessonID, it.ItemID, it.PathID, it.Prompt,
			pq.StringArray(it.Options), it.CorrectOption, it.TimesWrong,
			it.TimesCorrect, it.ReviewedOnce, it.LastReviewedAt, it.FirstWrongAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert revision item %s: %v", it.ItemID, err)
		}
	}
	return nil
}
