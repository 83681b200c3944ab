package contentbank

import (
	"sort"

	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
)

// Bank is the in-memory question bank grouped by learning path. It backs
// smart review sessions, which sample from a path's full question set and
// not just from the weak pool.
type Bank struct {
	byPath map[string][]models.Question
}

// NewBank creates an empty bank
func NewBank() *Bank {
	return &Bank{byPath: map[string][]models.Question{}}
}

// Add appends a question to its path's set
func (b *Bank) Add(q models.Question) {
	b.byPath[q.PathID] = append(b.byPath[q.PathID], q)
}

// QuestionsForPath returns a copy of the full question set of a path
func (b *Bank) QuestionsForPath(pathID string) []models.Question {
	src := b.byPath[pathID]
	out := make([]models.Question, len(src))
	copy(out, src)
	return out
}

// PathIDs lists all known paths in stable order
func (b *Bank) PathIDs() []string {
	ids := make([]string, 0, len(b.byPath))
	for id := range b.byPath {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the total number of questions in the bank
func (b *Bank) Len() int {
	n := 0
	for _, qs := range b.byPath {
		n += len(qs)
	}
	return n
}
