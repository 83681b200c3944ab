package models

// Snapshot is the single serialized local-state record: the weak-question
// pool, the profile aggregate and per-path lesson completion. It is read
// once at startup and rewritten after every mutating operation.
type Snapshot struct {
	Profile          ProfileAggregate   `json:"profile"`
	WeakQuestions    []WeakQuestionItem `json:"weak_questions"`
	CompletedLessons map[string]int     `json:"completed_lessons"` // pathID -> lessons completed
}

// Normalize applies defaults once at the deserialization boundary so the
// merge and session code never has to null-check loosely shaped state.
func (s *Snapshot) Normalize() {
	if s.WeakQuestions == nil {
		s.WeakQuestions = []WeakQuestionItem{}
	}
	if s.CompletedLessons == nil {
		s.CompletedLessons = map[string]int{}
	}
	for i := range s.WeakQuestions {
		if s.WeakQuestions[i].Options == nil {
			s.WeakQuestions[i].Options = []string{}
		}
		if s.WeakQuestions[i].TimesWrong < 1 {
			s.WeakQuestions[i].TimesWrong = 1
		}
	}
}
