package service

import "prova_backend/internal/model"

// ScoreQuestion grades one question against the catalog's option set and
// returns a score in [0,1]. answered maps option id to whether the student
// marked it; options absent from the map count as unmarked, so a partial
// answer sheet is a miss rather than an error.
func ScoreQuestion(q *model.Question, answered map[uint]bool) float64 {
	switch q.Type {
	case model.QuestionSingleChoice:
		// Exactly one option carries the flag; the question is all or nothing.
		for _, opt := range q.Options {
			if opt.IsCorrect {
				if answered[opt.ID] {
					return 1
				}
				return 0
			}
		}
		return 0

	case model.QuestionMultiSelect:
		// Each option is judged independently: leaving a wrong option
		// unmarked counts the same as marking a right one.
		if len(q.Options) == 0 {
			return 0
		}
		matched := 0
		for _, opt := range q.Options {
			if opt.IsCorrect == answered[opt.ID] {
				matched++
			}
		}
		return float64(matched) / float64(len(q.Options))

	default:
		return 0
	}
}
