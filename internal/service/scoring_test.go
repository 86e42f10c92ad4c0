package service

import (
	"prova_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
)

func singleChoiceQuestion(correct uint, optionIDs ...uint) *model.Question {
	q := &model.Question{Type: model.QuestionSingleChoice}
	q.ID = 1
	for _, id := range optionIDs {
		opt := model.Option{IsCorrect: id == correct}
		opt.ID = id
		q.Options = append(q.Options, opt)
	}
	return q
}

func multiSelectQuestion(pattern map[uint]bool) *model.Question {
	q := &model.Question{Type: model.QuestionMultiSelect}
	q.ID = 1
	for id := uint(1); id <= uint(len(pattern)); id++ {
		opt := model.Option{IsCorrect: pattern[id]}
		opt.ID = id
		q.Options = append(q.Options, opt)
	}
	return q
}

func TestScoreQuestion_SingleChoice(t *testing.T) {
	tests := []struct {
		name     string
		answered map[uint]bool
		want     float64
	}{
		{name: "correct option marked", answered: map[uint]bool{10: true}, want: 1},
		{name: "wrong option marked", answered: map[uint]bool{20: true}, want: 0},
		{name: "correct option explicitly unmarked", answered: map[uint]bool{10: false, 20: true}, want: 0},
		{name: "nothing marked", answered: map[uint]bool{}, want: 0},
		{name: "nil answers", answered: nil, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := singleChoiceQuestion(10, 10, 20)
			require.Equal(t, tc.want, ScoreQuestion(q, tc.answered))
		})
	}
}

func TestScoreQuestion_SingleChoiceNeverFractional(t *testing.T) {
	q := singleChoiceQuestion(2, 1, 2, 3, 4)
	for _, answered := range []map[uint]bool{
		{1: true}, {2: true}, {3: true}, {1: true, 2: true},
	} {
		got := ScoreQuestion(q, answered)
		require.Contains(t, []float64{0, 1}, got)
	}
}

func TestScoreQuestion_MultiSelect(t *testing.T) {
	// Four options, correctness pattern [true, false, true, false].
	pattern := map[uint]bool{1: true, 2: false, 3: true, 4: false}

	tests := []struct {
		name     string
		answered map[uint]bool
		want     float64
	}{
		{name: "exact match", answered: map[uint]bool{1: true, 2: false, 3: true, 4: false}, want: 1},
		{name: "one flipped", answered: map[uint]bool{1: true, 2: true, 3: true, 4: false}, want: 0.75},
		{name: "two flipped", answered: map[uint]bool{1: false, 2: true, 3: true, 4: false}, want: 0.5},
		{name: "all flipped", answered: map[uint]bool{1: false, 2: true, 3: false, 4: true}, want: 0},
		{name: "missing answers count as unmarked", answered: map[uint]bool{1: true}, want: 0.75},
		{name: "empty answer sheet keeps the unmarked agreements", answered: map[uint]bool{}, want: 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := multiSelectQuestion(pattern)
			require.InDelta(t, tc.want, ScoreQuestion(q, tc.answered), 1e-9)
		})
	}
}

func TestScoreQuestion_MultiSelectFlipProperty(t *testing.T) {
	// Flipping k of N options from the correct pattern scores (N-k)/N.
	pattern := map[uint]bool{1: true, 2: true, 3: false, 4: false, 5: true}
	q := multiSelectQuestion(pattern)

	for k := 0; k <= len(pattern); k++ {
		answered := make(map[uint]bool, len(pattern))
		for id, correct := range pattern {
			answered[id] = correct
		}
		for id := uint(1); id <= uint(k); id++ {
			answered[id] = !answered[id]
		}

		want := float64(len(pattern)-k) / float64(len(pattern))
		require.InDelta(t, want, ScoreQuestion(q, answered), 1e-9, "k=%d", k)
	}
}

func TestScoreQuestion_Degenerate(t *testing.T) {
	noOptions := &model.Question{Type: model.QuestionMultiSelect}
	require.Equal(t, float64(0), ScoreQuestion(noOptions, map[uint]bool{1: true}))

	unknownType := &model.Question{Type: "essay"}
	require.Equal(t, float64(0), ScoreQuestion(unknownType, map[uint]bool{1: true}))
}
