package service

import (
	"prova_backend/internal/model"
	"prova_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name    string
		req     QuestionRequest
		wantErr error
	}{
		{
			name: "single choice with one correct option",
			req: QuestionRequest{
				Type: model.QuestionSingleChoice,
				Options: []OptionRequest{
					{Text: "a", IsCorrect: true},
					{Text: "b"},
				},
			},
		},
		{
			name: "single choice with no correct option",
			req: QuestionRequest{
				Type:    model.QuestionSingleChoice,
				Options: []OptionRequest{{Text: "a"}, {Text: "b"}},
			},
			wantErr: util.ErrSingleChoiceCorrect,
		},
		{
			name: "single choice with two correct options",
			req: QuestionRequest{
				Type: model.QuestionSingleChoice,
				Options: []OptionRequest{
					{Text: "a", IsCorrect: true},
					{Text: "b", IsCorrect: true},
				},
			},
			wantErr: util.ErrSingleChoiceCorrect,
		},
		{
			name: "multi select allows any correctness pattern",
			req: QuestionRequest{
				Type:    model.QuestionMultiSelect,
				Options: []OptionRequest{{Text: "a"}, {Text: "b"}},
			},
		},
		{
			name:    "unknown type rejected",
			req:     QuestionRequest{Type: "essay"},
			wantErr: util.ErrInvalidQuestionType,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateQuestion(tc.req)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
