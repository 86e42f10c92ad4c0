package util

import "errors"

var (
	ErrEmailRegistered      = errors.New("email is already registered")
	ErrStudentNotFound      = errors.New("student not found")
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrPublicationNotFound  = errors.New("publication not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrOptionNotFound       = errors.New("option not found")
	ErrExamAlreadySubmitted = errors.New("exam already submitted for this assessment")
	ErrInvalidQuestionType  = errors.New("question type must be single_choice or multi_select")
	ErrSingleChoiceCorrect  = errors.New("single choice question must have exactly one correct option")
)
