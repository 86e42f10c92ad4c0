package service

import (
	"context"
	"prova_backend/internal/model"
	"prova_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStore implements every port of ExamService in memory.
type fakeStore struct {
	students     map[string]*model.User
	assessments  map[uint]*model.Assessment
	publications map[uint]*model.Publication
	exams        []model.Exam

	created   []*model.Exam
	createErr error
}

func (f *fakeStore) FindByEmail(email string) (*model.User, error) {
	if u, ok := f.students[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) FindAssessmentWithQuestions(id uint) (*model.Assessment, error) {
	if a, ok := f.assessments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) FindByID(id uint) (*model.Publication, error) {
	if p, ok := f.publications[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) ListForStudent(studentID uint) ([]model.Publication, error) {
	ps := make([]model.Publication, 0, len(f.publications))
	for _, p := range f.publications {
		ps = append(ps, *p)
	}
	return ps, nil
}

func (f *fakeStore) FindByStudentAndAssessment(studentID, assessmentID uint) (*model.Exam, error) {
	for i := range f.exams {
		if f.exams[i].StudentID == studentID && f.exams[i].AssessmentID == assessmentID {
			return &f.exams[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListByStudent(studentID uint) ([]model.Exam, error) {
	var out []model.Exam
	for _, e := range f.exams {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(exam *model.Exam) error {
	if f.createErr != nil {
		return f.createErr
	}
	exam.ID = uint(len(f.created) + 1)
	f.created = append(f.created, exam)
	f.exams = append(f.exams, *exam)
	return nil
}

func newTestService(store *fakeStore) *ExamService {
	svc := NewExamService(store, store, store, store, store, nil)
	svc.now = func() time.Time {
		return time.Date(2020, 5, 4, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func newStore() *fakeStore {
	student := &model.User{Name: "Ana", Email: "ana@example.com", Role: model.Student}
	student.ID = 7

	return &fakeStore{
		students:     map[string]*model.User{"ana@example.com": student},
		assessments:  map[uint]*model.Assessment{},
		publications: map[uint]*model.Publication{},
	}
}

// twoOptionAssessment has one single-choice question with options 11
// (correct) and 12.
func twoOptionAssessment(id uint) *model.Assessment {
	a := &model.Assessment{Subject: "History", Topic: "Brazil", Description: "Empire period"}
	a.ID = id

	q := model.Question{AssessmentID: id, Type: model.QuestionSingleChoice, Prompt: "Who proclaimed independence?"}
	q.ID = 101
	optA := model.Option{QuestionID: q.ID, Text: "Dom Pedro I", IsCorrect: true}
	optA.ID = 11
	optB := model.Option{QuestionID: q.ID, Text: "Dom Pedro II"}
	optB.ID = 12
	q.Options = []model.Option{optA, optB}

	a.Questions = []model.Question{q}
	return a
}

func publish(store *fakeStore, id, assessmentID uint, examValue float64) {
	p := &model.Publication{
		AssessmentID: assessmentID,
		Assessment:   store.assessments[assessmentID],
		ExamValue:    examValue,
		PublishedAt:  time.Date(2020, 5, 1, 8, 0, 0, 0, time.UTC),
		StartsAt:     time.Date(2020, 5, 2, 0, 0, 0, 0, time.UTC),
		EndsAt:       time.Date(2020, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	p.ID = id
	store.publications[id] = p
}

func TestListPublished_NoAttempt(t *testing.T) {
	store := newStore()
	store.assessments[1] = twoOptionAssessment(1)
	publish(store, 50, 1, 10)

	svc := newTestService(store)

	listing, err := svc.ListPublished(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Len(t, listing, 1)

	row := listing[0]
	require.Equal(t, uint(50), row.PublicationID)
	require.Equal(t, uint(1), row.AssessmentID)
	require.Equal(t, "History", row.Subject)
	require.Nil(t, row.ExamID)
	require.Nil(t, row.TakenAt)
	require.Nil(t, row.Score)
}

func TestListPublished_StudentNotFound(t *testing.T) {
	svc := newTestService(newStore())

	_, err := svc.ListPublished(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, util.ErrStudentNotFound)
}

func TestListPublished_SingleChoiceGrade(t *testing.T) {
	// One single-choice question worth 10: the correct answer earns the full
	// exam value, the wrong one earns zero.
	tests := []struct {
		name  string
		score float64
		want  float64
	}{
		{name: "correct option", score: 1, want: 10},
		{name: "wrong option", score: 0, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newStore()
			store.assessments[1] = twoOptionAssessment(1)
			publish(store, 50, 1, 10)

			exam := model.Exam{
				StudentID:    7,
				AssessmentID: 1,
				TakenAt:      time.Date(2020, 5, 3, 9, 0, 0, 0, time.UTC),
				Questions:    []model.ExamQuestion{{QuestionID: 101, Score: tc.score}},
			}
			exam.ID = 900
			store.exams = append(store.exams, exam)

			svc := newTestService(store)

			listing, err := svc.ListPublished(context.Background(), "ana@example.com")
			require.NoError(t, err)
			require.Len(t, listing, 1)

			row := listing[0]
			require.NotNil(t, row.ExamID)
			require.Equal(t, uint(900), *row.ExamID)
			require.NotNil(t, row.TakenAt)
			require.Equal(t, exam.TakenAt, *row.TakenAt)
			require.NotNil(t, row.Score)
			require.InDelta(t, tc.want, *row.Score, 1e-9)
		})
	}
}

func TestListPublished_GradeFormula(t *testing.T) {
	// examValue / q * sum: value 10 over scores 1, 0.5, 0 gives 10/3*1.5.
	store := newStore()
	store.assessments[1] = twoOptionAssessment(1)
	publish(store, 50, 1, 10)

	store.exams = append(store.exams, model.Exam{
		StudentID:    7,
		AssessmentID: 1,
		Questions: []model.ExamQuestion{
			{QuestionID: 101, Score: 1},
			{QuestionID: 102, Score: 0.5},
			{QuestionID: 103, Score: 0},
		},
	})

	svc := newTestService(store)

	listing, err := svc.ListPublished(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, listing[0].Score)
	require.InDelta(t, 10.0/3*1.5, *listing[0].Score, 1e-9)
}

func TestListPublished_MultiSelectPartialGrade(t *testing.T) {
	// One multi-select question scored 3/4 on an exam worth 8 reports 6.
	store := newStore()
	store.assessments[1] = twoOptionAssessment(1)
	publish(store, 50, 1, 8)

	store.exams = append(store.exams, model.Exam{
		StudentID:    7,
		AssessmentID: 1,
		Questions:    []model.ExamQuestion{{QuestionID: 101, Score: 0.75}},
	})

	svc := newTestService(store)

	listing, err := svc.ListPublished(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, listing[0].Score)
	require.InDelta(t, 6, *listing[0].Score, 1e-9)
}

func TestListPublished_ZeroQuestionExam(t *testing.T) {
	// An exam without questions still reports a grade; q is treated as 1 so
	// the division stays defined.
	store := newStore()
	store.assessments[1] = twoOptionAssessment(1)
	publish(store, 50, 1, 10)

	store.exams = append(store.exams, model.Exam{StudentID: 7, AssessmentID: 1})

	svc := newTestService(store)

	listing, err := svc.ListPublished(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, listing[0].Score)
	require.Equal(t, float64(0), *listing[0].Score)
}

func TestGetExam_MasksAndAnnotates(t *testing.T) {
	store := newStore()
	store.assessments[1] = twoOptionAssessment(1)
	publish(store, 50, 1, 10)

	store.exams = append(store.exams, model.Exam{
		StudentID:    7,
		AssessmentID: 1,
		Questions: []model.ExamQuestion{
			{
				QuestionID: 101,
				Options: []model.ExamOption{
					{OptionID: 11, Answered: true},
				},
			},
		},
	})

	svc := newTestService(store)

	view, err := svc.GetExam(context.Background(), 50, "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, uint(1), view.AssessmentID)
	require.Equal(t, uint(50), view.PublicationID)
	require.Len(t, view.Questions, 1)

	q := view.Questions[0]
	require.Equal(t, uint(101), q.QuestionID)
	require.Equal(t, model.QuestionSingleChoice, q.Type)
	require.Len(t, q.Options, 2)

	require.Equal(t, uint(11), q.Options[0].OptionID)
	require.True(t, q.Options[0].PreviousAnswer)
	// Option 12 never appeared in the attempt and defaults to false.
	require.Equal(t, uint(12), q.Options[1].OptionID)
	require.False(t, q.Options[1].PreviousAnswer)
}

func TestGetExam_NoAttemptDefaultsFalse(t *testing.T) {
	store := newStore()
	store.assessments[1] = twoOptionAssessment(1)
	publish(store, 50, 1, 10)

	svc := newTestService(store)

	view, err := svc.GetExam(context.Background(), 50, "ana@example.com")
	require.NoError(t, err)
	for _, q := range view.Questions {
		for _, opt := range q.Options {
			require.False(t, opt.PreviousAnswer)
		}
	}
}

func TestGetExam_PublicationNotFound(t *testing.T) {
	store := newStore()
	svc := newTestService(store)

	_, err := svc.GetExam(context.Background(), 99, "ana@example.com")
	require.ErrorIs(t, err, util.ErrPublicationNotFound)
}

func TestSubmit_ScoresAgainstCatalog(t *testing.T) {
	store := newStore()
	store.assessments[1] = twoOptionAssessment(1)

	svc := newTestService(store)

	id, err := svc.Submit(context.Background(), "ana@example.com", ExamSubmission{
		AssessmentID: 1,
		Questions: []QuestionSubmission{
			{
				QuestionID: 101,
				Options: []OptionSubmission{
					{OptionID: 11, Answered: true},
					{OptionID: 12, Answered: false},
				},
			},
		},
	})
	require.NoError(t, err)
	require.Equal(t, uint(1), id)
	require.Len(t, store.created, 1)

	exam := store.created[0]
	require.Equal(t, uint(7), exam.StudentID)
	require.Equal(t, uint(1), exam.AssessmentID)
	require.Equal(t, time.Date(2020, 5, 4, 10, 0, 0, 0, time.UTC), exam.TakenAt)
	require.Len(t, exam.Questions, 1)
	require.Equal(t, float64(1), exam.Questions[0].Score)
	require.Len(t, exam.Questions[0].Options, 2)
	require.True(t, exam.Questions[0].Options[0].Answered)
	require.False(t, exam.Questions[0].Options[1].Answered)
}

func TestSubmit_WrongOptionScoresZero(t *testing.T) {
	store := newStore()
	store.assessments[1] = twoOptionAssessment(1)

	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), "ana@example.com", ExamSubmission{
		AssessmentID: 1,
		Questions: []QuestionSubmission{
			{
				QuestionID: 101,
				Options:    []OptionSubmission{{OptionID: 12, Answered: true}},
			},
		},
	})
	require.NoError(t, err)
	require.Equal(t, float64(0), store.created[0].Questions[0].Score)
}

func TestSubmit_AssessmentNotFound(t *testing.T) {
	store := newStore()
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), "ana@example.com", ExamSubmission{AssessmentID: 42})
	require.ErrorIs(t, err, util.ErrAssessmentNotFound)
	require.Empty(t, store.created)
}

func TestSubmit_StudentNotFound(t *testing.T) {
	store := newStore()
	store.assessments[1] = twoOptionAssessment(1)
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), "ghost@example.com", ExamSubmission{AssessmentID: 1})
	require.ErrorIs(t, err, util.ErrStudentNotFound)
	require.Empty(t, store.created)
}

func TestSubmit_DuplicatePassesThrough(t *testing.T) {
	store := newStore()
	store.assessments[1] = twoOptionAssessment(1)
	store.createErr = util.ErrExamAlreadySubmitted

	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), "ana@example.com", ExamSubmission{AssessmentID: 1})
	require.ErrorIs(t, err, util.ErrExamAlreadySubmitted)
}
