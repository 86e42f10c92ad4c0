package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"prova_backend/internal/model"
	"prova_backend/internal/util"
	"prova_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Narrow ports over the repositories. The service never touches the store
// directly, which keeps the scoring and aggregation logic testable with
// in-memory fakes.
type StudentResolver interface {
	FindByEmail(email string) (*model.User, error)
}

type CatalogReader interface {
	FindAssessmentWithQuestions(id uint) (*model.Assessment, error)
}

type PublicationReader interface {
	FindByID(id uint) (*model.Publication, error)
	ListForStudent(studentID uint) ([]model.Publication, error)
}

type ExamReader interface {
	FindByStudentAndAssessment(studentID, assessmentID uint) (*model.Exam, error)
	ListByStudent(studentID uint) ([]model.Exam, error)
}

type ExamWriter interface {
	Create(exam *model.Exam) error
}

const (
	publishedCacheKeyPrefix = "prova:published:"
	publishedCacheTTL       = 2 * time.Minute
)

type ExamService struct {
	Students     StudentResolver
	Catalog      CatalogReader
	Publications PublicationReader
	Exams        ExamReader
	Writer       ExamWriter
	Redis        *redis.Client

	now func() time.Time
}

func NewExamService(students StudentResolver, catalog CatalogReader, publications PublicationReader, exams ExamReader, writer ExamWriter, rdb *redis.Client) *ExamService {
	return &ExamService{
		Students:     students,
		Catalog:      catalog,
		Publications: publications,
		Exams:        exams,
		Writer:       writer,
		Redis:        rdb,
		now:          time.Now,
	}
}

// PublishedAssessment is one row of the student's listing: the publication,
// its assessment metadata, and the grade computed from the student's exam
// when one exists.
type PublishedAssessment struct {
	PublicationID uint      `json:"publicationId"`
	AssessmentID  uint      `json:"assessmentId"`
	Subject       string    `json:"subject"`
	Topic         string    `json:"topic"`
	Description   string    `json:"description"`
	ExamValue     float64   `json:"examValue"`
	PublishedAt   time.Time `json:"publishedAt"`
	StartsAt      time.Time `json:"startsAt"`
	EndsAt        time.Time `json:"endsAt"`

	ExamID  *uint      `json:"examId"`
	TakenAt *time.Time `json:"takenAt"`
	Score   *float64   `json:"score"`
}

// ListPublished resolves the student and returns every publication with the
// grade earned on it, newest publication first. Results are cached per
// student for a short window and dropped again on submission.
func (s *ExamService) ListPublished(ctx context.Context, login string) ([]PublishedAssessment, error) {
	student, err := s.resolveStudent(login)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cachedListing(ctx, student.ID); ok {
		return cached, nil
	}

	publications, err := s.Publications.ListForStudent(student.ID)
	if err != nil {
		return nil, err
	}

	exams, err := s.Exams.ListByStudent(student.ID)
	if err != nil {
		return nil, err
	}
	examsByAssessment := make(map[uint]*model.Exam, len(exams))
	for i := range exams {
		examsByAssessment[exams[i].AssessmentID] = &exams[i]
	}

	listing := make([]PublishedAssessment, 0, len(publications))
	for _, pub := range publications {
		row := PublishedAssessment{
			PublicationID: pub.ID,
			AssessmentID:  pub.AssessmentID,
			ExamValue:     pub.ExamValue,
			PublishedAt:   pub.PublishedAt,
			StartsAt:      pub.StartsAt,
			EndsAt:        pub.EndsAt,
		}
		if pub.Assessment != nil {
			row.Subject = pub.Assessment.Subject
			row.Topic = pub.Assessment.Topic
			row.Description = pub.Assessment.Description
		}

		if exam, ok := examsByAssessment[pub.AssessmentID]; ok {
			score := aggregateScore(pub.ExamValue, exam)
			examID := exam.ID
			takenAt := exam.TakenAt
			row.ExamID = &examID
			row.TakenAt = &takenAt
			row.Score = &score
		}

		listing = append(listing, row)
	}

	s.storeListing(ctx, student.ID, listing)
	return listing, nil
}

// aggregateScore turns per-question scores into the publication grade:
// examValue / q * sum(scores). The divide-then-multiply order is kept as the
// canonical rounding behavior, and an exam without questions counts as one
// question so the division stays defined.
func aggregateScore(examValue float64, exam *model.Exam) float64 {
	var sum float64
	q := 0
	for _, question := range exam.Questions {
		sum += question.Score
		q++
	}
	if q == 0 {
		q = 1
	}
	return examValue / float64(q) * sum
}

// ExamView is the exam-taking (and review) projection: prompts and options
// only, correctness stripped, previous answers annotated when the student
// already submitted.
type ExamView struct {
	AssessmentID  uint               `json:"assessmentId"`
	PublicationID uint               `json:"publicationId"`
	Questions     []ExamViewQuestion `json:"questions"`
}

type ExamViewQuestion struct {
	QuestionID uint             `json:"questionId"`
	Type       string           `json:"type"`
	Prompt     string           `json:"prompt"`
	Options    []ExamViewOption `json:"options"`
}

type ExamViewOption struct {
	OptionID       uint   `json:"optionId"`
	Text           string `json:"text"`
	PreviousAnswer bool   `json:"previousAnswer"`
}

// GetExam builds the view for one publication. Reads only; neither the
// catalog nor any stored exam is touched.
func (s *ExamService) GetExam(ctx context.Context, publicationID uint, login string) (*ExamView, error) {
	student, err := s.resolveStudent(login)
	if err != nil {
		return nil, err
	}

	publication, err := s.Publications.FindByID(publicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPublicationNotFound
		}
		return nil, err
	}

	assessment, err := s.Catalog.FindAssessmentWithQuestions(publication.AssessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	exam, err := s.Exams.FindByStudentAndAssessment(student.ID, publication.AssessmentID)
	if err != nil {
		return nil, err
	}

	previous := make(map[uint]bool)
	if exam != nil {
		for _, eq := range exam.Questions {
			for _, eo := range eq.Options {
				previous[eo.OptionID] = eo.Answered
			}
		}
	}

	view := &ExamView{
		AssessmentID:  assessment.ID,
		PublicationID: publication.ID,
		Questions:     make([]ExamViewQuestion, 0, len(assessment.Questions)),
	}
	for _, q := range assessment.Questions {
		vq := ExamViewQuestion{
			QuestionID: q.ID,
			Type:       q.Type,
			Prompt:     q.Prompt,
			Options:    make([]ExamViewOption, 0, len(q.Options)),
		}
		for _, opt := range q.Options {
			vq.Options = append(vq.Options, ExamViewOption{
				OptionID:       opt.ID,
				Text:           opt.Text,
				PreviousAnswer: previous[opt.ID],
			})
		}
		view.Questions = append(view.Questions, vq)
	}

	return view, nil
}

// ExamSubmission is the answer payload a student posts. Scores never come
// from the client; they are computed here against the catalog.
type ExamSubmission struct {
	AssessmentID uint                 `json:"assessmentId" binding:"required"`
	Questions    []QuestionSubmission `json:"questions"`
}

type QuestionSubmission struct {
	QuestionID uint               `json:"questionId"`
	Options    []OptionSubmission `json:"options"`
}

type OptionSubmission struct {
	OptionID uint `json:"optionId"`
	Answered bool `json:"answered"`
}

// Submit builds the fully scored exam from the submission and the catalog's
// question structure, then persists it. The write is the only side effect;
// a duplicate submission surfaces as util.ErrExamAlreadySubmitted from the
// writer.
func (s *ExamService) Submit(ctx context.Context, login string, submission ExamSubmission) (uint, error) {
	student, err := s.resolveStudent(login)
	if err != nil {
		return 0, err
	}

	assessment, err := s.Catalog.FindAssessmentWithQuestions(submission.AssessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrAssessmentNotFound
		}
		return 0, err
	}

	questionsByID := make(map[uint]*model.Question, len(assessment.Questions))
	for i := range assessment.Questions {
		questionsByID[assessment.Questions[i].ID] = &assessment.Questions[i]
	}

	exam := &model.Exam{
		StudentID:    student.ID,
		AssessmentID: assessment.ID,
		TakenAt:      s.now(),
	}

	for _, qs := range submission.Questions {
		examQuestion := model.ExamQuestion{QuestionID: qs.QuestionID}

		answered := make(map[uint]bool, len(qs.Options))
		for _, os := range qs.Options {
			answered[os.OptionID] = os.Answered
			examQuestion.Options = append(examQuestion.Options, model.ExamOption{
				OptionID: os.OptionID,
				Answered: os.Answered,
			})
		}

		// Unknown question ids stay recorded with a zero score; the catalog
		// is the only authority on what can earn points.
		if catalogQuestion, ok := questionsByID[qs.QuestionID]; ok {
			examQuestion.Score = ScoreQuestion(catalogQuestion, answered)
		}

		exam.Questions = append(exam.Questions, examQuestion)
	}

	if err := s.Writer.Create(exam); err != nil {
		return 0, err
	}

	s.dropListing(ctx, student.ID)
	return exam.ID, nil
}

func (s *ExamService) resolveStudent(login string) (*model.User, error) {
	student, err := s.Students.FindByEmail(login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (s *ExamService) cachedListing(ctx context.Context, studentID uint) ([]PublishedAssessment, bool) {
	if s.Redis == nil {
		return nil, false
	}
	val, err := s.Redis.Get(ctx, publishedCacheKey(studentID)).Result()
	if err != nil {
		return nil, false
	}
	var listing []PublishedAssessment
	if err := json.Unmarshal([]byte(val), &listing); err != nil {
		return nil, false
	}
	return listing, true
}

func (s *ExamService) storeListing(ctx context.Context, studentID uint, listing []PublishedAssessment) {
	if s.Redis == nil {
		return
	}
	payload, err := json.Marshal(listing)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, publishedCacheKey(studentID), payload, publishedCacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache published listing", zap.Uint("studentId", studentID), zap.Error(err))
	}
}

func (s *ExamService) dropListing(ctx context.Context, studentID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, publishedCacheKey(studentID)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate published listing", zap.Uint("studentId", studentID), zap.Error(err))
	}
}

func publishedCacheKey(studentID uint) string {
	return fmt.Sprintf("%s%d", publishedCacheKeyPrefix, studentID)
}
