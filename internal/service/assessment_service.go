package service

import (
	"errors"
	"prova_backend/internal/model"
	"prova_backend/internal/repository"
	"prova_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// AssessmentService is the teacher-side authoring surface: assessments,
// their questions and options, and publications.
type AssessmentService struct {
	Repo         *repository.AssessmentRepository
	Publications *repository.PublicationRepository
}

func NewAssessmentService(repo *repository.AssessmentRepository, publications *repository.PublicationRepository) *AssessmentService {
	return &AssessmentService{Repo: repo, Publications: publications}
}

type AssessmentRequest struct {
	Subject     string `json:"subject" binding:"required"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

func (s *AssessmentService) CreateAssessment(req AssessmentRequest) (*model.Assessment, error) {
	a := &model.Assessment{
		Subject:     req.Subject,
		Topic:       req.Topic,
		Description: req.Description,
	}
	if err := s.Repo.CreateAssessment(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) ListAssessments(page, limit int) ([]model.Assessment, int64, error) {
	return s.Repo.ListAssessments(page, limit)
}

func (s *AssessmentService) GetAssessment(id uint) (*model.Assessment, error) {
	a, err := s.Repo.FindAssessmentWithQuestions(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	return a, err
}

func (s *AssessmentService) UpdateAssessment(id uint, req AssessmentRequest) (*model.Assessment, error) {
	a, err := s.Repo.FindAssessmentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	a.Subject = req.Subject
	a.Topic = req.Topic
	a.Description = req.Description
	if err := s.Repo.UpdateAssessment(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) DeleteAssessment(id uint) error {
	return s.Repo.DeleteAssessment(id)
}

type OptionRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionRequest struct {
	Type    string          `json:"type" binding:"required"`
	Prompt  string          `json:"prompt" binding:"required"`
	Order   int             `json:"order"`
	Options []OptionRequest `json:"options"`
}

func validateQuestion(req QuestionRequest) error {
	switch req.Type {
	case model.QuestionSingleChoice:
		correct := 0
		for _, opt := range req.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return util.ErrSingleChoiceCorrect
		}
		return nil
	case model.QuestionMultiSelect:
		return nil
	default:
		return util.ErrInvalidQuestionType
	}
}

func (s *AssessmentService) CreateQuestion(assessmentID uint, req QuestionRequest) (*model.Question, error) {
	if _, err := s.Repo.FindAssessmentByID(assessmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	if err := validateQuestion(req); err != nil {
		return nil, err
	}

	q := &model.Question{
		AssessmentID: assessmentID,
		Type:         req.Type,
		Prompt:       req.Prompt,
		Order:        req.Order,
	}
	for _, opt := range req.Options {
		q.Options = append(q.Options, model.Option{
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
		})
	}
	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AssessmentService) GetQuestion(id uint) (*model.Question, error) {
	q, err := s.Repo.FindQuestionByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return q, err
}

func (s *AssessmentService) UpdateQuestion(id uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.Repo.FindQuestionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if err := validateQuestion(req); err != nil {
		return nil, err
	}

	q.Type = req.Type
	q.Prompt = req.Prompt
	q.Order = req.Order
	if err := s.Repo.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AssessmentService) DeleteQuestion(id uint) error {
	return s.Repo.DeleteQuestion(id)
}

func (s *AssessmentService) AddOption(questionID uint, req OptionRequest) (*model.Option, error) {
	if _, err := s.Repo.FindQuestionByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	o := &model.Option{
		QuestionID: questionID,
		Text:       req.Text,
		IsCorrect:  req.IsCorrect,
	}
	if err := s.Repo.CreateOption(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *AssessmentService) UpdateOption(id uint, req OptionRequest) (*model.Option, error) {
	o, err := s.Repo.FindOptionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrOptionNotFound
		}
		return nil, err
	}

	o.Text = req.Text
	o.IsCorrect = req.IsCorrect
	if err := s.Repo.UpdateOption(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *AssessmentService) DeleteOption(id uint) error {
	return s.Repo.DeleteOption(id)
}

type PublicationRequest struct {
	AssessmentID uint      `json:"assessmentId" binding:"required"`
	ExamValue    float64   `json:"examValue" binding:"required"`
	StartsAt     time.Time `json:"startsAt" binding:"required"`
	EndsAt       time.Time `json:"endsAt" binding:"required"`
}

func (s *AssessmentService) Publish(req PublicationRequest) (*model.Publication, error) {
	if _, err := s.Repo.FindAssessmentByID(req.AssessmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	p := &model.Publication{
		AssessmentID: req.AssessmentID,
		ExamValue:    req.ExamValue,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		PublishedAt:  time.Now(),
	}
	if err := s.Publications.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *AssessmentService) ListPublications(assessmentID uint) ([]model.Publication, error) {
	return s.Publications.ListByAssessment(assessmentID)
}

func (s *AssessmentService) DeletePublication(id uint) error {
	return s.Publications.Delete(id)
}
