package repository

import (
	"errors"
	"prova_backend/internal/model"
	"prova_backend/internal/util"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

// Create inserts the exam with all its question and option rows. The
// check-then-insert runs inside one transaction, and the unique index on
// (student_id, assessment_id) backs it up if two submissions race past the
// check anyway.
func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Exam{}).
			Where("student_id = ? AND assessment_id = ?", exam.StudentID, exam.AssessmentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return util.ErrExamAlreadySubmitted
		}
		return tx.Create(exam).Error
	})
}

func (r *ExamRepository) FindByStudentAndAssessment(studentID, assessmentID uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.
		Preload("Questions").
		Preload("Questions.Options").
		Where("student_id = ? AND assessment_id = ?", studentID, assessmentID).
		First(&exam).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exam, nil
}

// ListByStudent loads all of a student's exams with their question scores,
// keyed downstream by assessment id when building the published listing.
func (r *ExamRepository) ListByStudent(studentID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.
		Preload("Questions").
		Where("student_id = ?", studentID).
		Find(&exams).Error
	return exams, err
}
