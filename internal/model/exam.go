package model

import "time"

// Exam is a student's submitted, scored attempt at an assessment. It owns its
// question and option rows outright; correctness never lives here, only the
// computed per-question score and the raw answers.
//
// The composite unique index is what holds the one-attempt-per-student
// invariant under concurrent submissions.
// swagger:model Exam
type Exam struct {
	BaseModel
	StudentID    uint           `gorm:"uniqueIndex:idx_exam_student_assessment;type:bigint unsigned" json:"studentId"`
	AssessmentID uint           `gorm:"uniqueIndex:idx_exam_student_assessment;type:bigint unsigned" json:"assessmentId"`
	TakenAt      time.Time      `json:"takenAt"`
	Questions    []ExamQuestion `gorm:"foreignKey:ExamID" json:"questions,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

// swagger:model ExamQuestion
type ExamQuestion struct {
	BaseModel
	ExamID     uint         `gorm:"index;type:bigint unsigned" json:"examId"`
	QuestionID uint         `gorm:"index;type:bigint unsigned" json:"questionId"`
	Score      float64      `json:"score"` // in [0,1]
	Options    []ExamOption `gorm:"foreignKey:ExamQuestionID" json:"options,omitempty"`
}

func (ExamQuestion) TableName() string {
	return "exam_questions"
}

// swagger:model ExamOption
type ExamOption struct {
	BaseModel
	ExamQuestionID uint `gorm:"index;type:bigint unsigned" json:"examQuestionId"`
	OptionID       uint `gorm:"index;type:bigint unsigned" json:"optionId"`
	Answered       bool `gorm:"default:false" json:"answered"`
}

func (ExamOption) TableName() string {
	return "exam_options"
}
