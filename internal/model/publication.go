package model

import "time"

// Publication schedules an assessment for students, with the weight the exam
// counts for and the window in which it can be taken. One assessment may be
// published more than once.
// swagger:model Publication
type Publication struct {
	BaseModel
	AssessmentID uint        `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	Assessment   *Assessment `gorm:"foreignKey:AssessmentID" json:"assessment,omitempty"`
	ExamValue    float64     `gorm:"not null" json:"examValue"`
	StartsAt     time.Time   `json:"startsAt"`
	EndsAt       time.Time   `json:"endsAt"`
	PublishedAt  time.Time   `json:"publishedAt"`
}

func (Publication) TableName() string {
	return "publications"
}
