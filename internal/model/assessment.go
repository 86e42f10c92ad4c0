package model

const (
	QuestionSingleChoice = "single_choice"
	QuestionMultiSelect  = "multi_select"
)

// Assessment is the reusable test definition a teacher authors. Publications
// make it visible to students; attempts reference it by id only.
// swagger:model Assessment
type Assessment struct {
	BaseModel
	Subject     string     `gorm:"size:100;not null" json:"subject"`
	Topic       string     `gorm:"size:100" json:"topic"`
	Description string     `gorm:"type:text" json:"description"`
	Questions   []Question `gorm:"foreignKey:AssessmentID" json:"questions,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// swagger:model Question
type Question struct {
	BaseModel
	AssessmentID uint     `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	Type         string   `gorm:"size:50;not null" json:"type"` // single_choice, multi_select
	Prompt       string   `gorm:"type:text;not null" json:"prompt"`
	Order        int      `gorm:"default:0" json:"order"`
	Options      []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// Option carries the correctness flag. It is only serialized on the teacher
// authoring surface; student-facing views go through ExamView instead.
// swagger:model Option
type Option struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Option) TableName() string {
	return "options"
}
