package repository

import (
	"prova_backend/internal/model"

	"gorm.io/gorm"
)

type PublicationRepository struct {
	DB *gorm.DB
}

func NewPublicationRepository(db *gorm.DB) *PublicationRepository {
	return &PublicationRepository{DB: db}
}

func (r *PublicationRepository) Create(p *model.Publication) error {
	return r.DB.Create(p).Error
}

func (r *PublicationRepository) FindByID(id uint) (*model.Publication, error) {
	var p model.Publication
	err := r.DB.Preload("Assessment").First(&p, id).Error
	return &p, err
}

// ListForStudent returns the publications visible to a student, newest first.
// Cohort filtering belongs to the enrollment system; here every publication is
// visible and the window dates travel with the row for the client to render.
func (r *PublicationRepository) ListForStudent(studentID uint) ([]model.Publication, error) {
	var ps []model.Publication
	err := r.DB.
		Preload("Assessment").
		Order("published_at desc, id desc").
		Find(&ps).Error
	return ps, err
}

func (r *PublicationRepository) ListByAssessment(assessmentID uint) ([]model.Publication, error) {
	var ps []model.Publication
	err := r.DB.
		Where("assessment_id = ?", assessmentID).
		Order("published_at desc").
		Find(&ps).Error
	return ps, err
}

func (r *PublicationRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Publication{}, id).Error
}
