package repository

import (
	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MasteryRepository struct {
	DB *gorm.DB
}

func NewMasteryRepository(db *gorm.DB) *MasteryRepository {
	return &MasteryRepository{DB: db}
}

// UpdateInTx runs fn against the row for (student, course, concept)
// under a row-level write lock inside one transaction. fn receives the
// current record (a fresh zero-count one when none exists) and returns
// the state to persist. Two concurrent updates therefore serialize at
// the database and neither increment is lost.
func (r *MasteryRepository) UpdateInTx(studentID, courseID uint, concept string, fn func(*model.ConceptMastery) error) (*model.ConceptMastery, error) {
	var record model.ConceptMastery

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("student_id = ? AND course_id = ? AND concept = ?", studentID, courseID, concept).
			First(&record).Error

		if err == gorm.ErrRecordNotFound {
			record = model.ConceptMastery{
				StudentID: studentID,
				CourseID:  courseID,
				Concept:   concept,
			}
		} else if err != nil {
			return err
		}

		if err := fn(&record); err != nil {
			return err
		}

		return tx.Save(&record).Error
	})

	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *MasteryRepository) FindByStudentAndCourse(studentID, courseID uint) ([]model.ConceptMastery, error) {
	var records []model.ConceptMastery
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).
		Order("concept ASC").
		Find(&records).Error
	return records, err
}

func (r *MasteryRepository) FindByStudentCourseConcept(studentID, courseID uint, concept string) (*model.ConceptMastery, error) {
	var record model.ConceptMastery
	err := r.DB.Where("student_id = ? AND course_id = ? AND concept = ?", studentID, courseID, concept).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
