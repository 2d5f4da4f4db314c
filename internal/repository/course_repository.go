package repository

import (
	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByOwner(ownerID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindEnrolled(studentID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Joins("INNER JOIN course_enrollments ON course_enrollments.course_id = courses.id").
		Where("course_enrollments.student_id = ? AND course_enrollments.deleted_at IS NULL", studentID).
		Order("courses.created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// Delete removes a course and cascades to its documents, chunks, chat
// history, mastery records and analytics events.
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.DocumentChunk{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Document{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.ChatMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.ChatSession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.ConceptMastery{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseEnrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, id).Error
	})
}

func (r *CourseRepository) Enroll(courseID, studentID uint) error {
	enrollment := model.CourseEnrollment{CourseID: courseID, StudentID: studentID}
	return r.DB.Where(enrollment).FirstOrCreate(&enrollment).Error
}

func (r *CourseRepository) IsEnrolled(courseID, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CourseEnrollment{}).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}
