package service

import (
	"context"

	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/repository"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/util"
)

// CourseService handles course lifecycle and enrollment. Teachers own
// courses; students enroll to gain access to the tutoring chat.
type CourseService struct {
	CourseRepo *repository.CourseRepository
	Corpus     *CorpusService
}

func NewCourseService(courseRepo *repository.CourseRepository, corpus *CorpusService) *CourseService {
	return &CourseService{CourseRepo: courseRepo, Corpus: corpus}
}

func (s *CourseService) Create(course *model.Course) error {
	return s.CourseRepo.Create(course)
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	return s.CourseRepo.FindByID(id)
}

func (s *CourseService) ListOwned(ownerID uint) ([]model.Course, error) {
	return s.CourseRepo.FindByOwner(ownerID)
}

func (s *CourseService) ListEnrolled(studentID uint) ([]model.Course, error) {
	return s.CourseRepo.FindEnrolled(studentID)
}

// Update applies changes to a course the caller owns.
func (s *CourseService) Update(course *model.Course, ownerID uint) error {
	if course.OwnerID != ownerID {
		return util.ErrPermissionDenied
	}
	return s.CourseRepo.Update(course)
}

// Delete removes the course and everything hanging off it, then drops
// the cached corpus.
func (s *CourseService) Delete(id, ownerID uint) error {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return err
	}
	if course.OwnerID != ownerID {
		return util.ErrPermissionDenied
	}
	if err := s.CourseRepo.Delete(id); err != nil {
		return err
	}
	s.Corpus.Invalidate(context.Background(), id)
	return nil
}

func (s *CourseService) Enroll(courseID, studentID uint) error {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return err
	}
	return s.CourseRepo.Enroll(courseID, studentID)
}

// Authorize checks that the student may use a course's tutoring chat.
func (s *CourseService) Authorize(courseID, userID uint, role model.UserRole) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if role == model.Admin || course.OwnerID == userID {
		return nil
	}

	enrolled, err := s.CourseRepo.IsEnrolled(courseID, userID)
	if err != nil {
		return err
	}
	if !enrolled {
		return util.ErrNotEnrolled
	}
	return nil
}
