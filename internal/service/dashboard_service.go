package service

import (
	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/repository"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/retrieval"
)

// StudentDashboard is what a student sees for one course: every
// curriculum concept with the current (decayed) mastery level, weakest
// first among practiced concepts.
type StudentDashboard struct {
	CourseID  uint              `json:"courseId"`
	Concepts  []ConceptSnapshot `json:"concepts"`
	Practiced int               `json:"practiced"`
	Average   int               `json:"average"`
}

// CourseDashboard aggregates question traffic per topic for teachers.
type CourseDashboard struct {
	CourseID uint                    `json:"courseId"`
	Topics   []repository.TopicCount `json:"topics"`
	Total    int64                   `json:"total"`
}

type DashboardService struct {
	Mastery       *MasteryService
	AnalyticsRepo *repository.AnalyticsRepository
	Classifier    *retrieval.Classifier
}

func NewDashboardService(masterySvc *MasteryService, analyticsRepo *repository.AnalyticsRepository, classifier *retrieval.Classifier) *DashboardService {
	return &DashboardService{
		Mastery:       masterySvc,
		AnalyticsRepo: analyticsRepo,
		Classifier:    classifier,
	}
}

// ForStudent lists every catalog concept, merging in the student's
// mastery records so unpracticed concepts show up at level zero.
func (s *DashboardService) ForStudent(studentID, courseID uint) (*StudentDashboard, error) {
	snapshots, err := s.Mastery.Snapshot(studentID, courseID)
	if err != nil {
		return nil, err
	}

	byConcept := make(map[string]ConceptSnapshot, len(snapshots))
	for _, snap := range snapshots {
		byConcept[snap.Concept] = snap
	}

	dash := &StudentDashboard{CourseID: courseID}
	sum := 0
	for _, name := range s.Classifier.Topics() {
		if name == retrieval.TopicGeneral {
			continue
		}
		snap, ok := byConcept[name]
		if !ok {
			snap = ConceptSnapshot{Concept: name}
		} else {
			dash.Practiced++
			sum += snap.MasteryLevel
		}
		dash.Concepts = append(dash.Concepts, snap)
	}
	if dash.Practiced > 0 {
		dash.Average = sum / dash.Practiced
	}
	return dash, nil
}

// ForCourse returns the per-topic question counts for a course.
func (s *DashboardService) ForCourse(courseID uint) (*CourseDashboard, error) {
	counts, err := s.AnalyticsRepo.CountByTopic(courseID)
	if err != nil {
		return nil, err
	}

	dash := &CourseDashboard{CourseID: courseID, Topics: counts}
	for _, tc := range counts {
		dash.Total += tc.Count
	}
	return dash, nil
}

// RecentActivity returns a student's latest question events across all
// courses.
func (s *DashboardService) RecentActivity(studentID uint, limit int) ([]model.QuestionEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.AnalyticsRepo.RecentByStudent(studentID, limit)
}
