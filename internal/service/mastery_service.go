package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/vinayramesh7/matlab-ai-tutor/internal/config"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/mastery"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/repository"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/retrieval"
)

// MasteryService applies the learning curve to a student's concept
// record whenever they ask a question. Updates are serialized per
// (student, course, concept) in-process and row-locked in the database,
// so concurrent questions about the same concept each count.
type MasteryService struct {
	MasteryRepo *repository.MasteryRepository
	locks       *mastery.KeyedMutex
	now         func() time.Time

	mu    sync.RWMutex
	curve mastery.Curve
}

func NewMasteryService(masteryRepo *repository.MasteryRepository, cfg config.MasteryConfig) *MasteryService {
	s := &MasteryService{
		MasteryRepo: masteryRepo,
		locks:       mastery.NewKeyedMutex(),
		now:         time.Now,
	}
	s.SetCurve(cfg)
	return s
}

// SetCurve swaps the tuning constants, used by config hot reload.
func (s *MasteryService) SetCurve(cfg config.MasteryConfig) {
	c := mastery.NewCurve(mastery.Curve{
		EarlyStep:       cfg.EarlyStep,
		EarlyCap:        cfg.EarlyCap,
		MidStep:         cfg.MidStep,
		LateStep:        cfg.LateStep,
		GrowthCap:       cfg.GrowthCap,
		DecayGraceDays:  cfg.DecayGraceDays,
		DecayMildDays:   cfg.DecayMildDays,
		DecayMildFactor: cfg.DecayMildFactor,
		DecayDailyRate:  cfg.DecayDailyRate,
		DecayMaxLoss:    cfg.DecayMaxLoss,
	})
	s.mu.Lock()
	s.curve = c
	s.mu.Unlock()
}

// Curve returns the active tuning constants.
func (s *MasteryService) Curve() mastery.Curve {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curve
}

// RecordQuestion bumps the question count for a concept and recomputes
// its mastery level. The "general" topic carries no mastery record and
// is skipped.
func (s *MasteryService) RecordQuestion(studentID, courseID uint, concept string) (*model.ConceptMastery, error) {
	if concept == "" || concept == retrieval.TopicGeneral {
		return nil, nil
	}

	key := fmt.Sprintf("%d:%d:%s", studentID, courseID, concept)
	unlock := s.locks.Lock(key)
	defer unlock()

	now := s.now()
	curve := s.Curve()
	return s.MasteryRepo.UpdateInTx(studentID, courseID, concept, func(m *model.ConceptMastery) error {
		days := mastery.DaysSince(m.LastPracticed, now)
		m.QuestionsAsked++
		m.MasteryLevel = curve.Update(m.MasteryLevel, m.QuestionsAsked, days)
		m.LastPracticed = now
		return nil
	})
}

// ConceptSnapshot is a mastery record with decay applied at read time,
// so a dashboard viewed after a long break reflects forgetting without
// waiting for the next question to touch the row.
type ConceptSnapshot struct {
	Concept        string    `json:"concept"`
	MasteryLevel   int       `json:"masteryLevel"`
	QuestionsAsked int       `json:"questionsAsked"`
	LastPracticed  time.Time `json:"lastPracticed"`
}

// Snapshot returns all of a student's concept records for a course with
// read-time decay applied. Stored rows are not modified.
func (s *MasteryService) Snapshot(studentID, courseID uint) ([]ConceptSnapshot, error) {
	records, err := s.MasteryRepo.FindByStudentAndCourse(studentID, courseID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	curve := s.Curve()
	snapshots := make([]ConceptSnapshot, 0, len(records))
	for _, m := range records {
		days := mastery.DaysSince(m.LastPracticed, now)
		snapshots = append(snapshots, ConceptSnapshot{
			Concept:        m.Concept,
			MasteryLevel:   curve.Decay(m.MasteryLevel, days),
			QuestionsAsked: m.QuestionsAsked,
			LastPracticed:  m.LastPracticed,
		})
	}
	return snapshots, nil
}
