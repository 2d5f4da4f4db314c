package repository

import (
	"time"

	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// RecordQuestion appends one event to the analytics log.
func (r *AnalyticsRepository) RecordQuestion(event *model.QuestionEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.DB.Create(event).Error
}

type TopicCount struct {
	Topic string `json:"topic"`
	Count int64  `json:"count"`
}

// CountByTopic aggregates question volume per topic for one course.
func (r *AnalyticsRepository) CountByTopic(courseID uint) ([]TopicCount, error) {
	var counts []TopicCount
	err := r.DB.Model(&model.QuestionEvent{}).
		Select("topic, COUNT(*) as count").
		Where("course_id = ?", courseID).
		Group("topic").
		Order("count DESC").
		Find(&counts).Error
	return counts, err
}

func (r *AnalyticsRepository) RecentByStudent(studentID uint, limit int) ([]model.QuestionEvent, error) {
	var events []model.QuestionEvent
	err := r.DB.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
