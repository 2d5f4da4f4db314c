package model

import (
	"time"
)

// QuestionEvent is the append-only analytics log: one row per question
// asked in the tutoring chat.
type QuestionEvent struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID      uint      `gorm:"index" json:"studentId"`
	CourseID       uint      `gorm:"index" json:"courseId"`
	Topic          string    `gorm:"size:50;index" json:"topic"`
	MessageContent string    `gorm:"type:text" json:"messageContent"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
}

func (QuestionEvent) TableName() string {
	return "question_events"
}
