package model

import (
	"time"
)

// ChatSession scopes a multi-turn tutoring conversation to one course.
type ChatSession struct {
	UUIDBase
	CourseID  uint   `gorm:"index;type:bigint unsigned" json:"courseId"`
	StudentID uint   `gorm:"index;type:bigint unsigned" json:"studentId"`
	Title     string `gorm:"size:255" json:"title"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

// ChatMessage stores one question/answer exchange together with the
// classified topic and the references the answer was grounded on.
type ChatMessage struct {
	BaseModel
	SessionID string    `gorm:"size:36;index" json:"sessionId"`
	CourseID  uint      `gorm:"index;type:bigint unsigned" json:"courseId"`
	StudentID uint      `gorm:"index;type:bigint unsigned" json:"studentId"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text" json:"answer"`
	Topic     string    `gorm:"size:50;index" json:"topic"`
	Sources   string    `gorm:"type:text" json:"sources"` // JSON-encoded reference list
	AskedAt   time.Time `gorm:"index" json:"askedAt"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
