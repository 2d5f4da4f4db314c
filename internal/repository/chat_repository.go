package repository

import (
	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) CreateSession(session *model.ChatSession) error {
	return r.DB.Create(session).Error
}

func (r *ChatRepository) FindSession(id string, studentID uint) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.DB.Where("id = ? AND student_id = ?", id, studentID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ChatRepository) FindSessionsByStudent(studentID uint, courseID uint) ([]model.ChatSession, error) {
	q := r.DB.Where("student_id = ?", studentID)
	if courseID != 0 {
		q = q.Where("course_id = ?", courseID)
	}
	var sessions []model.ChatSession
	err := q.Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *ChatRepository) CreateMessage(message *model.ChatMessage) error {
	return r.DB.Create(message).Error
}

// FindMessagesBySession returns messages oldest first. A positive limit
// keeps only the most recent messages.
func (r *ChatRepository) FindMessagesBySession(sessionID string, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	q := r.DB.Where("session_id = ?", sessionID)
	if limit > 0 {
		q = q.Order("created_at DESC").Limit(limit)
	} else {
		q = q.Order("created_at ASC")
	}
	if err := q.Find(&messages).Error; err != nil {
		return nil, err
	}
	if limit > 0 {
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
	}
	return messages, nil
}
