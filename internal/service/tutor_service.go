package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/vinayramesh7/matlab-ai-tutor/internal/config"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/repository"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/retrieval"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/util"
	"github.com/vinayramesh7/matlab-ai-tutor/pkg/logger"
	"github.com/vinayramesh7/matlab-ai-tutor/pkg/monitoring"

	"go.uber.org/zap"
)

const historyTurns = 6

// Source is one citation attached to an answer, pointing at the course
// material the answer was grounded on.
type Source struct {
	Filename      string `json:"filename"`
	Page          int    `json:"page"`
	PageEstimated bool   `json:"pageEstimated,omitempty"`
	Excerpt       string `json:"excerpt"`
}

// Answer is the assembled response to one tutoring question.
type Answer struct {
	SessionID string   `json:"sessionId"`
	Topic     string   `json:"topic"`
	Sources   []Source `json:"sources"`
	Text      string   `json:"text,omitempty"`
}

// TutorService runs the full question pipeline: classify the topic,
// retrieve relevant course material, update the student's mastery
// record, and hand the grounded prompt to the chat model.
type TutorService struct {
	ChatRepo      *repository.ChatRepository
	AnalyticsRepo *repository.AnalyticsRepository
	Corpus        *CorpusService
	Mastery       *MasteryService
	AI            *AIService
	Engine        *retrieval.Engine
	TopK          int
}

func NewTutorService(
	chatRepo *repository.ChatRepository,
	analyticsRepo *repository.AnalyticsRepository,
	corpus *CorpusService,
	masterySvc *MasteryService,
	ai *AIService,
	cfg config.RetrievalConfig,
) *TutorService {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 4
	}
	return &TutorService{
		ChatRepo:      chatRepo,
		AnalyticsRepo: analyticsRepo,
		Corpus:        corpus,
		Mastery:       masterySvc,
		AI:            ai,
		Engine:        retrieval.NewEngine(engineConfig(cfg)),
		TopK:          topK,
	}
}

func engineConfig(cfg config.RetrievalConfig) retrieval.EngineConfig {
	ec := retrieval.EngineConfig{Synonyms: cfg.Synonyms}
	if len(cfg.Topics) > 0 {
		topics := make([]retrieval.Topic, 0, len(cfg.Topics))
		for _, t := range retrieval.DefaultTopics {
			if kws, ok := cfg.Topics[t.Name]; ok {
				topics = append(topics, retrieval.Topic{Name: t.Name, Keywords: kws})
			} else {
				topics = append(topics, t)
			}
		}
		ec.Topics = topics
	}
	return ec
}

// Session returns an existing chat session or creates a new one when
// sessionID is empty. A session belonging to another student is treated
// as not found.
func (s *TutorService) Session(sessionID string, studentID, courseID uint, title string) (*model.ChatSession, error) {
	if sessionID != "" {
		return s.ChatRepo.FindSession(sessionID, studentID)
	}

	session := &model.ChatSession{
		CourseID:  courseID,
		StudentID: studentID,
		Title:     title,
	}
	if err := s.ChatRepo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

/// Prepare runs everything before the chat model call: retrieval over
// the course corpus, topic classification, the analytics event and the
// mastery update. It returns the answer skeleton and the context block
// for the prompt.
func (s *TutorService) Prepare(ctx context.Context, session *model.ChatSession, question string) (*Answer, string, error) {
	idx, err := s.Corpus.Index(ctx, session.CourseID)
	if err != nil {
		return nil, "", err
	}

	start := time.Now()
	results, topic := s.Engine.Search(idx, question, s.TopK)
	monitoring.RetrievalDuration.Observe(time.Since(start).Seconds())
	monitoring.QuestionCounter.WithLabelValues(topic).Inc()

	if err := s.AnalyticsRepo.RecordQuestion(&model.QuestionEvent{
		StudentID:      session.StudentID,
		CourseID:       session.CourseID,
		Topic:          topic,
		MessageContent: question,
	}); err != nil {
		logger.Log.Warn("question event not recorded", zap.Error(err))
	}

	if _, err := s.Mastery.RecordQuestion(session.StudentID, session.CourseID, topic); err != nil {
		logger.Log.Warn("mastery update failed",
			zap.Uint("studentId", session.StudentID),
			zap.String("concept", topic),
			zap.Error(err))
	}

	answer := &Answer{
		SessionID: session.ID,
		Topic:     topic,
		Sources:   make([]Source, 0, len(results)),
	}
	for _, r := range results {
		answer.Sources = append(answer.Sources, Source{
			Filename:      r.Fragment.Filename,
			Page:          r.Fragment.Page,
			PageEstimated: r.Fragment.PageEstimated,
			Excerpt:       excerpt(r.Fragment.Content, 200),
		})
	}

	return answer, contextBlock(results), nil
}

// contextBlock renders retrieved fragments into the prompt's material
// section, each headed by the citation line the model is told to reuse.
func contextBlock(results []retrieval.Result) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(util.FormatReference(r.Fragment.Filename, r.Fragment.Page))
		b.WriteString("\n")
		b.WriteString(r.Fragment.Content)
	}
	return b.String()
}

func excerpt(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}

// History returns the session's recent exchanges as chat-model turns,
// oldest first.
func (s *TutorService) History(session *model.ChatSession) ([]AIChatMessage, error) {
	messages, err := s.ChatRepo.FindMessagesBySession(session.ID, historyTurns)
	if err != nil {
		return nil, err
	}

	history := make([]AIChatMessage, 0, len(messages)*2)
	for _, m := range messages {
		history = append(history,
			AIChatMessage{Role: "user", Content: m.Question},
			AIChatMessage{Role: "assistant", Content: m.Answer},
		)
	}
	return history, nil
}

// Persist stores the finished exchange on the session.
func (s *TutorService) Persist(session *model.ChatSession, question string, answer *Answer) error {
	sources, err := json.Marshal(answer.Sources)
	if err != nil {
		return err
	}

	return s.ChatRepo.CreateMessage(&model.ChatMessage{
		SessionID: session.ID,
		CourseID:  session.CourseID,
		StudentID: session.StudentID,
		Question:  question,
		Answer:    answer.Text,
		Topic:     answer.Topic,
		Sources:   string(sources),
		AskedAt:   time.Now(),
	})
}

// Ask is the non-streaming question flow: prepare, one chat-model call,
// persist, return the full answer.
func (s *TutorService) Ask(ctx context.Context, session *model.ChatSession, question string) (*Answer, error) {
	answer, material, err := s.Prepare(ctx, session, question)
	if err != nil {
		return nil, err
	}

	text, err := s.AI.Chat(question, material)
	if err != nil {
		return nil, err
	}
	answer.Text = text

	if err := s.Persist(session, question, answer); err != nil {
		logger.Log.Warn("chat message not persisted", zap.String("sessionId", session.ID), zap.Error(err))
	}
	return answer, nil
}
