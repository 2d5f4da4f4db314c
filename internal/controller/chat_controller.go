package controller

import (
	"errors"
	"strings"

	"github.com/vinayramesh7/matlab-ai-tutor/internal/service"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ChatController struct {
	TutorService  *service.TutorService
	CourseService *service.CourseService
}

func NewChatController(tutorService *service.TutorService, courseService *service.CourseService) *ChatController {
	return &ChatController{TutorService: tutorService, CourseService: courseService}
}

// swagger:model AskRequest
type AskRequest struct {
	CourseID  uint   `json:"courseId" binding:"required"`
	SessionID string `json:"sessionId"`
	Question  string `json:"question" binding:"required"`
}

// Ask godoc
// @Summary Ask the tutor a question (SSE stream)
// @Description Streams the answer as server-sent events. The first event carries the session id, topic and source references; message events carry answer tokens.
// @Tags chat
// @Accept json
// @Produce text/event-stream
// @Security ApiKeyAuth
// @Param body body AskRequest true "Question"
// @Success 200 {string} string "SSE stream"
// @Failure 403 {object} util.Response "Not enrolled"
// @Router /api/chat/ask [post]
func (c *ChatController) Ask(ctx *gin.Context) {
	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.Authorize(req.CourseID, claims.UserID, claims.Role); err != nil {
		c.authorizeError(ctx, err)
		return
	}

	session, err := c.TutorService.Session(req.SessionID, claims.UserID, req.CourseID, sessionTitle(req.Question))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	answer, material, err := c.TutorService.Prepare(ctx.Request.Context(), session, req.Question)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	history, err := c.TutorService.History(session)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	stream, errChan := c.TutorService.AI.ChatStream(req.Question, material, history)

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("Transfer-Encoding", "chunked")

	ctx.SSEvent("meta", answer)
	ctx.Writer.Flush()

	var full strings.Builder
	for content := range stream {
		full.WriteString(content)
		ctx.SSEvent("message", content)
		ctx.Writer.Flush()
	}

	if err := <-errChan; err != nil {
		ctx.SSEvent("error", err.Error())
		ctx.Writer.Flush()
	}

	answer.Text = full.String()
	if err := c.TutorService.Persist(session, req.Question, answer); err != nil {
		ctx.SSEvent("error", "answer not saved")
		ctx.Writer.Flush()
	}

	ctx.SSEvent("end", "done")
	ctx.Writer.Flush()
}

// AskSync godoc
// @Summary Ask the tutor a question (single response)
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AskRequest true "Question"
// @Success 200 {object} util.Response{data=service.Answer}
// @Failure 403 {object} util.Response "Not enrolled"
// @Router /api/chat/ask/sync [post]
func (c *ChatController) AskSync(ctx *gin.Context) {
	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.Authorize(req.CourseID, claims.UserID, claims.Role); err != nil {
		c.authorizeError(ctx, err)
		return
	}

	session, err := c.TutorService.Session(req.SessionID, claims.UserID, req.CourseID, sessionTitle(req.Question))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	answer, err := c.TutorService.Ask(ctx.Request.Context(), session, req.Question)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// Sessions godoc
// @Summary List the caller's chat sessions for a course
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param courseId query int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.ChatSession}
// @Router /api/chat/sessions [get]
func (c *ChatController) Sessions(ctx *gin.Context) {
	courseID := util.ParseQueryUint(ctx, "courseId")
	claims := util.GetUserFromContext(ctx)

	sessions, err := c.TutorService.ChatRepo.FindSessionsByStudent(claims.UserID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// History godoc
// @Summary Messages of one chat session
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response{data=[]model.ChatMessage}
// @Failure 404 {object} util.Response
// @Router /api/chat/sessions/{id} [get]
func (c *ChatController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	session, err := c.TutorService.ChatRepo.FindSession(ctx.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	messages, err := c.TutorService.ChatRepo.FindMessagesBySession(session.ID, 0)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, messages)
}

func (c *ChatController) authorizeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

func sessionTitle(question string) string {
	runes := []rune(strings.TrimSpace(question))
	if len(runes) > 60 {
		return string(runes[:60]) + "..."
	}
	return string(runes)
}
