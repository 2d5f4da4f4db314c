package controller

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/service"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DocumentController struct {
	IngestService *service.IngestService
	DocumentSvc   *service.CourseService
}

func NewDocumentController(ingestService *service.IngestService, courseService *service.CourseService) *DocumentController {
	return &DocumentController{IngestService: ingestService, DocumentSvc: courseService}
}

// Upload godoc
// @Summary Upload course material
// @Description Accepts .pdf, .txt, .md and .m files and ingests them into the course corpus.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param file formData file true "Document file"
// @Param title formData string false "Display title"
// @Success 201 {object} util.Response{data=model.Document}
// @Failure 400 {object} util.Response
// @Router /api/courses/{id}/documents [post]
func (c *DocumentController) Upload(ctx *gin.Context) {
	courseID, ok := util.MustParseUint(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.DocumentSvc.Get(courseID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	if claims.Role != model.Admin && course.OwnerID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := false
	for _, e := range util.AllowedDocumentExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "unsupported file type "+ext)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	title := ctx.PostForm("title")
	if title == "" {
		title = fileHeader.Filename
	}

	doc := &model.Document{
		CourseID:   courseID,
		UploaderID: claims.UserID,
		Filename:   fileHeader.Filename,
		Title:      title,
		Status:     model.DocumentPending,
	}

	if err := c.IngestService.Ingest(ctx.Request.Context(), doc, file); err != nil {
		if errors.Is(err, util.ErrEmptyDocument) {
			util.BadRequest(ctx, "document is empty")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, doc)
}

// List godoc
// @Summary List a course's documents
// @Tags documents
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.Document}
// @Router /api/courses/{id}/documents [get]
func (c *DocumentController) List(ctx *gin.Context) {
	courseID, ok := util.MustParseUint(ctx, "id")
	if !ok {
		return
	}

	docs, err := c.IngestService.DocumentRepo.FindByCourse(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, docs)
}

// Delete godoc
// @Summary Delete a document and its chunks
// @Tags documents
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Document ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/documents/{id} [delete]
func (c *DocumentController) Delete(ctx *gin.Context) {
	id, ok := util.MustParseUint(ctx, "id")
	if !ok {
		return
	}

	doc, err := c.IngestService.DocumentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.DocumentSvc.Get(doc.CourseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if claims.Role != model.Admin && course.OwnerID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	if err := c.IngestService.Delete(ctx.Request.Context(), doc); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
