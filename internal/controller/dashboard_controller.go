package controller

import (
	"errors"
	"strconv"

	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/service"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	CourseService    *service.CourseService
}

func NewDashboardController(dashboardService *service.DashboardService, courseService *service.CourseService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService, CourseService: courseService}
}

// StudentProgress godoc
// @Summary The caller's mastery dashboard for a course
// @Description Every curriculum concept with its current mastery level, decay applied at read time.
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.StudentDashboard}
// @Router /api/courses/{id}/progress [get]
func (c *DashboardController) StudentProgress(ctx *gin.Context) {
	courseID, ok := util.MustParseUint(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.Authorize(courseID, claims.UserID, claims.Role); err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.Forbidden(ctx)
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	dash, err := c.DashboardService.ForStudent(claims.UserID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dash)
}

// CourseAnalytics godoc
// @Summary Question volume per topic for a course
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseDashboard}
// @Router /api/courses/{id}/analytics [get]
func (c *DashboardController) CourseAnalytics(ctx *gin.Context) {
	courseID, ok := util.MustParseUint(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.Get(courseID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	if claims.Role != model.Admin && course.OwnerID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	dash, err := c.DashboardService.ForCourse(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dash)
}

// RecentActivity godoc
// @Summary The caller's latest question events
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Max events (default 20)"
// @Success 200 {object} util.Response{data=[]model.QuestionEvent}
// @Router /api/activity [get]
func (c *DashboardController) RecentActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	events, err := c.DashboardService.RecentActivity(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, events)
}
