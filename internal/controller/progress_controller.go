package controller

import (
	"tms_backend/internal/service"
	"tms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Service *service.ProgressService
}

func NewProgressController(svc *service.ProgressService) *ProgressController {
	return &ProgressController{Service: svc}
}

type completeSectionReq struct {
	CourseID  string `json:"courseId" binding:"required"`
	TimeSpent int    `json:"timeSpent"`
}

// @Summary Mark a section complete and accumulate time spent
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sectionId path string true "Section ID"
// @Param body body completeSectionReq true "Completion details"
// @Success 200 {object} util.Response
// @Router /api/student/sections/{sectionId}/complete [post]
func (c *ProgressController) CompleteSection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req completeSectionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.CompleteSection(claims.UserID, req.CourseID, ctx.Param("sectionId"), req.TimeSpent)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Per-section progress for the current student in a course
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/student/courses/{courseId}/progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entries, err := c.Service.GetStudentProgress(claims.UserID, ctx.Param("courseId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	summary, err := c.Service.CourseProgress(claims.UserID, ctx.Param("courseId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"sections": entries, "summary": summary})
}
