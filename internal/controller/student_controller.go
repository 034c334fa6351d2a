package controller

import (
	"tms_backend/internal/service"
	"tms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	Service *service.UserService
}

func NewStudentController(svc *service.UserService) *StudentController {
	return &StudentController{Service: svc}
}

// @Summary Courses assigned to the current student with progress
// @Tags students
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/student/courses [get]
func (c *StudentController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.Service.StudentCourses(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Dashboard stats for the current student
// @Tags students
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/student/dashboard [get]
func (c *StudentController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.Service.GetDashboardStats(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary Courses and progress for a specific student
// @Tags students
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Student ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/students/{id}/courses [get]
func (c *StudentController) StudentCourses(ctx *gin.Context) {
	courses, err := c.Service.StudentCourses(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}
