package controller

import (
	"os"
	"path/filepath"

	"tms_backend/internal/model"
	"tms_backend/internal/service"
	"tms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Service *service.CourseService
}

func NewCourseController(svc *service.CourseService) *CourseController {
	return &CourseController{Service: svc}
}

// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateCourseReq true "Course details"
// @Success 201 {object} util.Response
// @Router /api/teacher/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req service.CreateCourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.CreateCourse(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary Get a course, optionally with its sections
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Param includeSections query bool false "Include section list"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	includeSections := ctx.DefaultQuery("includeSections", "false") == "true"

	view, err := c.Service.GetCourse(ctx.Param("id"), includeSections)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary List courses by status
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Course status filter"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	status := model.CourseStatus(ctx.Query("status"))

	courses, err := c.Service.ListCourses(ctx.Request.Context(), status)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Add a section to a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Param body body service.AddSectionReq true "Section details"
// @Success 201 {object} util.Response
// @Router /api/teacher/courses/{id}/sections [post]
func (c *CourseController) AddSection(ctx *gin.Context) {
	var req service.AddSectionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section, err := c.Service.AddSection(ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, section)
}

// @Summary Publish a course
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id}/publish [post]
func (c *CourseController) PublishCourse(ctx *gin.Context) {
	course, err := c.Service.PublishCourse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courseId": course.ID, "status": course.Status, "publishedAt": course.PublishedAt})
}

// @Summary Assign a course to students or batches
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Param body body service.AssignCourseReq true "Assignment details"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id}/assign [post]
func (c *CourseController) AssignCourse(ctx *gin.Context) {
	var req service.AssignCourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.AssignCourse(ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary List students a course is assigned to
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id}/students [get]
func (c *CourseController) CourseStudents(ctx *gin.Context) {
	view, err := c.Service.CourseAssignees(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Upload media for a section
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param sectionId path string true "Section ID"
// @Param file formData file true "Video or image file"
// @Success 200 {object} util.Response
// @Router /api/teacher/sections/{sectionId}/media [post]
func (c *CourseController) UploadSectionMedia(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), model.GenerateUUID()+filepath.Ext(header.Filename))
	if err := ctx.SaveUploadedFile(header, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	result, err := c.Service.UploadSectionMedia(ctx.Request.Context(), ctx.Param("sectionId"), header, tmpPath, claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
