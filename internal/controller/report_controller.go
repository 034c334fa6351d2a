package controller

import (
	"tms_backend/internal/service"
	"tms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Service *service.ReportService
}

func NewReportController(svc *service.ReportService) *ReportController {
	return &ReportController{Service: svc}
}

// @Summary Teaching overview counts
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/dashboard [get]
func (c *ReportController) TeacherDashboard(ctx *gin.Context) {
	overview, err := c.Service.TeacherDashboard()
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// @Summary Platform-wide counts and recent students
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/dashboard [get]
func (c *ReportController) AdminDashboard(ctx *gin.Context) {
	stats, err := c.Service.AdminDashboardStats()
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
