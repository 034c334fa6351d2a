package controller

import (
	"strconv"

	"tms_backend/internal/service"
	"tms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BatchController struct {
	Service *service.BatchService
}

func NewBatchController(svc *service.BatchService) *BatchController {
	return &BatchController{Service: svc}
}

type assignBatchStudentsReq struct {
	StudentIDs []string `json:"studentIds" binding:"required,min=1"`
}

// @Summary Create a training batch
// @Tags batches
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateBatchReq true "Batch details"
// @Success 201 {object} util.Response
// @Router /api/admin/batches [post]
func (c *BatchController) CreateBatch(ctx *gin.Context) {
	var req service.CreateBatchReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	batch, err := c.Service.CreateBatch(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, batch)
}

// @Summary List batches with enrollment aggregates
// @Tags batches
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Batch status filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} util.PageResponse
// @Router /api/admin/batches [get]
func (c *BatchController) ListBatches(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	rows, total, err := c.Service.ListBatches(ctx.Query("status"), page, limit)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.SuccessPage(ctx, rows, total, page, limit)
}

// @Summary Assign students to a batch
// @Tags batches
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Batch ID"
// @Param body body assignBatchStudentsReq true "Student IDs"
// @Success 200 {object} util.Response
// @Router /api/admin/batches/{id}/students [post]
func (c *BatchController) AssignStudents(ctx *gin.Context) {
	var req assignBatchStudentsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.AssignStudents(ctx.Param("id"), req.StudentIDs)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Progress report for every student in a batch
// @Tags batches
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Batch ID"
// @Success 200 {object} util.Response
// @Router /api/admin/batches/{id}/progress [get]
func (c *BatchController) BatchProgress(ctx *gin.Context) {
	report, err := c.Service.BatchProgress(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
