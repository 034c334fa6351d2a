package controller

import (
	"tms_backend/internal/service"
	"tms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	Service *service.TestService
}

func NewTestController(svc *service.TestService) *TestController {
	return &TestController{Service: svc}
}

type submitTestReq struct {
	Answers []service.SubmittedAnswer `json:"answers"`
}

type addQuestionsReq struct {
	Questions []service.TestQuestionReq `json:"questions" binding:"required,min=1,dive"`
}

type gradeAnswerReq struct {
	QuestionID string `json:"questionId" binding:"required"`
	IsCorrect  *bool  `json:"isCorrect" binding:"required"`
	Points     int    `json:"points"`
}

// @Summary Create a test for a course
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateTestReq true "Test details"
// @Success 201 {object} util.Response
// @Router /api/teacher/tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	var req service.CreateTestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.CreateTest(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

// @Summary Add questions to a test
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Param body body addQuestionsReq true "Questions"
// @Success 201 {object} util.Response
// @Router /api/teacher/tests/{id}/questions [post]
func (c *TestController) AddQuestions(ctx *gin.Context) {
	var req addQuestionsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.Service.AddQuestions(ctx.Param("id"), req.Questions)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, questions)
}

// @Summary Delete a question from a test
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Param questionId path string true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/tests/{id}/questions/{questionId} [delete]
func (c *TestController) DeleteQuestion(ctx *gin.Context) {
	if err := c.Service.DeleteQuestion(ctx.Param("id"), ctx.Param("questionId")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"questionId": ctx.Param("questionId")})
}

// @Summary Get a test, optionally with its questions
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Param includeQuestions query bool false "Include question list"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	includeQuestions := ctx.DefaultQuery("includeQuestions", "false") == "true"

	view, err := c.Service.GetTest(ctx.Param("id"), includeQuestions)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary List tests for a course
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/tests [get]
func (c *TestController) ListByCourse(ctx *gin.Context) {
	tests, err := c.Service.ListByCourse(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// @Summary Submit answers for a test
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Param body body submitTestReq true "Submitted answers"
// @Success 201 {object} util.Response
// @Router /api/tests/{id}/submit [post]
func (c *TestController) SubmitTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submitTestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Submit(ctx.Param("id"), claims.UserID, req.Answers)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// @Summary Get a submission with graded answers
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Param submissionId path string true "Submission ID"
// @Success 200 {object} util.Response
// @Router /api/tests/{id}/submissions/{submissionId} [get]
func (c *TestController) GetSubmission(ctx *gin.Context) {
	view, err := c.Service.GetSubmission(ctx.Param("id"), ctx.Param("submissionId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Manually grade a text answer
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param submissionId path string true "Submission ID"
// @Param body body gradeAnswerReq true "Grading decision"
// @Success 200 {object} util.Response
// @Router /api/teacher/submissions/{submissionId}/grade [post]
func (c *TestController) GradeAnswer(ctx *gin.Context) {
	var req gradeAnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.Service.GradeAnswer(ctx.Param("submissionId"), req.QuestionID, *req.IsCorrect, req.Points)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}
