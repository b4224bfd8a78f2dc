package teacher

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/controller"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/service"
)

// ResultController lets teachers review and grade submissions.
type ResultController struct {
	resultService     service.ResultService
	submissionService service.SubmissionService
}

func NewResultController(resultService service.ResultService, submissionService service.SubmissionService) *ResultController {
	return &ResultController{resultService: resultService, submissionService: submissionService}
}

// PreviewQuiz godoc
// @Summary Grade answers to a multiple choice quiz without saving them
// @Description Same payload as the student submission. Nothing is stored and the deadline is ignored.
// @Tags Teacher
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Quiz slug"
// @Param payload body dto.SubmitQuizRequest true "Answer groups"
// @Success 200 {object} dto.Response{data=dto.ResultResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /guru/result/{slug}/quiz [post]
func (c *ResultController) PreviewQuiz(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	raw, ok := controller.AnswerData(ctx)
	if !ok {
		return
	}

	result, err := c.submissionService.PreviewQuiz(p, ctx.Param("slug"), raw)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", result)
}

// NotSubmitted godoc
// @Summary Students who have not submitted a quiz
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Quiz slug"
// @Success 200 {object} dto.Response{data=[]dto.StudentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /guru/result/{slug}/notsubmitted [get]
func (c *ResultController) NotSubmitted(ctx *gin.Context) {
	students, err := c.resultService.NotSubmitted(ctx.Param("slug"))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", students)
}

// QuizResults godoc
// @Summary Submitted multiple choice results per student
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Quiz slug"
// @Success 200 {object} dto.Response{data=[]dto.StudentResultResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /guru/result/{slug}/quiz [get]
func (c *ResultController) QuizResults(ctx *gin.Context) {
	rows, err := c.resultService.QuizResults(ctx.Param("slug"))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", rows)
}

// EssayResults godoc
// @Summary Submitted essay answers per student
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Quiz slug"
// @Success 200 {object} dto.Response{data=[]dto.StudentResultResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /guru/result/{slug}/essay [get]
func (c *ResultController) EssayResults(ctx *gin.Context) {
	rows, err := c.resultService.EssayResults(ctx.Param("slug"))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", rows)
}

// UpdateScore godoc
// @Summary Set the score of a result
// @Tags Teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Result ID"
// @Param payload body dto.ScoreRequest true "Score"
// @Success 200 {object} dto.Response{data=dto.ResultResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /guru/result/{id} [put]
func (c *ResultController) UpdateScore(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ScoreRequest
	if !controller.Bind(ctx, &req) {
		return
	}
	result, err := c.resultService.UpdateScore(id, req)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, apperror.MsgScoreSaved, result)
}
