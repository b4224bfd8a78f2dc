package student

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/controller"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/service"
)

// StudentController handles quiz attempts and the student's own results.
type StudentController struct {
	submissionService service.SubmissionService
	resultService     service.ResultService
}

func NewStudentController(submissionService service.SubmissionService, resultService service.ResultService) *StudentController {
	return &StudentController{submissionService: submissionService, resultService: resultService}
}

// MyResults godoc
// @Summary List the caller's results with answers and quizzes
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]dto.ResultResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Router /siswa/result [get]
func (c *StudentController) MyResults(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	results, err := c.resultService.Mine(p)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", results)
}

// SubmitQuiz godoc
// @Summary Submit answers to a multiple choice quiz
// @Description "data" is an array of question groups, or a string holding that array. The first option with a truthy "selected" is the answer; correctness is read from the stored options.
// @Tags Student
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Quiz slug"
// @Param payload body dto.SubmitQuizRequest true "Answer groups"
// @Success 201 {object} dto.Response{data=dto.ResultResponse}
// @Failure 400 {object} dto.ErrorResponse "Already submitted, deadline passed or invalid answers"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse "Answer saving failed"
// @Router /siswa/result/{slug}/quiz [post]
func (c *StudentController) SubmitQuiz(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}

	raw, ok := controller.AnswerData(ctx)
	if !ok {
		return
	}

	result, err := c.submissionService.SubmitQuiz(p, ctx.Param("slug"), raw)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.Created(ctx, apperror.MsgAnswersSaved, result)
}

// SubmitEssay godoc
// @Summary Answer one essay question
// @Description Accepts an optional comment and an optional file (jpeg, png, doc, docx or pdf up to 10MB). Each question can be answered once.
// @Tags Student
// @Accept mpfd,json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Quiz slug"
// @Param question_id formData int true "Question ID"
// @Param comment formData string false "Answer text"
// @Param file formData file false "Answer file"
// @Success 201 {object} dto.Response{data=dto.ResultResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /siswa/result/{slug}/essay [post]
func (c *StudentController) SubmitEssay(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	var req dto.SubmitEssayRequest
	if !controller.Bind(ctx, &req) {
		return
	}
	result, err := c.submissionService.SubmitEssay(p, ctx.Param("slug"), req, controller.OptionalFile(ctx, "file"))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.Created(ctx, apperror.MsgAnswersSaved, result)
}
