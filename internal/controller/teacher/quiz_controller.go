package teacher

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/controller"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/service"
	"github.com/lshigami/classquiz/internal/validation"
	"github.com/pkg/errors"
)

const maxUploadMemory = 32 << 20

// QuizController manages quizzes, their questions and options.
type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// CreateQuiz godoc
// @Summary Create a quiz with its questions
// @Description JSON body, or multipart with scalar fields, "questions" as a JSON string, "banner" and "questions[<i>][file]" uploads.
// @Description Multiple choice questions need 1 to 5 options; at most 10 questions.
// @Tags Teacher
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param payload body dto.QuizCreateRequest true "Quiz"
// @Success 201 {object} dto.Response{data=dto.QuizResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse
// @Router /guru/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	var req dto.QuizCreateRequest
	files, err := bindQuizPayload(ctx, &req, &req.Questions)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	quiz, err := c.quizService.Create(p, req, files)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.Created(ctx, apperror.MsgCreated, quiz)
}

// UpdateQuiz godoc
// @Summary Update a quiz, its questions and options
// @Description Questions and options with id -1 are created; others must belong to the quiz.
// @Tags Teacher
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Quiz slug"
// @Param payload body dto.QuizUpdateRequest true "Quiz"
// @Success 200 {object} dto.Response{data=dto.QuizResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /guru/quizzes/{slug} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var req dto.QuizUpdateRequest
	files, err := bindQuizPayload(ctx, &req, &req.Questions)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	quiz, err := c.quizService.Update(ctx.Param("slug"), req, files)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, apperror.MsgUpdated, quiz)
}

// DeleteQuiz godoc
// @Summary Delete a quiz with its questions and options
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Quiz slug"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse
// @Router /guru/quizzes/{slug} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if err := c.quizService.Delete(ctx.Param("slug")); err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, apperror.MsgDeleted, nil)
}

// DeleteQuestionFile godoc
// @Summary Remove the attachment of a question
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse "Question has no file"
// @Failure 404 {object} dto.ErrorResponse
// @Router /guru/quizzes/questions/{id}/file [delete]
func (c *QuizController) DeleteQuestionFile(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.quizService.DeleteQuestionFile(id); err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, apperror.MsgDeleted, nil)
}

// DeleteOption godoc
// @Summary Delete one option
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Option ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse
// @Router /guru/quizzes/options/{id} [delete]
func (c *QuizController) DeleteOption(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.quizService.DeleteOption(id); err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, apperror.MsgOptionDeleted, nil)
}

// bindQuizPayload fills req from JSON or multipart. In multipart the scalar fields come from
// the form, questions from the "questions" JSON string, and files from the uploads.
func bindQuizPayload(ctx *gin.Context, req interface{}, questions *[]dto.QuestionInput) (service.QuizFiles, error) {
	files := service.QuizFiles{Questions: map[int]*multipart.FileHeader{}}

	if !strings.HasPrefix(ctx.ContentType(), binding.MIMEMultipartPOSTForm) {
		if err := ctx.ShouldBindJSON(req); err != nil {
			return files, validation.Error(err)
		}
		return files, nil
	}

	if err := ctx.Request.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return files, apperror.Field("questions", "multipart form could not be read")
	}
	if err := binding.MapFormWithTag(req, ctx.Request.PostForm, "form"); err != nil {
		return files, validation.Error(err)
	}
	if raw := strings.TrimSpace(ctx.Request.PostForm.Get("questions")); raw != "" {
		if err := json.Unmarshal([]byte(raw), questions); err != nil {
			return files, apperror.Field("questions", "questions must be a JSON array")
		}
	}
	if err := validation.Struct(req); err != nil {
		return files, err
	}

	files.Banner = controller.OptionalFile(ctx, "banner")
	for i := range *questions {
		if fh := controller.OptionalFile(ctx, fmt.Sprintf("questions[%d][file]", i)); fh != nil {
			files.Questions[i] = fh
		}
	}
	return files, nil
}
