package user

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/classquiz/internal/controller"
	"github.com/lshigami/classquiz/internal/service"
)

// QuizController serves quizzes to any signed-in user.
type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// ListQuizzes godoc
// @Summary List quizzes of one kind
// @Description type=quiz returns multiple choice quizzes with options; any other value returns essay quizzes. Students never see the answer key.
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param type query string false "quiz or essay"
// @Success 200 {object} dto.Response{data=[]dto.QuizResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	quizzes, err := c.quizService.List(p, ctx.Query("type"))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", quizzes)
}

// ShowQuiz godoc
// @Summary Get a quiz with its questions
// @Description Students get 400 for a multiple choice quiz they already submitted.
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Quiz slug"
// @Success 200 {object} dto.Response{data=dto.QuizResponse}
// @Failure 400 {object} dto.ErrorResponse "Already submitted"
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{slug} [get]
func (c *QuizController) ShowQuiz(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	quiz, err := c.quizService.Show(p, ctx.Param("slug"))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", quiz)
}
