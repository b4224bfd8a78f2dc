package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/classquiz/config"
	"github.com/lshigami/classquiz/internal/auth"
	"github.com/lshigami/classquiz/internal/controller/account"
	"github.com/lshigami/classquiz/internal/controller/student"
	"github.com/lshigami/classquiz/internal/controller/teacher"
	"github.com/lshigami/classquiz/internal/controller/user"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// Handlers groups every controller the API mounts.
type Handlers struct {
	fx.In

	Account       *account.AccountController
	Quiz          *user.QuizController
	Feed          *user.FeedController
	Materi        *user.MateriController
	User          *user.UserController
	Student       *student.StudentController
	TeacherQuiz   *teacher.QuizController
	TeacherResult *teacher.ResultController
	TeacherMateri *teacher.MateriController
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.Static(cfg.Storage.URL, cfg.Storage.Root)

	return r
}

// Register mounts the API under /api.
func Register(r *gin.Engine, authn auth.Authenticator, h Handlers) {
	api := r.Group("/api")
	api.POST("/register", h.Account.Register)
	api.POST("/login", h.Account.Login)

	authed := api.Group("", auth.Middleware(authn))
	{
		authed.POST("/logout", h.Account.Logout)

		authed.GET("/quizzes", h.Quiz.ListQuizzes)
		authed.GET("/quizzes/:slug", h.Quiz.ShowQuiz)

		authed.GET("/feeds", h.Feed.ListFeeds)
		authed.POST("/feeds", h.Feed.CreateFeed)
		authed.POST("/feeds/:feedId/reply", h.Feed.ReplyFeed)

		authed.GET("/materi", h.Materi.ListMateri)
		authed.GET("/materi/:id", h.Materi.ShowMateri)

		authed.GET("/users", h.User.ListUsers)
		authed.GET("/users/status", h.User.UserStatus)
		authed.GET("/users/:id", h.User.ShowUser)
		authed.GET("/students", h.User.ListStudents)
		authed.GET("/teachers", h.User.ListTeachers)
	}

	siswa := authed.Group("/siswa", auth.Require(auth.CapSubmitAnswers))
	{
		siswa.GET("/result", auth.Require(auth.CapViewOwnResults), h.Student.MyResults)
		siswa.POST("/result/:slug/quiz", h.Student.SubmitQuiz)
		siswa.POST("/result/:slug/essay", h.Student.SubmitEssay)
	}

	guru := authed.Group("/guru")
	{
		manage := auth.Require(auth.CapManageQuizzes)
		guru.POST("/result/:slug/quiz", manage, h.TeacherResult.PreviewQuiz)
		guru.POST("/quizzes", manage, h.TeacherQuiz.CreateQuiz)
		guru.PUT("/quizzes/:slug", manage, h.TeacherQuiz.UpdateQuiz)
		guru.DELETE("/quizzes/:slug", manage, h.TeacherQuiz.DeleteQuiz)
		guru.DELETE("/quizzes/questions/:id/file", manage, h.TeacherQuiz.DeleteQuestionFile)
		guru.DELETE("/quizzes/options/:id", manage, h.TeacherQuiz.DeleteOption)

		grade := auth.Require(auth.CapGradeResults)
		guru.GET("/result/:slug/notsubmitted", grade, h.TeacherResult.NotSubmitted)
		guru.GET("/result/:slug/quiz", grade, h.TeacherResult.QuizResults)
		guru.GET("/result/:slug/essay", grade, h.TeacherResult.EssayResults)
		guru.PUT("/result/:id", grade, h.TeacherResult.UpdateScore)

		materi := auth.Require(auth.CapManageMateri)
		guru.POST("/materi", materi, h.TeacherMateri.CreateMateri)
		guru.PUT("/materi/:id", materi, h.TeacherMateri.UpdateMateri)
		guru.DELETE("/materi/:id", materi, h.TeacherMateri.DeleteMateri)
		guru.DELETE("/materi/:id/image", materi, h.TeacherMateri.DeleteMateriImage)
	}
}
