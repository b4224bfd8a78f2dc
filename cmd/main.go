package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/classquiz/config"
	"github.com/lshigami/classquiz/database"
	_ "github.com/lshigami/classquiz/docs"
	"github.com/lshigami/classquiz/internal/auth"
	"github.com/lshigami/classquiz/internal/controller/account"
	"github.com/lshigami/classquiz/internal/controller/student"
	"github.com/lshigami/classquiz/internal/controller/teacher"
	"github.com/lshigami/classquiz/internal/controller/user"
	"github.com/lshigami/classquiz/internal/logger"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/lshigami/classquiz/internal/repository"
	"github.com/lshigami/classquiz/internal/router"
	"github.com/lshigami/classquiz/internal/service"
	"github.com/lshigami/classquiz/internal/storage"
	"github.com/lshigami/classquiz/internal/validation"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title ClassQuiz API
// @version 1.0
// @description Classroom quizzes, essays, lesson materials and a class feed for students (siswa) and teachers (guru).
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	validation.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			storage.NewFileStore,
			auth.NewTokenManager,
			router.NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewTokenRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewResultRepository,
			repository.NewFeedRepository,
			repository.NewMateriRepository,
		),

		fx.Provide(
			service.NewGradingEngine,
			service.NewEssayReviewer,
			service.NewAuthService,
			service.NewQuizService,
			service.NewSubmissionService,
			service.NewResultService,
			service.NewFeedService,
			service.NewMateriService,
			service.NewUserService,
		),

		fx.Provide(
			account.NewAccountController,
			user.NewQuizController,
			user.NewFeedController,
			user.NewMateriController,
			user.NewUserController,
			student.NewStudentController,
			teacher.NewQuizController,
			teacher.NewResultController,
			teacher.NewMateriController,
		),

		fx.Invoke(func(cfg *config.Config) { logger.SetLevel(cfg.LogLevel) }),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterShutdownHooks),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

// RegisterRoutesAndStartServer mounts the API and ties the HTTP server to the fx lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	engine *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	handlers router.Handlers,
) {
	router.Register(engine, authService, handlers)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("ClassQuiz API starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// RegisterShutdownHooks drains essay reviews and then closes the database.
// Hooks stop in reverse order, so this runs after the HTTP server has shut down.
func RegisterShutdownHooks(lc fx.Lifecycle, db *gorm.DB, submissions service.SubmissionService) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := submissions.Drain(ctx); err != nil {
				log.Warn().Err(err).Msg("Essay reviews did not finish before shutdown")
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			log.Info().Msg("Closing database connection...")
			return sqlDB.Close()
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
