package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/vhtran/talentflow/config"
	_ "github.com/vhtran/talentflow/docs" // Swagger docs - auto-generated
	adminctrl "github.com/vhtran/talentflow/internal/controller/admin"
	candidatectrl "github.com/vhtran/talentflow/internal/controller/candidate"
	"github.com/vhtran/talentflow/internal/database"
	"github.com/vhtran/talentflow/internal/logger"
	"github.com/vhtran/talentflow/internal/model"
	"github.com/vhtran/talentflow/internal/repository"
	"github.com/vhtran/talentflow/internal/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title TalentFlow API
// @version 1.0
// @description Recruitment tracking backend: job listings with reorder persistence, candidate roster, assessment builder / take flow / deterministic scoring.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewJobRepository,
			repository.NewCandidateRepository,
			repository.NewAssessmentRepository,
			repository.NewSubmissionRepository,
		),

		// Services layer
		fx.Provide(
			service.NewValidationService,
			service.NewScoringService,
			service.NewJobService,
			service.NewCandidateService,
			service.NewAssessmentService,
			service.NewSubmissionService,
		),

		// API controllers layer
		fx.Provide(
			adminctrl.NewJobController,
			adminctrl.NewCandidateController,
			adminctrl.NewAssessmentController,
			candidatectrl.NewTakeController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	jobCtrl *adminctrl.JobController,
	candidateCtrl *adminctrl.CandidateController,
	assessmentCtrl *adminctrl.AssessmentController,
	takeCtrl *candidatectrl.TakeController,
) {
	adminGroup := router.Group("/api/v1/admin")
	{
		jobsGroup := adminGroup.Group("/jobs")
		jobsGroup.POST("", jobCtrl.CreateJob)
		jobsGroup.GET("", jobCtrl.ListJobs)
		jobsGroup.GET("/:job_id", jobCtrl.GetJob)
		jobsGroup.PUT("/:job_id", jobCtrl.UpdateJob)
		jobsGroup.PATCH("/:job_id/archive", jobCtrl.ToggleArchive)
		jobsGroup.PATCH("/:job_id/reorder", jobCtrl.ReorderJob)

		candidatesGroup := adminGroup.Group("/candidates")
		candidatesGroup.POST("", candidateCtrl.CreateCandidate)
		candidatesGroup.GET("", candidateCtrl.ListCandidates)
		candidatesGroup.PATCH("/:candidate_id/stage", candidateCtrl.UpdateStage)
		candidatesGroup.GET("/:candidate_id/timeline", candidateCtrl.GetTimeline)

		assessmentsGroup := adminGroup.Group("/assessments")
		assessmentsGroup.POST("", assessmentCtrl.CreateAssessment)
		assessmentsGroup.GET("", assessmentCtrl.ListAssessments)
		assessmentsGroup.POST("/preview-score", assessmentCtrl.PreviewScore)
		assessmentsGroup.GET("/question-defaults/:type", assessmentCtrl.QuestionTemplate)
		assessmentsGroup.GET("/:assessment_id", assessmentCtrl.GetAssessment)
		assessmentsGroup.PUT("/:assessment_id", assessmentCtrl.UpdateAssessment)
		assessmentsGroup.DELETE("/:assessment_id", assessmentCtrl.DeleteAssessment)
		assessmentsGroup.PUT("/:assessment_id/draft", assessmentCtrl.SaveDraft)
		assessmentsGroup.GET("/:assessment_id/draft", assessmentCtrl.GetDraft)
		assessmentsGroup.DELETE("/:assessment_id/draft", assessmentCtrl.DiscardDraft)
		assessmentsGroup.GET("/:assessment_id/submissions", assessmentCtrl.ListSubmissions)
	}

	publicGroup := router.Group("/api/v1")
	{
		publicGroup.GET("/assessments/:assessment_id", takeCtrl.GetAssessment)
		publicGroup.POST("/assessments/:assessment_id/submissions", takeCtrl.SubmitAssessment)
		publicGroup.GET("/submissions/:submission_id", takeCtrl.GetSubmission)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("TalentFlow API server starting on port %s", cfg.Server.Port)
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
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Job{},
		&model.Candidate{},
		&model.StageEvent{},
		&model.Assessment{},
		&model.Question{},
		&model.Option{},
		&model.AssessmentDraft{},
		&model.Submission{},
		&model.SubmissionAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
