package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/eggjam/eggjam-go/internal/client"
	"github.com/eggjam/eggjam-go/internal/config"
	"github.com/eggjam/eggjam-go/internal/handler"
	"github.com/eggjam/eggjam-go/internal/middleware"
	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/service"
	"github.com/eggjam/eggjam-go/internal/store"
	"github.com/eggjam/eggjam-go/pkg/logger"
	"github.com/eggjam/eggjam-go/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig("configs/eggjam-api.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("eggjam-api starting...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Relational store with auto-migration.
	db, err := store.NewDB(ctx, cfg.Postgres.DSN())
	if err != nil {
		zapLogger.Fatal("connect postgres", zap.Error(err))
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		zapLogger.Fatal("run migrations", zap.Error(err))
	}

	// Durable conversation sessions in redis.
	redisClient, err := redis.NewRedisClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("connect redis", zap.Error(err))
	}
	defer redisClient.Close()
	sessions := store.NewRedisSessionStore(redisClient)

	llmClient := client.NewOpenAIClient(cfg.OpenAI, zapLogger)

	// Services.
	riskService := service.NewRiskService()
	assessmentService := service.NewAssessmentService()
	conversationService := service.NewConversationService(llmClient, riskService, sessions, zapLogger)
	challengeService := service.NewChallengeService(llmClient, db, zapLogger)
	monitorService := service.NewMonitorService(llmClient, zapLogger)
	detoxService := service.NewDetoxService(llmClient, zapLogger)
	exposureService := service.NewExposureService()
	mediationService := service.NewMediationService()
	discoveryService := service.NewDiscoveryService(llmClient, zapLogger)
	screeningService := service.NewScreeningService()
	tutorService := service.NewTutorService(llmClient, zapLogger)
	engagementService := service.NewEngagementService(db, zapLogger)
	insightService := service.NewInsightService(db, monitorService, zapLogger)
	circleService := service.NewCircleService(db, service.NewCircleHub(zapLogger), zapLogger)
	authService := service.NewAuthService(db, cfg.Auth, zapLogger)
	platformService := service.NewPlatformService(db, zapLogger)

	if err := platformService.SeedDefaults(ctx); err != nil {
		zapLogger.Fatal("seed platform configs", zap.Error(err))
	}

	// Handlers.
	conversationHandler := handler.NewConversationHandler(conversationService, db, zapLogger)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService, db, zapLogger)
	moodHandler := handler.NewMoodHandler(db, zapLogger)
	challengeHandler := handler.NewChallengeHandler(challengeService, zapLogger)
	circleHandler := handler.NewCircleHandler(circleService, zapLogger)
	advancedHandler := handler.NewAdvancedHandler(
		monitorService, detoxService, exposureService, mediationService,
		discoveryService, screeningService, tutorService,
		engagementService, insightService, zapLogger)
	adminHandler := handler.NewAdminHandler(platformService, zapLogger)
	authHandler := handler.NewAuthHandler(authService, zapLogger)

	r := gin.Default()
	r.Use(middleware.CORS())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": cfg.Server.Name})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	conversation := r.Group("/api/conversation")
	{
		conversation.POST("/chat", conversationHandler.Chat)
		conversation.GET("/history/:session_id", conversationHandler.History)
		conversation.DELETE("/session/:session_id", conversationHandler.DeleteSession)
	}

	assessment := r.Group("/api/assessment")
	{
		assessment.GET("/questions/:type", assessmentHandler.Questions)
		assessment.POST("/submit", assessmentHandler.Submit)
		assessment.GET("/results/:user_id", assessmentHandler.Results)
		assessment.GET("/result/:result_id", assessmentHandler.Result)
	}

	mood := r.Group("/api/mood")
	{
		mood.POST("/log", moodHandler.Log)
		mood.GET("/history/:user_id", moodHandler.History)
	}

	challenges := r.Group("/api/challenges")
	{
		challenges.POST("/generate", challengeHandler.Generate)
		challenges.POST("/quest/generate", challengeHandler.GenerateQuest)
		challenges.POST("/complete", challengeHandler.Complete)
		challenges.GET("/completed/:user_id", challengeHandler.Completed)
		challenges.GET("/surprise/:user_id", challengeHandler.Surprise)
	}

	circles := r.Group("/api/circles")
	{
		circles.GET("", circleHandler.List)
		circles.POST("", circleHandler.Create)
		circles.POST("/join", circleHandler.Join)
		circles.GET("/:circle_id/messages", circleHandler.Messages)
		circles.POST("/:circle_id/messages", circleHandler.PostMessage)
	}
	r.GET("/ws/circles", circleHandler.HandleWebSocket)

	advanced := r.Group("/api/advanced")
	{
		advanced.POST("/mental-health/analyze", advancedHandler.AnalyzeSession)
		advanced.GET("/mental-health/history/:user_id", advancedHandler.MoodHistory)

		advanced.POST("/detox/set-baseline", advancedHandler.SetDetoxBaseline)
		advanced.POST("/detox/log-screen-time", advancedHandler.LogScreenTime)
		advanced.POST("/detox/tips", advancedHandler.DetoxTips)
		advanced.GET("/detox/progress/:user_id", advancedHandler.DetoxProgress)

		advanced.GET("/exam-anxiety/levels", advancedHandler.ExposureLevels)
		advanced.GET("/exam-anxiety/progress/:user_id", advancedHandler.ExposureProgress)
		advanced.POST("/exam-anxiety/start-session", advancedHandler.StartExposureSession)
		advanced.POST("/exam-anxiety/submit-results", advancedHandler.SubmitExposureResults)

		advanced.POST("/purpose/discover", advancedHandler.DiscoverPurpose)
		advanced.GET("/purpose/careers/:user_id", advancedHandler.SavedCareers)
		advanced.POST("/purpose/subject-relevance", advancedHandler.SubjectRelevance)

		advanced.POST("/tutor/ask", advancedHandler.AskTutor)
		advanced.GET("/tutor/practice/:subject", advancedHandler.TutorPractice)

		advanced.POST("/learning-disabilities/analyze-typing", advancedHandler.AnalyzeTyping)
		advanced.POST("/learning-disabilities/cognitive-test", advancedHandler.SubmitCognitiveTest)
		advanced.GET("/learning-disabilities/screening/:user_id", advancedHandler.ScreeningReport)

		advanced.POST("/parent/mediate/analyze-tone", advancedHandler.AnalyzeTone)
		advanced.POST("/parent/mediate/improve", advancedHandler.ImproveMessage)
		advanced.GET("/parent/mediate/templates", advancedHandler.MediationTemplates)
		advanced.GET("/parent/insights/:student_id", advancedHandler.ParentInsights)
		advanced.GET("/parent/weekly-report/:student_id", advancedHandler.WeeklyReport)

		advanced.POST("/engagement/daily-checkin", advancedHandler.DailyCheckin)
		advanced.GET("/engagement/stats/:user_id", advancedHandler.EngagementStats)

		advanced.GET("/admin/school-overview/:school_id", advancedHandler.SchoolOverview)
	}

	admin := r.Group("/api/platform-admin",
		middleware.RequireAuth(authService),
		middleware.RequireRole(model.RoleAdmin, model.RoleSchoolAdmin))
	{
		admin.GET("/configs", adminHandler.Configs)
		admin.POST("/configs", adminHandler.CreateConfig)
		admin.GET("/configs/:key", adminHandler.Config)
		admin.PUT("/configs/:key", adminHandler.UpdateConfig)
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/schools", adminHandler.Schools)
		admin.POST("/schools", adminHandler.CreateSchool)
		admin.GET("/schools/:school_id", adminHandler.School)
		admin.GET("/schools/:school_id/students", adminHandler.SchoolStudents)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zapLogger.Info("eggjam-api started", zap.Int("port", cfg.Server.Port))

	if err := r.Run(addr); err != nil {
		zapLogger.Fatal("server exited", zap.Error(err))
	}
}
