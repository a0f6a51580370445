package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yamboly/tutor-dashboard-service/internal/services"
	"github.com/yamboly/tutor-dashboard-service/internal/utils"
)

type HandlerManager struct {
	reportHandler     *ReportHandler
	statisticsHandler *StatisticsHandler
	chatHandler       *ChatHandler
	exerciseHandler   *ExerciseHandler
	studentHandler    *StudentHandler

	verifier TokenVerifier
	logger   utils.Logger
}

func NewHandlerManager(
	reportService services.ReportService,
	statisticsService services.StatisticsService,
	chatService services.ChatService,
	exerciseService services.ExerciseService,
	studentService services.StudentService,
	verifier TokenVerifier,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		reportHandler:     NewReportHandler(reportService, logger),
		statisticsHandler: NewStatisticsHandler(statisticsService, logger),
		chatHandler:       NewChatHandler(chatService, logger),
		exerciseHandler:   NewExerciseHandler(exerciseService, logger),
		studentHandler:    NewStudentHandler(studentService, logger),
		verifier:          verifier,
		logger:            logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "tutor-dashboard-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(AuthMiddleware(hm.verifier, hm.logger))
	{
		// Report routes
		reports := v1.Group("/reports")
		{
			reports.GET("/:user_id", hm.reportHandler.GetReport)
			reports.GET("/:user_id/export", hm.reportHandler.ExportReport)
		}

		// Statistics routes
		v1.GET("/statistics/:user_id", hm.statisticsHandler.GetStatistics)

		// Chat routes
		chat := v1.Group("/chat")
		{
			chat.GET("/sessions", hm.chatHandler.ListSessions)
			chat.POST("/sessions", hm.chatHandler.CreateSession)
			chat.GET("/sessions/:session_id/messages", hm.chatHandler.GetMessages)
			chat.POST("/sessions/:session_id/messages", hm.chatHandler.SendMessage)
		}

		// Exercise routes
		exercises := v1.Group("/exercises")
		{
			exercises.GET("", hm.exerciseHandler.ListExercises)
			exercises.GET("/pending", hm.exerciseHandler.ListPending)
			exercises.POST("/generate", hm.exerciseHandler.GenerateExercise)
			exercises.POST("/custom", hm.exerciseHandler.GenerateCustomExercise)
			exercises.POST("/:id/solution", hm.exerciseHandler.SubmitSolution)
		}

		// Teacher-facing routes
		teacher := v1.Group("")
		teacher.Use(RequireRole("teacher", "admin"))
		{
			teacher.GET("/students", hm.studentHandler.ListStudents)
			teacher.GET("/courses", hm.studentHandler.ListCourses)
			teacher.GET("/students/:id/subscriptions", hm.studentHandler.GetSubscriptions)
			teacher.PUT("/students/:id/subscriptions", hm.studentHandler.ReplaceSubscriptions)
		}
	}
}
