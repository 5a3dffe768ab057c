// Package httpapi is the HTTP face of the board. It binds requests, hands
// them to the services, and maps typed errors to status codes; no board rules
// live here.
package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classboard/backend/internal/service"
)

// NewRouter wires every endpoint. List endpoints stay cheap single-query
// reads because clients poll them every few seconds.
func NewRouter(
	auth *service.AuthService,
	sessions *service.SessionService,
	questions *service.QuestionService,
	analytics *service.AnalyticsService,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	authHandler := NewAuthHandler(auth, logger)
	sessionHandler := NewSessionHandler(sessions, analytics, logger)
	questionHandler := NewQuestionHandler(questions, logger)

	authorized := requireAuth(auth)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", authorized, authHandler.Me)
		}

		classes := api.Group("/classes")
		{
			classes.POST("/create", authorized, sessionHandler.Create)
			classes.GET("", authorized, sessionHandler.ListOwn)
			classes.POST("/join", sessionHandler.Join)
			classes.GET("/:id", sessionHandler.Get)
			classes.DELETE("/:id", authorized, sessionHandler.Delete)
			classes.GET("/:id/analytics", sessionHandler.Analytics)
		}

		questionsGroup := api.Group("/questions")
		{
			questionsGroup.POST("", questionHandler.Submit)
			questionsGroup.GET("/class/:classId", questionHandler.ListByClass)
			questionsGroup.DELETE("/class/:classId/clear", authorized, questionHandler.Clear)
			questionsGroup.GET("/:id", questionHandler.Get)
			questionsGroup.PUT("/:id/status", authorized, questionHandler.SetStatus)
			questionsGroup.DELETE("/:id", authorized, questionHandler.Delete)
		}
	}

	return router
}

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
