package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ims/ims/internal/messaging/messages"
	"github.com/ims/ims/internal/messaging/users"
)

// AppState holds all application services
type AppState struct {
	UserService    users.UserService
	MessageService messages.MessageService
	Logger         *zap.Logger
}

// RouterConfig carries the transport settings taken from config
type RouterConfig struct {
	MaxRequestSize int64
	AllowOrigins   []string
}

// NewRouter builds the HTTP handler for the messaging API
func NewRouter(as *AppState, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(corsMiddleware(cfg.AllowOrigins))
	router.Use(RequestLoggingMiddleware(as.Logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		as.Logger.Error("Recovered from panic",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered))
		abortWithError(c, http.StatusInternalServerError, internalErrorMessage)
	}))
	if cfg.MaxRequestSize > 0 {
		router.Use(MaxBodySizeMiddleware(cfg.MaxRequestSize))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	userRoutes := router.Group("/users")
	{
		userRoutes.POST("", createUser(as))
		userRoutes.GET("", listUsers(as))
		userRoutes.GET("/:userId", getUser(as))
		userRoutes.DELETE("/:userId", deleteUser(as))

		messageRoutes := userRoutes.Group("/:userId/messages")
		{
			messageRoutes.POST("", sendMessage(as))
			messageRoutes.GET("", getUserMessages(as))
			messageRoutes.GET("/:messageId", getUserMessage(as))
			messageRoutes.DELETE("", deleteUserMessages(as))
			messageRoutes.DELETE("/:messageId", deleteUserMessage(as))
		}
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Location", requestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
