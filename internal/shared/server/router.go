package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"study-backend/internal/documents"
	"study-backend/internal/exams"
	"study-backend/internal/progress"
	"study-backend/internal/shared/config"
	"study-backend/internal/shared/server/middleware"
	"study-backend/internal/shared/server/respond"
	"study-backend/internal/uploads"
	"study-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	UploadHandler   *uploads.Handler
	DocumentHandler *documents.Handler
	UserHandler     *users.Handler
	ProgressHandler *progress.Handler
	ExamHandler     *exams.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"status":  "ok",
			"message": "AI Study Assistant API is running",
		})
	})
	deps.UploadHandler.RegisterRoutes(api)
	deps.DocumentHandler.RegisterRoutes(api)
	deps.UserHandler.RegisterRoutes(api)
	deps.ProgressHandler.RegisterRoutes(api)
	deps.ExamHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3001"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
