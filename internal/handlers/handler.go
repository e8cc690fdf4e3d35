package handlers

import (
	"net/http"

	"verbatim/internal/logger"
	"verbatim/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services    *service.Service
	log         *logger.Logger
	corsOrigins []string
}

// NewHandler constructs a new HTTP handler with dependencies.
// corsOrigins lists the exactly-allowed origins; anything else falls back to
// the wildcard response.
func NewHandler(services *service.Service, log *logger.Logger, corsOrigins []string) *Handler {
	return &Handler{services: services, log: log, corsOrigins: corsOrigins}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.corsMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Liveness endpoints
	router.GET("/", h.root)
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerProjectRoutes(router)
	h.registerMediaRoutes(router)

	// Live activity feed (HTTP upgrade) — same port
	router.GET("/ws/activity", h.authGuard, h.wsActivity)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.signup)
		auth.POST("/login", h.login)
		auth.GET("/me", h.authGuard, h.me)
	}
}

func (h *Handler) registerProjectRoutes(r *gin.Engine) {
	projects := r.Group("/projects", h.authGuard)
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.PATCH("/:id", h.updateProject)
		projects.DELETE("/:id", h.deleteProject)
		projects.GET("/:id/transcriptions", h.listTranscriptions)
	}
}

func (h *Handler) registerMediaRoutes(r *gin.Engine) {
	r.POST("/transcribe", h.authGuard, h.transcribe)
	r.POST("/translate", h.authGuard, h.translate)
	r.POST("/voiceover", h.authGuard, h.voiceover)
}

// @Summary      Service banner
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Verbatim API is running",
		"status":  "healthy",
	})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
