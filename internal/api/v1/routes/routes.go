package routes

import (
	"github.com/gin-gonic/gin"

	"docpod/internal/api/middleware"
	"docpod/internal/api/v1/handlers"
	"docpod/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	PodcastService services.PodcastService
	AuthService    services.AuthService
	MaxUploadBytes int64
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	requireAuth := middleware.Auth(container.AuthService)

	authHandler := handlers.NewAuthHandler(container.AuthService)
	auth := router.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", requireAuth, authHandler.Logout)
	}

	podcastHandler := handlers.NewPodcastHandler(container.PodcastService, container.MaxUploadBytes)
	podcasts := router.Group("/podcasts", requireAuth)
	{
		podcasts.POST("", middleware.BodyLimit(container.MaxUploadBytes), podcastHandler.Create)
		podcasts.GET("", podcastHandler.List)
		podcasts.GET("/export", podcastHandler.Export)
		podcasts.GET("/:id", podcastHandler.Get)
		podcasts.GET("/:id/download", podcastHandler.Download)
		podcasts.DELETE("/:id", podcastHandler.Delete)
	}
}
