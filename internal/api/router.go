// Package api assembles the HTTP router: global middleware, route groups and
// the health and metrics endpoints.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Marga-Ghale/skill-swap/internal/api/handlers"
	"github.com/Marga-Ghale/skill-swap/internal/api/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Instrumentation observes requests and serves the metrics endpoint.
// *metrics.Metrics satisfies it.
type Instrumentation interface {
	Middleware() gin.HandlerFunc
	Handler() http.Handler
}

// RouterDeps is everything the router wires together. Metrics, WebSocket and
// Health are optional.
type RouterDeps struct {
	Handlers       *handlers.Handlers
	Auth           middleware.TokenAuthenticator
	WebSocket      gin.HandlerFunc
	Metrics        Instrumentation
	Health         func() gin.H
	Logger         *slog.Logger
	CORSOrigins    []string
	LoginPerMinute int
}

// NewRouter builds the gin engine with every route of the service.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := deps.Handlers
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/ws", "/metrics"})))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "healthy", "timestamp": time.Now()}
		if deps.Health != nil {
			for k, v := range deps.Health() {
				status[k] = v
			}
		}
		c.JSON(http.StatusOK, status)
	})

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(middleware.NewIPRateLimiter(deps.LoginPerMinute)), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		if deps.WebSocket != nil {
			api.GET("/ws", deps.WebSocket)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Auth))
		{
			users := protected.Group("/users")
			{
				users.GET("", h.Member.List)
				users.GET("/:id", h.Member.Get)
				users.POST("/:id/rating", h.Member.Rate)
			}

			profile := protected.Group("/profile")
			{
				profile.GET("", h.Profile.Get)
				profile.PUT("", h.Profile.Update)
			}

			requests := protected.Group("/requests")
			{
				requests.GET("", h.Request.ListIncoming)
				requests.GET("/sent", h.Request.ListSent)
				requests.POST("", h.Request.Create)
				requests.POST("/:id/accept", h.Request.Accept)
				requests.POST("/:id/reject", h.Request.Reject)
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/count", h.Notification.Count)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
			}
		}
	}

	return r
}
