package routes

import (
	"dinedash/handlers"
	"dinedash/middleware"
	"dinedash/models"
	"dinedash/ratelimit"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every endpoint on r. Login and signup attempts are
// counted by limiter; a nil limiter disables the check.
func SetupRoutes(r *gin.Engine, h *handlers.Handler, limiter ratelimit.Limiter) {
	r.GET("/health", handlers.Health)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		authAttempts := func(scope string) []gin.HandlerFunc {
			if limiter == nil {
				return nil
			}
			return []gin.HandlerFunc{middleware.RateLimit(limiter, scope)}
		}
		public.POST("/auth/signup", append(authAttempts("signup"), h.Signup)...)
		public.POST("/auth/login", append(authAttempts("login"), h.Login)...)
		public.POST("/auth/logout", h.Logout)
		public.GET("/auth/session", h.Session)

		// State machine info
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.SessionRequired(h.Sessions))
	{
		auth.GET("/profile", h.GetProfile)

		auth.GET("/menu", h.ListMenu)
		auth.GET("/menu/categories", h.ListCategories)
		auth.GET("/menu/:id", h.GetMenuItem)

		auth.GET("/orders", h.ListOrders)
		auth.GET("/orders/:id", h.GetOrder)
		auth.POST("/orders", h.CreateOrder)

		auth.POST("/feedback", h.SubmitFeedback)
	}

	// ── Manager routes ─────────────────────────────────────────────
	manager := r.Group("/api")
	manager.Use(middleware.SessionRequired(h.Sessions), middleware.RoleRequired(models.RoleManager))
	{
		manager.POST("/menu", h.AddMenuItem)

		manager.PUT("/orders/:id/status", h.UpdateOrderStatus)
		manager.PUT("/orders/:id/cancel", h.CancelOrder)

		manager.GET("/feedback", h.ListFeedback)
		manager.GET("/analytics", h.GetAnalytics)
	}
}
