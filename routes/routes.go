package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"auralynk/handlers"
	"auralynk/middleware"
	"auralynk/models"
	"auralynk/utils"
)

// RegisterUserRoutes registers account and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/me", hb.GetMeHandler)
		api.PUT("/me", hb.UpdateMeHandler)
		api.PUT("/me/fcm-token", hb.SetFCMTokenHandler)
	}
}

// RegisterReaderRoutes registers the client-facing reader feed. The feed and
// individual profiles are public.
func RegisterReaderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/readers")
	{
		api.GET("", hb.FeedHandler)
		api.GET("/:readerID", hb.GetReaderHandler)
	}

	// Live availability stream; upgrades to a websocket.
	r.GET("/api/live/readers/:readerID", hb.LiveHandler)
}

// RegisterAvailabilityRoutes registers slot management for readers.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.Use(middleware.RequireRole(hb.UserRepo, models.RoleReader))
		api.GET("", hb.ListSlotsHandler)
		api.POST("", hb.AddSlotHandler)
		api.DELETE("", hb.RemoveSlotHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireRole(hb.UserRepo, models.RoleClient), hb.RequestBookingHandler)
		api.GET("", hb.ListBookingsHandler)
		api.PUT("/:bookingID/accept", middleware.RequireRole(hb.UserRepo, models.RoleReader), hb.AcceptBookingHandler)
		api.PUT("/:bookingID/reject", middleware.RequireRole(hb.UserRepo, models.RoleReader), hb.RejectBookingHandler)
		api.DELETE("/:bookingID", hb.CancelBookingHandler)
	}
}

// RegisterSessionRoutes registers confirmation links and video session access.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Confirmation links arrive from push notifications; the token is the
	// credential, so no auth middleware here.
	r.GET("/api/confirm/:token", hb.ConfirmHandler)

	api := r.Group("/api/session")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/:bookingID", hb.JoinSessionHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterUserRoutes(r, hb)
	RegisterReaderRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterHealthRoute(r)
}
