package routes

import (
	"net/http"
	"time"

	"tourbook/config"
	"tourbook/handlers"
	"tourbook/middleware"
	"tourbook/models"
	"tourbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
	}
}

// RegisterSchoolRoutes registers the public school directory. Listing
// and detail are open; rating requires an authenticated parent.
func RegisterSchoolRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schools")
	{
		api.GET("", hb.School.ListSchoolsHandler)
		api.GET("/:id", hb.School.GetSchoolHandler)
		api.GET("/:id/tours", hb.School.ListSchoolToursHandler)

		api.POST("/:id/ratings",
			middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleParent),
			hb.School.SubmitRatingHandler)
	}
}

// RegisterBookingRoutes registers the parent booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleParent))
		api.POST("", hb.Booking.CreateBookingHandler)
		api.GET("", hb.Booking.ListMyBookingsHandler)
		api.DELETE("/:id", hb.Booking.CancelBookingHandler)
		api.DELETE("/:id/permanent", hb.Booking.DeleteBookingHandler)
	}
}

// RegisterSchoolAdminRoutes registers the school-admin console.
func RegisterSchoolAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/school-admin")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleSchoolAdmin))

		api.GET("/school", hb.SchoolAdmin.GetSchoolProfileHandler)
		api.PUT("/school", hb.SchoolAdmin.UpdateSchoolProfileHandler)

		api.GET("/tours", hb.SchoolAdmin.ListToursHandler)
		api.POST("/tours", hb.SchoolAdmin.CreateTourHandler)
		api.PUT("/tours/:id", hb.SchoolAdmin.UpdateTourHandler)
		api.DELETE("/tours/:id", hb.SchoolAdmin.DeleteTourHandler)

		api.GET("/bookings", hb.SchoolAdmin.ListBookingsHandler)
		api.PUT("/bookings/:id/status", hb.SchoolAdmin.UpdateBookingStatusHandler)

		api.GET("/dashboard", hb.SchoolAdmin.DashboardHandler)
	}
}

// RegisterSystemAdminRoutes registers platform administration.
func RegisterSystemAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleSystemAdmin))

		api.GET("/users", hb.SystemAdmin.ListUsersHandler)
		api.PUT("/users/:id/active", hb.SystemAdmin.SetUserActiveHandler)

		api.GET("/schools", hb.SystemAdmin.ListSchoolsHandler)
		api.PUT("/schools/:id/verify", hb.SystemAdmin.VerifySchoolHandler)

		api.GET("/reports", hb.SystemAdmin.PlatformReportHandler)
	}
}

// RegisterMessagingRoutes registers parent/school conversations.
// Starting a thread is parent-only; reading and replying is open to
// both sides of it.
func RegisterMessagingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/conversations")
	{
		api.POST("",
			middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleParent),
			hb.Messaging.StartConversationHandler)

		participant := api.Group("")
		participant.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleParent, models.RoleSchoolAdmin))
		participant.GET("", hb.Messaging.ListConversationsHandler)
		participant.GET("/:id/messages", hb.Messaging.ListMessagesHandler)
		participant.POST("/:id/messages", hb.Messaging.SendMessageHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := []string{"*"}
	if config.AppConfig.CORSOrigin != "" {
		origins = []string{config.AppConfig.CORSOrigin}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterSchoolRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterSchoolAdminRoutes(r, hb)
	RegisterSystemAdminRoutes(r, hb)
	RegisterMessagingRoutes(r, hb)
	RegisterHealthRoute(r)
}
