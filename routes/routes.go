package routes

import (
	"net/http"
	"time"

	"evcare/handlers"
	"evcare/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and password endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/verify-otp", hb.VerifyOTPHandler)
		api.POST("/resend-otp", hb.ResendOTPHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/forgot-password", hb.ForgotPasswordHandler)
		api.POST("/reset-password", hb.ResetPasswordHandler)
		api.POST("/logout", middleware.JWTAuthMiddleware(hb.UserRepo), hb.LogoutHandler)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/me", hb.GetProfileHandler)
		api.PATCH("/me", hb.UpdateProfileHandler)
		api.POST("/me/device-token", hb.RegisterDeviceTokenHandler)
	}
}

// RegisterVehicleRoutes registers garage endpoints.
func RegisterVehicleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/vehicles")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("", hb.ListVehiclesHandler)
		api.POST("", hb.CreateVehicleHandler)
		api.GET("/:id", hb.GetVehicleHandler)
		api.PUT("/:id", hb.UpdateVehicleHandler)
		api.DELETE("/:id", hb.DeleteVehicleHandler)
		api.POST("/:id/photo", hb.UploadVehiclePhotoHandler)
	}
}

// RegisterCenterRoutes registers discovery endpoints. Browsing centers does
// not require an account.
func RegisterCenterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/centers")
	{
		api.GET("", hb.ListCentersHandler)
		api.GET("/:id", hb.GetCenterHandler)
		api.GET("/:id/catalogue", hb.GetCenterCatalogueHandler)
		api.GET("/:id/slots", hb.GetCenterSlotsHandler)
	}
}

// RegisterBookingRoutes sets up the booking wizard endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.POST("/session", hb.StartBookingSessionHandler)
		api.GET("/session/:sessionID", hb.GetBookingSessionHandler)
		api.PUT("/session/:sessionID/vehicle", hb.SelectVehicleHandler)
		api.PUT("/session/:sessionID/center", hb.SelectCenterHandler)
		api.PUT("/session/:sessionID/service", hb.SelectServiceHandler)
		api.PUT("/session/:sessionID/schedule", hb.SetScheduleHandler)
		api.PUT("/session/:sessionID/details", hb.SetDetailsHandler)
		api.PUT("/session/:sessionID/step", hb.GoToStepHandler)
		api.POST("/session/:sessionID/submit", hb.SubmitBookingHandler)
		api.DELETE("/session/:sessionID", hb.CancelBookingSessionHandler)

		api.GET("/appointments", hb.ListMyAppointmentsHandler)
		api.GET("/appointments/:id", hb.GetMyAppointmentHandler)
		api.PUT("/appointments/:id/cancel", hb.CancelMyAppointmentHandler)
	}
}

// RegisterPaymentRoutes sets up checkout status and PayOS redirect endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		// PayOS redirects land here without an Authorization header.
		api.GET("/callback/success", hb.PaymentSuccessCallbackHandler)
		api.GET("/callback/cancel", hb.PaymentCancelCallbackHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		protected.GET("/:id", hb.GetPaymentStatusHandler)
		protected.POST("/order/:orderCode/cancel", hb.CancelPaymentHandler)
	}
}

// RegisterAdminRoutes sets up back-office endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireStaff())
	{
		api.GET("/dashboard", hb.DashboardHandler)
		api.GET("/analytics/revenue", hb.RevenueSeriesHandler)
		api.GET("/analytics/centers", hb.CenterUtilizationHandler)
		api.GET("/appointments/center/:id", hb.ListCenterAppointmentsHandler)
		api.PUT("/appointments/:id/status", hb.AdvanceAppointmentHandler)

		api.GET("/predictions/:id", hb.GetPredictionHandler)
		api.POST("/predictions/:id/regenerate", hb.RegeneratePredictionHandler)
		api.GET("/predictions/:id/history", hb.GetPredictionHistoryHandler)
		api.GET("/predictions/:id/stats", hb.GetPredictionStatsHandler)

		adminOnly := api.Group("")
		adminOnly.Use(middleware.RequireAdmin())
		adminOnly.GET("/users", hb.ListUsersHandler)
		adminOnly.POST("/centers", hb.CreateCenterHandler)
		adminOnly.PUT("/centers/:id", hb.UpdateCenterHandler)
		adminOnly.PUT("/centers/:id/schedule", hb.SetDayScheduleHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "EV Care is running"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Device-ID", "X-Device-Name"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterVehicleRoutes(r, hb)
	RegisterCenterRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
