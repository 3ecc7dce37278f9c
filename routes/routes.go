package routes

import (
	"net/http"
	"time"

	"blissdrive/handlers"
	"blissdrive/middleware"
	"blissdrive/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterStudentRoutes registers account endpoints.
func RegisterStudentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/students")
	{
		api.POST("/register", hb.RegisterStudentHandler)
		api.POST("/login", hb.AuthenticateStudentHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthStudentMiddleware(hb.StudentRepo))
		api.GET("/me", hb.GetStudentProfileHandler)
		api.POST("/me/addresses", hb.AddSavedAddressHandler)
		api.DELETE("/revoke", hb.RevokeStudentAuthTokenHandler)
	}
}

// RegisterBookingRoutes sets up the slot listing and the booking wizard.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.GET("/catalog", hb.Booking.GetCatalog)
		api.GET("/companions", hb.Directory.GetActiveCompanions)
		api.GET("/locations", hb.Directory.GetLocations)

		api.Use(middleware.JWTAuthStudentMiddleware(hb.StudentRepo))
		api.GET("/slots", hb.Booking.GetSlots)
		api.GET("/mine", hb.Booking.MyBookings)

		api.POST("/draft", hb.Booking.StartDraft)
		api.GET("/draft/:draftID", hb.Booking.GetDraft)
		api.PUT("/draft/:draftID/selection", hb.Booking.UpdateSelection)
		api.PUT("/draft/:draftID/slot", hb.Booking.SelectSlot)
		api.PUT("/draft/:draftID/terms", hb.Booking.AcceptTerms)
		api.PUT("/draft/:draftID/pickup", hb.Booking.SetPickup)
		api.PUT("/draft/:draftID/coupon", hb.Booking.ApplyCoupon)
		api.POST("/draft/:draftID/next", hb.Booking.Advance)
		api.POST("/draft/:draftID/back", hb.Booking.Back)
		api.POST("/draft/:draftID/submit", hb.Booking.Submit)
		api.DELETE("/draft/:draftID", hb.Booking.CancelDraft)
	}
}

// RegisterSessionRoutes sets up the live session timer endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/session")
	{
		api.Use(middleware.JWTAuthStudentMiddleware(hb.StudentRepo))
		api.POST("/start", hb.Session.Start)
		api.GET("/status", hb.Session.Status)
		api.POST("/stop", hb.Session.Stop)
		api.POST("/pay", hb.Session.ConfirmPayment)
		api.POST("/abandon", hb.Session.Abandon)
		api.POST("/review", hb.Session.SubmitReview)
		api.POST("/review/skip", hb.Session.SkipReview)
	}
}

// RegisterAdminRoutes sets up endpoints for the admin dashboard.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthAdminMiddleware())
		api.GET("/students", hb.Admin.GetAllStudentsHandler)
		api.DELETE("/students/:id", hb.Admin.DeleteStudentHandler)

		api.GET("/bookings", hb.Admin.GetAllBookingsHandler)
		api.PUT("/bookings/:id/status", hb.Admin.UpdateBookingStatusHandler)

		api.POST("/coupons", hb.Admin.CreateCouponHandler)
		api.GET("/coupons", hb.Admin.GetAllCouponsHandler)
		api.PUT("/coupons/:id", hb.Admin.UpdateCouponHandler)
		api.DELETE("/coupons/:id", hb.Admin.DeleteCouponHandler)

		api.POST("/locations", hb.Admin.CreateLocationHandler)
		api.GET("/locations", hb.Admin.GetAllLocationsHandler)
		api.PUT("/locations/:id", hb.Admin.UpdateLocationHandler)
		api.DELETE("/locations/:id", hb.Admin.DeleteLocationHandler)

		api.POST("/companions", hb.Admin.CreateCompanionHandler)
		api.GET("/companions", hb.Admin.GetAllCompanionsHandler)
		api.PUT("/companions/:id", hb.Admin.UpdateCompanionHandler)
		api.DELETE("/companions/:id", hb.Admin.DeleteCompanionHandler)
		api.GET("/companions/:id/reviews", hb.Admin.GetCompanionReviewsHandler)

		api.GET("/payments", hb.Admin.GetAllInvoicesHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
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

	RegisterStudentRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
