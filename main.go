// File: blissdrive/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blissdrive/config"
	"blissdrive/cron"
	"blissdrive/database"
	bookingRepoPkg "blissdrive/database/repository/booking"
	companionRepoPkg "blissdrive/database/repository/companion"
	couponRepoPkg "blissdrive/database/repository/coupon"
	invoiceRepoPkg "blissdrive/database/repository/invoice"
	locationRepoPkg "blissdrive/database/repository/location"
	reviewRepoPkg "blissdrive/database/repository/review"
	studentRepoPkg "blissdrive/database/repository/student"
	"blissdrive/handlers"
	"blissdrive/middleware"
	"blissdrive/routes"
	"blissdrive/services/booking"
	"blissdrive/services/session"
	"blissdrive/services/student"
	"blissdrive/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	studentRepo := studentRepoPkg.NewMongoStudentRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	couponRepo := couponRepoPkg.NewMongoCouponRepo()
	locationRepo := locationRepoPkg.NewMongoLocationRepo()
	companionRepo := companionRepoPkg.NewMongoCompanionRepo()
	invoiceRepo := invoiceRepoPkg.NewMongoInvoiceRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()

	// services.
	studentService := &student.DefaultStudentService{
		Repo: studentRepo,
	}
	handlers.SetStudentService(studentService)

	window := booking.Window{
		OpenHour:     config.AppConfig.OpenHour,
		CloseHour:    config.AppConfig.CloseHour,
		IntervalMins: config.AppConfig.SlotIntervalMins,
	}
	var availability booking.AvailabilitySource = bookingRepo
	if !config.IsProduction() {
		availability = booking.SimulatedAvailability{Window: window}
	}
	slotGenerator := booking.NewSlotGenerator(window, availability)

	reminderClient := cron.NewReminderClient()
	cron.InitReminderWorker(studentRepo)

	draftStore := booking.NewRedisDraftStore(
		utils.GetDraftCacheClient(),
		time.Duration(config.AppConfig.DraftTTLMinutes)*time.Minute,
	)
	wizardService := &booking.DefaultWizardService{
		Store:     draftStore,
		Slots:     slotGenerator,
		Coupons:   couponRepo,
		Bookings:  bookingRepo,
		Students:  studentRepo,
		Reminders: reminderClient,
	}

	paymentHandler := session.NewPaymentHandler(logger, invoiceRepo)
	sessionManager := session.NewManager(paymentHandler, reviewRepo, logger)
	defer sessionManager.Close()

	bookingHandler := handlers.NewBookingHandler(wizardService, slotGenerator, bookingRepo, logger)
	sessionHandler := handlers.NewSessionHandler(sessionManager, logger)
	directoryHandler := handlers.NewDirectoryHandler(companionRepo, locationRepo)
	adminHandler := handlers.NewAdminHandler(studentService, bookingRepo, couponRepo, locationRepo, companionRepo, invoiceRepo, reviewRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		StudentRepo: studentRepo,

		RegisterStudentHandler:        handlers.RegisterStudentHandler,
		AuthenticateStudentHandler:    handlers.AuthenticateStudentHandler,
		GetStudentProfileHandler:      handlers.GetStudentProfileHandler,
		AddSavedAddressHandler:        handlers.AddSavedAddressHandler,
		RevokeStudentAuthTokenHandler: handlers.RevokeStudentAuthTokenHandler,

		Booking:   bookingHandler,
		Session:   sessionHandler,
		Directory: directoryHandler,
		Admin:     adminHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient(), utils.GetDraftCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
