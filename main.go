package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evcare/config"
	"evcare/cron"
	"evcare/database"
	bookingRepoPkg "evcare/database/repository/booking"
	centerRepoPkg "evcare/database/repository/center"
	paymentRepoPkg "evcare/database/repository/payment"
	predictionRepoPkg "evcare/database/repository/prediction"
	userRepoPkg "evcare/database/repository/user"
	vehicleRepoPkg "evcare/database/repository/vehicle"
	"evcare/handlers"
	"evcare/routes"
	"evcare/services/admin"
	"evcare/services/booking"
	"evcare/services/center"
	"evcare/services/intelligence"
	"evcare/services/notification"
	"evcare/services/payment"
	"evcare/services/user"
	"evcare/services/vehicle"
	"evcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	vehicleRepo := vehicleRepoPkg.NewMongoVehicleRepo()
	centerRepo := centerRepoPkg.NewMongoCenterRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	predictionRepo := predictionRepoPkg.NewMongoPredictionRepo()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}

	vehicleService := &vehicle.DefaultVehicleService{
		Repo:    vehicleRepo,
		Storage: cloudinaryStorageService,
	}

	centerService := &center.DefaultCenterService{Repo: centerRepo}

	notificationService := &notification.DefaultNotificationService{Users: userRepo}

	payosClient := payment.NewPayOSClient(
		config.AppConfig.PayOSBaseURL,
		config.AppConfig.PayOSClientID,
		config.AppConfig.PayOSAPIKey,
		config.AppConfig.PayOSChecksumKey,
	)
	paymentService := &payment.DefaultPaymentService{
		Repo:     paymentRepo,
		Bookings: bookingRepo,
		Gateway:  payosClient,
		Sessions: utils.GetSessionCacheClient(),
		Watchers: payment.NewWatcherManager(),
		Notify:   notificationService,
	}

	availabilityEngine := &booking.DefaultAvailabilityEngine{
		Centers:  centerRepo,
		Bookings: bookingRepo,
	}
	bookingService := &booking.DefaultBookingSessionService{
		Cache:        utils.GetSessionCacheClient(),
		Vehicles:     vehicleRepo,
		Centers:      centerRepo,
		Bookings:     bookingRepo,
		Availability: availabilityEngine,
		Payments:     paymentService,
	}

	predictionService := &intelligence.DefaultPredictionService{
		Gemini:   intelligence.NewGeminiClient(config.AppConfig.GeminiAPIKey),
		Cache:    intelligence.NewRedisPredictionCache(utils.GetCacheClient(), 30*time.Minute),
		Repo:     predictionRepo,
		Centers:  centerRepo,
		Bookings: bookingRepo,
	}

	adminService := &admin.DefaultAdminService{
		Users:    userRepo,
		Vehicles: vehicleRepo,
		Bookings: bookingRepo,
		Payments: paymentRepo,
		Centers:  centerRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Users:        userService,
		Vehicles:     vehicleService,
		Centers:      centerService,
		Wizard:       bookingService,
		Availability: availabilityEngine,
		Payments:     paymentService,
		Admin:        adminService,
		Predictions:  predictionService,
		Bookings:     bookingRepo,
		UserRepo:     userRepo,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	cron.InitReminderWorker(notificationService)
	cron.StartReminderScheduler(cron.NewTaskClient(), bookingRepo)
	cron.StartPaymentExpirySweep(paymentService, paymentRepo)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetOTPCacheClient(), utils.GetSessionCacheClient()},
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

	paymentService.Watchers.StopAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
