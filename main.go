// File: auralynk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"auralynk/config"
	"auralynk/cron"
	"auralynk/database"
	bookingRepoPkg "auralynk/database/repository/booking"
	tokenRepoPkg "auralynk/database/repository/token"
	userRepoPkg "auralynk/database/repository/user"
	"auralynk/handlers"
	"auralynk/routes"
	"auralynk/services/booking"
	"auralynk/services/notification"
	"auralynk/services/schedule"
	"auralynk/services/user"
	"auralynk/services/video"
	"auralynk/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	tokenRepo := tokenRepoPkg.NewMongoTokenRepo()

	idxCtx, idxCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer idxCancel()
	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		bookingRepo.EnsureIndexes,
		tokenRepo.EnsureIndexes,
	} {
		if err := ensure(idxCtx); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}

	notificationService := &notification.DefaultNotificationService{
		Users: userRepo,
	}

	livePublisher := &schedule.RedisPublisher{
		Client: utils.GetLiveClient(),
	}

	scheduleService := &schedule.DefaultScheduleService{
		Users:    userRepo,
		Bookings: bookingRepo,
		Live:     livePublisher,
	}

	bookingService := &booking.DefaultBookingService{
		Bookings:      bookingRepo,
		Users:         userRepo,
		Tokens:        tokenRepo,
		Rooms:         video.NewDailyClient(),
		Notify:        notificationService,
		Live:          livePublisher,
		Reminders:     cron.NewAsynqReminderScheduler(),
		JoinLead:      config.JoinLead(),
		JoinTrail:     config.JoinTrail(),
		TokenTTL:      config.ConfirmTokenTTL(),
		PublicBaseURL: config.AppConfig.PublicBaseURL,
	}

	// Live availability hub, fed by Redis pub/sub.
	hub := schedule.NewHub(scheduleService, utils.GetLiveClient())
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go hub.Run(hubCtx)

	// Background worker: session reminders and the hourly availability sweep.
	go cron.InitWorker(scheduleService, notificationService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetAuthCacheClient(), utils.GetLiveClient()},
		database.MongoClient,
	)

	// handlers.
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	readerHandler := handlers.NewReaderHandler(scheduleService, userService)
	availabilityHandler := handlers.NewAvailabilityHandler(scheduleService)
	bookingHandler := handlers.NewBookingHandler(bookingService, userService)
	confirmationHandler := handlers.NewConfirmationHandler(bookingService)
	sessionHandler := handlers.NewSessionHandler(bookingService)
	liveHandler := handlers.NewLiveHandler(hub)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		RegisterHandler: authHandler.RegisterHandler,
		LoginHandler:    authHandler.LoginHandler,
		LogoutHandler:   authHandler.LogoutHandler,

		GetMeHandler:       userHandler.GetMeHandler,
		UpdateMeHandler:    userHandler.UpdateMeHandler,
		SetFCMTokenHandler: userHandler.SetFCMTokenHandler,

		FeedHandler:      readerHandler.FeedHandler,
		GetReaderHandler: readerHandler.GetReaderHandler,

		ListSlotsHandler:  availabilityHandler.ListHandler,
		AddSlotHandler:    availabilityHandler.AddHandler,
		RemoveSlotHandler: availabilityHandler.RemoveHandler,

		RequestBookingHandler: bookingHandler.RequestHandler,
		ListBookingsHandler:   bookingHandler.ListHandler,
		AcceptBookingHandler:  bookingHandler.AcceptHandler,
		RejectBookingHandler:  bookingHandler.RejectHandler,
		CancelBookingHandler:  bookingHandler.CancelHandler,

		ConfirmHandler:     confirmationHandler.ConfirmHandler,
		JoinSessionHandler: sessionHandler.JoinHandler,

		LiveHandler: liveHandler.SubscribeHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
