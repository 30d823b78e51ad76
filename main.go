package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourbook/config"
	"tourbook/cron"
	"tourbook/database"
	bookingRepoPkg "tourbook/database/repository/booking"
	messagingRepoPkg "tourbook/database/repository/messaging"
	schoolRepoPkg "tourbook/database/repository/school"
	tourRepoPkg "tourbook/database/repository/tour"
	userRepoPkg "tourbook/database/repository/user"
	"tourbook/handlers"
	"tourbook/middleware"
	"tourbook/routes"
	"tourbook/services/booking"
	"tourbook/services/messaging"
	"tourbook/services/report"
	"tourbook/services/school"
	"tourbook/services/tour"
	"tourbook/services/user"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
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

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	schoolRepo := schoolRepoPkg.NewMongoSchoolRepo()
	tourRepo := tourRepoPkg.NewMongoTourRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	messagingRepo := messagingRepoPkg.NewMongoMessagingRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:       userRepo,
		SchoolRepo: schoolRepo,
	}
	schoolService := &school.DefaultSchoolService{
		Repo: schoolRepo,
	}
	tourService := &tour.DefaultTourService{
		Repo: tourRepo,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:     bookingRepo,
		TourRepo: tourRepo,
	}
	messagingService := &messaging.DefaultMessagingService{
		Repo:       messagingRepo,
		SchoolRepo: schoolRepo,
	}
	reportService := &report.DefaultReportService{
		UserRepo:    userRepo,
		SchoolRepo:  schoolRepo,
		TourRepo:    tourRepo,
		BookingRepo: bookingRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:    userRepo,
		Auth:        handlers.NewAuthHandler(userService),
		School:      handlers.NewSchoolHandler(schoolService, tourService),
		Booking:     handlers.NewBookingHandler(bookingService),
		SchoolAdmin: handlers.NewSchoolAdminHandler(schoolService, tourService, bookingService, reportService),
		SystemAdmin: handlers.NewSystemAdminHandler(userService, schoolService, reportService),
		Messaging:   handlers.NewMessagingHandler(messagingService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background sweep worker and health monitor.
	cron.InitSweepWorker(bookingService)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Serve until interrupted, then drain in-flight requests.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: "0.0.0.0:" + port, Handler: router}

	go func() {
		logger.Sugar().Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logger.Sugar().Infow("main: shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: shutdown: %v", err)
	}
	logger.Sugar().Info("main: shutdown complete")
}
