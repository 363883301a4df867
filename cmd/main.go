package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vnkhanh/meeting-room-server/config"
	"github.com/vnkhanh/meeting-room-server/controllers"
	"github.com/vnkhanh/meeting-room-server/repository"
	"github.com/vnkhanh/meeting-room-server/routes"
	"github.com/vnkhanh/meeting-room-server/services"
)

func main() {
	// .env là tùy chọn, production dùng env thật
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, continuing with environment variables")
	}

	// Kết nối DB + AutoMigrate
	config.ConnectDB()

	// Repository + service
	meetingRepo := repository.NewMeetingRepository(config.DB)
	roomRepo := repository.NewRoomRepository(config.DB)
	userRepo := repository.NewUserRepository(config.DB)

	googleService := services.NewGoogleService()
	emailService := services.NewEmailService()
	scheduler := services.NewSchedulerService(meetingRepo, roomRepo, userRepo, googleService, emailService)

	authCtl := controllers.NewAuthController(userRepo, googleService)
	roomCtl := controllers.NewRoomController(roomRepo, scheduler)
	meetingCtl := controllers.NewMeetingController(scheduler, meetingRepo)

	// Tạo instance router
	r := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return origin == frontendURL || strings.HasPrefix(origin, "http://localhost")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		panic(err)
	}

	routes.SetupRoutes(r, authCtl, roomCtl, meetingCtl)

	// Lấy PORT từ biến môi trường
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s\n", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Chờ tín hiệu dừng rồi shutdown êm
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
