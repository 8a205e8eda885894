package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bukarum/config"
	"bukarum/controllers"
	"bukarum/repositories"
	"bukarum/routes"
	"bukarum/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Pending searches live in redis when it is configured, otherwise in
	// signed tokens.
	var searches services.PendingSearchStore = services.NewTokenSearchStore(cfg.JWTSecret, cfg.SearchTTL)
	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("❌ Redis connect failed: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
		searches = services.NewRedisSearchStore(rdb, cfg.SearchTTL)
		log.Println("✅ Pending searches stored in redis.")
	}

	// Repositories
	bookingRepo := repositories.NewBookingRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.SessionTTL)
	availabilityService := services.NewAvailabilityService(bookingRepo)
	reservationService := services.NewReservationService(bookingRepo)
	exportService := services.NewExportService()
	catalogService := services.NewCatalogService(catalogRepo, userRepo)

	// Controllers
	searchController := controllers.NewSearchController(availabilityService, searches, cfg.SearchTTL, cfg.CookieSecure)
	reservationController := controllers.NewReservationController(reservationService, searches, exportService)
	authController := controllers.NewAuthController(authService, searches, cfg.SessionTTL, cfg.CookieSecure)
	adminController := controllers.NewAdminController(catalogService)

	router := routes.SetupRouter(authService, searchController, reservationController, authController, adminController)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
