package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apprifas/raffle-backend/api/routes"
	"github.com/apprifas/raffle-backend/internal/config"
	"github.com/apprifas/raffle-backend/internal/handlers"
	"github.com/apprifas/raffle-backend/internal/repositories"
	mongorepo "github.com/apprifas/raffle-backend/internal/repositories/mongodb"
	"github.com/apprifas/raffle-backend/internal/services"
	adminjwt "github.com/apprifas/raffle-backend/pkg/jwt"
	"github.com/apprifas/raffle-backend/pkg/mongodb"
	"github.com/apprifas/raffle-backend/pkg/whatsapp"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is not configured")
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var raffleRepo repositories.RaffleRepository = mongorepo.NewRaffleRepository(db)
	var ticketRepo repositories.TicketRepository = mongorepo.NewTicketRepository(db)
	var adminRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)
	var notificationRepo repositories.NotificationRepository = mongorepo.NewNotificationRepository(db)

	// Outbound gateway
	var gateway whatsapp.Gateway
	if cfg.WhatsApp.MockGateway {
		gateway = whatsapp.NewMockGateway()
	} else {
		gateway = whatsapp.NewCloudGateway(cfg.WhatsApp.BaseURL, cfg.WhatsApp.APIToken)
	}

	// Services
	tokenService := adminjwt.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	notificationService := services.NewNotificationService(notificationRepo, gateway)
	holdDuration := time.Duration(cfg.Raffle.HoldDurationMinutes) * time.Minute
	ticketService := services.NewTicketService(ticketRepo, notificationService, holdDuration)
	raffleService := services.NewRaffleService(raffleRepo, ticketRepo)
	authService := services.NewAuthService(adminRepo, tokenService)

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:   handlers.NewAuthHandler(authService),
		RaffleHandler: handlers.NewRaffleHandler(raffleService),
		TicketHandler: handlers.NewTicketHandler(ticketService),
	}

	router := routes.SetupRouter(cfg, tokenService, handlerDeps)

	// Optional sweep: expiry is enforced lazily on claim either way, this
	// just keeps reporting views tidy
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Raffle.SweepIntervalMinutes > 0 {
		go runExpirySweep(sweepCtx, ticketService, time.Duration(cfg.Raffle.SweepIntervalMinutes)*time.Minute)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}

// runExpirySweep periodically flips long-expired holds back to available
func runExpirySweep(ctx context.Context, ticketService services.TicketService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			released, err := ticketService.ReleaseExpired(ctx)
			if err != nil {
				log.Printf("[WARN] expiry sweep failed: %v", err)
				continue
			}
			if released > 0 {
				log.Printf("expiry sweep released %d tickets", released)
			}
		}
	}
}
