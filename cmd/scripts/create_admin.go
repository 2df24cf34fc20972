package main

import (
	"context"
	"flag"
	"log"

	"github.com/apprifas/raffle-backend/internal/config"
	mongorepo "github.com/apprifas/raffle-backend/internal/repositories/mongodb"
	"github.com/apprifas/raffle-backend/internal/services"
	adminjwt "github.com/apprifas/raffle-backend/pkg/jwt"
	"github.com/apprifas/raffle-backend/pkg/mongodb"
	"github.com/joho/godotenv"
)

// One-shot bootstrap for an operator account, the counterpart of the
// server-side login. Usage:
//
//	go run ./cmd/scripts -email op@example.com -password secret
func main() {
	email := flag.String("email", "", "operator email")
	password := flag.String("password", "", "operator password")
	role := flag.String("role", "operator", "operator role")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.MongoDB.Database)

	adminRepo := mongorepo.NewAdminUserRepository(db)
	tokenService := adminjwt.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	authService := services.NewAuthService(adminRepo, tokenService)

	admin, err := authService.CreateAdmin(context.Background(), *email, *password, *role)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("Created admin %s (%s)", admin.Email, admin.ID.Hex())
}
