// Command create-admin seeds a superuser account. Run it once after the
// first migration; the API has no endpoint for bootstrapping the first
// admin.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"moviehub/database"
	"moviehub/internal/auth"
	"moviehub/internal/config"
	"moviehub/internal/models"
	"moviehub/internal/repository"
	"moviehub/internal/service"
)

func main() {
	email := flag.String("email", "", "admin email (required)")
	username := flag.String("username", "", "admin username (required)")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *email == "" || *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("could not hash password: %v", err)
	}

	user := &models.User{
		Email:       service.NormalizeEmail(*email),
		Username:    *username,
		Password:    hashed,
		Role:        models.RoleAdmin,
		IsActive:    true,
		IsStaff:     true,
		IsAdmin:     true,
		IsSuperuser: true,
	}

	userRepo := repository.NewUserRepository(db)
	if err := userRepo.Create(context.Background(), user); err != nil {
		log.Fatalf("could not create admin: %v", err)
	}

	log.Printf("admin %q created", user.Username)
}
