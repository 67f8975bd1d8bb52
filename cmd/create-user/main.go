// Command create-user registers a reviewer and prints a bearer token for
// them. Identity normally comes from an external provider; this is for
// operators and local development.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/GameXcalibur/LynxATS/internal/auth"
	"github.com/GameXcalibur/LynxATS/internal/config"
	"github.com/GameXcalibur/LynxATS/internal/database"
	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
)

func main() {
	id := flag.String("id", "", "identity provider id; generated when empty")
	username := flag.String("username", "", "unique username (required)")
	name := flag.String("name", "", "display name")
	flag.Parse()

	if *username == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	tokens, err := auth.New(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to set up authentication: %v", err)
	}

	backend, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user := model.User{ID: *id, Username: *username, Name: *name, Onboarded: true}
	createErr := backend.CreateUser(ctx, &user)
	if err := backend.Close(ctx); err != nil {
		log.Errorf("Error closing database: %v", err)
	}
	if errors.Is(createErr, store.ErrDuplicate) {
		log.Fatalf("Username %q already taken", *username)
	}
	if createErr != nil {
		log.Fatalf("Failed to create user: %v", createErr)
	}

	token, err := tokens.GenerateToken(user.ID)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println("User created successfully!")
	fmt.Println("======================================")
	fmt.Printf("ID:       %s\n", user.ID)
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Token:    %s\n", token)
	fmt.Println("======================================")
}
