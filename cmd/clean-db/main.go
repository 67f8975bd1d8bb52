// Command-line tool to clean the database by dropping every collection and
// recreating it empty.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/GameXcalibur/LynxATS/internal/config"
	"github.com/GameXcalibur/LynxATS/internal/database"
	"github.com/GameXcalibur/LynxATS/internal/model"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Printf("WARNING: This command will DROP ALL RECORDS (%s) in the %s database.\n",
		strings.Join(model.Collections, ", "), cfg.DB.Driver)
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	input = strings.TrimSpace(strings.ToLower(input))

	if input != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	backend, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dropErr := backend.Drop(ctx)
	if err := backend.Close(ctx); err != nil {
		log.Errorf("Error closing database: %v", err)
	}
	if dropErr != nil {
		log.Fatalf("Failed to drop records: %v", dropErr)
	}

	fmt.Println("All collections dropped and recreated.")
}
