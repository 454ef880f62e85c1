// Command admin is a small ops CLI for reviewing message reports without
// going through the Telegram bot.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"meetgogo/backend/internal/config"
	"meetgogo/backend/internal/moderation"
	"meetgogo/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// No redis needed for the admin CLI.
	storageSvc := storage.NewStorageService(db, nil)
	modSvc := moderation.NewService(storageSvc, nil)

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <reports|resolve> [args]")
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "reports":
		reports, err := modSvc.OpenReports(ctx)
		if err != nil {
			log.Fatalf("Error listing reports: %v", err)
		}
		if len(reports) == 0 {
			fmt.Println("No open reports.")
			return
		}
		for _, r := range reports {
			fmt.Printf("#%d\tevent=%s\tmessage=%d\treporter=%s\treason=%q\n",
				r.ID, r.EventID, r.MessageID, r.ReporterID, r.Reason)
		}
	case "resolve":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin resolve <report id>")
			os.Exit(1)
		}
		id, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			fmt.Println("Invalid report id. Please provide an integer.")
			os.Exit(1)
		}
		if err := modSvc.Resolve(ctx, uint(id)); err != nil {
			log.Fatalf("Error resolving report: %v", err)
		}
		fmt.Printf("Report #%d resolved.\n", id)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}
