package main

import (
	"context"
	"log"
	"os"
	"time"

	"fixify/internal/database"
	"fixify/internal/repository"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

func main() {
	olderThan := flag.Duration("older-than", 720*time.Hour, "delete read notifications older than this")
	flag.Parse()

	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if *olderThan <= 0 {
		log.Fatal("--older-than must be positive")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	cutoff := time.Now().Add(-*olderThan)
	n, err := repository.NewNotificationRepository(db).DeleteReadBefore(context.Background(), cutoff)
	if err != nil {
		log.Fatalf("cleanup notifications failed: %v", err)
	}

	log.Printf("notification cleanup completed: deleted=%d cutoff=%s", n, cutoff.Format(time.RFC3339))
}
