package main

import (
	"log"

	"github.com/joho/godotenv"

	"datascope/adapters/api"
	"datascope/internal/config"
)

func main() {
	// Load .env if present; real environments set variables directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	server := api.NewServer(cfg)
	if err := server.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
