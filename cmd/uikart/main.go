package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/example/uikart/internal/client/cli"
	"github.com/example/uikart/internal/client/config"
)

func main() {
	// A missing .env file is fine; the config falls back to its defaults.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
