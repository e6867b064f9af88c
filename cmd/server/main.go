package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/rollcall/internal/server"
	"github.com/dmitrijs2005/rollcall/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
