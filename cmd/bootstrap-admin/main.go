package main

import (
	"context"
	"log"
	"time"

	"github.com/udea/couriersync/internal/app/api"
	"github.com/udea/couriersync/internal/platform/migrations"
	platformobservability "github.com/udea/couriersync/internal/platform/observability"
	platformpostgres "github.com/udea/couriersync/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := platformobservability.NewLogger()
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot bootstrap administrator")
	}
	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	users, err := api.BuildUserService(cfg, api.BuildRepositories(db).Users, nil, logger)
	if err != nil {
		log.Fatalf("failed to build user service: %v", err)
	}
	if err := api.EnsureAdmin(ctx, users, cfg, logger); err != nil {
		log.Fatal(err)
	}
}
