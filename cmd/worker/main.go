package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/udea/couriersync/internal/app/api"
	clientsapp "github.com/udea/couriersync/internal/domains/clients/application"
	shipmentsobs "github.com/udea/couriersync/internal/domains/shipments/adapters/observability"
	shipmentsapp "github.com/udea/couriersync/internal/domains/shipments/application"
	"github.com/udea/couriersync/internal/platform/migrations"
	platformobservability "github.com/udea/couriersync/internal/platform/observability"
	platformpostgres "github.com/udea/couriersync/internal/platform/postgres"
	shipmentactivities "github.com/udea/couriersync/internal/platform/temporal/activities/shipments"
	shipmentworkflows "github.com/udea/couriersync/internal/platform/temporal/workflows/shipments"
)

func main() {
	ctx := context.Background()
	const serviceName = "couriersync-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if err := api.RequireSharedStore(db); err != nil {
		logger.Error("refusing to start worker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to migrate schema", slog.String("error", err.Error()))
		os.Exit(1)
	}
	repos := api.BuildRepositories(db)

	// The persist activity must not publish: the publish activity owns event delivery.
	persistService := shipmentsobs.New(
		shipmentsapp.NewService(repos.Shipments, clientsapp.NewService(repos.Clients)),
		shipmentsobs.WithLogger(logger),
		shipmentsobs.WithTracer(instruments.Tracer("internal.shipments.application")),
		shipmentsobs.WithMeter(instruments.Meter("internal.shipments.application")),
	)
	publisher, closePublisher := api.BuildEventPublisher(cfg, logger)
	defer closePublisher()
	activities := shipmentactivities.NewActivities(persistService, publisher)

	temporalClient, err := api.DialTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, shipmentworkflows.ShipmentCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(shipmentworkflows.ShipmentCreationWorkflow, workflow.RegisterOptions{Name: shipmentworkflows.ShipmentCreationWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistShipment, activity.RegisterOptions{Name: shipmentactivities.PersistShipmentActivityName})
	w.RegisterActivityWithOptions(activities.PublishShipmentEvent, activity.RegisterOptions{Name: shipmentactivities.PublishShipmentEventActivityName})

	logger.Info("worker listening", slog.String("taskQueue", shipmentworkflows.ShipmentCreationTaskQueue), slog.String("namespace", cfg.Temporal.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
