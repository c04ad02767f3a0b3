package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	courierserver "github.com/udea/couriersync/go"

	clientsapp "github.com/udea/couriersync/internal/domains/clients/application"
	dashboardapp "github.com/udea/couriersync/internal/domains/dashboard/application"
	shipmentscache "github.com/udea/couriersync/internal/domains/shipments/adapters/cache/redis"
	shipmentsobs "github.com/udea/couriersync/internal/domains/shipments/adapters/observability"
	shipmentsworkflows "github.com/udea/couriersync/internal/domains/shipments/adapters/workflows"
	shipmentsapp "github.com/udea/couriersync/internal/domains/shipments/application"
	shipmentsports "github.com/udea/couriersync/internal/domains/shipments/ports"
	usersobs "github.com/udea/couriersync/internal/domains/users/adapters/observability"
	vehiclesapp "github.com/udea/couriersync/internal/domains/vehicles/application"
	"github.com/udea/couriersync/internal/platform/migrations"
	platformobservability "github.com/udea/couriersync/internal/platform/observability"
	platformpostgres "github.com/udea/couriersync/internal/platform/postgres"
	platformredis "github.com/udea/couriersync/internal/platform/redis"
)

// Run boots the CourierSync HTTP API with observability, repositories, messaging and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "couriersync-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
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
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	repos := BuildRepositories(db)

	redisClient := OpenRedis(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}
	publisher, closePublisher := BuildEventPublisher(cfg, logger)
	defer closePublisher()

	clientService := clientsapp.NewService(repos.Clients)
	vehicleService := vehiclesapp.NewService(repos.Vehicles)
	coreUserService, err := BuildUserService(cfg, repos.Users, redisClient, logger)
	if err != nil {
		return err
	}
	userService := usersobs.New(
		coreUserService,
		usersobs.WithLogger(logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	if err := EnsureAdmin(ctx, userService, cfg, logger); err != nil {
		return err
	}

	shipmentOpts := []shipmentsapp.Option{shipmentsapp.WithEventPublisher(publisher)}
	if redisClient != nil {
		cache := shipmentscache.NewTrackingCache(platformredis.NewCache(redisClient, "couriersync:"))
		shipmentOpts = append(shipmentOpts, shipmentsapp.WithTrackingCache(cache, cfg.TrackingCacheTTL()))
	}
	shipmentService := shipmentsobs.New(
		shipmentsapp.NewService(repos.Shipments, clientService, shipmentOpts...),
		shipmentsobs.WithLogger(logger),
		shipmentsobs.WithTracer(instruments.Tracer("internal.shipments.application")),
		shipmentsobs.WithMeter(instruments.Meter("internal.shipments.application")),
	)
	var shipmentWorkflows shipmentsports.WorkflowOrchestrator = shipmentsworkflows.NewInlineShipmentWorkflows(shipmentService)
	if err := RequireSharedStore(db); err != nil {
		logger.Warn("Temporal workflows skipped, creating shipments inline", slog.String("error", err.Error()))
	} else if temporalClient, err := DialTemporal(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, creating shipments inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		shipmentWorkflows = shipmentsworkflows.NewTemporalShipmentWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	}
	gate := shipmentsapp.NewGatekeeper(shipmentService, shipmentsapp.WithWorkflows(shipmentWorkflows))

	handlers := courierserver.ApiHandleFunctions{
		Authenticator: userService,
		AuthAPI:       courierserver.NewAuthAPI(userService),
		ShipmentAPI:   courierserver.NewShipmentAPI(gate),
		ClientAPI:     courierserver.NewClientAPI(clientService),
		VehicleAPI:    courierserver.NewVehicleAPI(vehicleService),
		UserAPI:       courierserver.NewUserAPI(userService),
		DashboardAPI:  courierserver.NewDashboardAPI(dashboardapp.NewService(shipmentService, clientService, userService)),
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), otelgin.Middleware(serviceName))
	router := courierserver.NewRouterWithGinEngine(engine, handlers)
	addr := cfg.Addr()
	logger.Info("CourierSync API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("CourierSync API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}
