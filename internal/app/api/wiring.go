package api

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	clientsmemory "github.com/udea/couriersync/internal/domains/clients/adapters/memory"
	clientspostgres "github.com/udea/couriersync/internal/domains/clients/adapters/persistence/postgres"
	clientsports "github.com/udea/couriersync/internal/domains/clients/ports"
	shipmentskafka "github.com/udea/couriersync/internal/domains/shipments/adapters/events/kafka"
	shipmentsmemory "github.com/udea/couriersync/internal/domains/shipments/adapters/memory"
	shipmentspostgres "github.com/udea/couriersync/internal/domains/shipments/adapters/persistence/postgres"
	shipmentsports "github.com/udea/couriersync/internal/domains/shipments/ports"
	usersmemory "github.com/udea/couriersync/internal/domains/users/adapters/memory"
	userspostgres "github.com/udea/couriersync/internal/domains/users/adapters/persistence/postgres"
	usersratelimit "github.com/udea/couriersync/internal/domains/users/adapters/ratelimit"
	userssecurity "github.com/udea/couriersync/internal/domains/users/adapters/security"
	usersapp "github.com/udea/couriersync/internal/domains/users/application"
	usertypes "github.com/udea/couriersync/internal/domains/users/application/types"
	usersports "github.com/udea/couriersync/internal/domains/users/ports"
	vehiclesmemory "github.com/udea/couriersync/internal/domains/vehicles/adapters/memory"
	vehiclespostgres "github.com/udea/couriersync/internal/domains/vehicles/adapters/persistence/postgres"
	vehiclesports "github.com/udea/couriersync/internal/domains/vehicles/ports"
	platformkafka "github.com/udea/couriersync/internal/platform/kafka"
	platformobservability "github.com/udea/couriersync/internal/platform/observability"
	platformredis "github.com/udea/couriersync/internal/platform/redis"
)

// Repositories groups the storage adapters of every bounded context.
type Repositories struct {
	Shipments shipmentsports.Repository
	Clients   clientsports.Repository
	Vehicles  vehiclesports.Repository
	Users     usersports.Repository
}

// BuildRepositories returns Postgres adapters when db is set and in-memory adapters otherwise.
func BuildRepositories(db *gorm.DB) Repositories {
	if db == nil {
		return Repositories{
			Shipments: shipmentsmemory.NewRepository(),
			Clients:   clientsmemory.NewRepository(),
			Vehicles:  vehiclesmemory.NewRepository(),
			Users:     usersmemory.NewRepository(),
		}
	}
	return Repositories{
		Shipments: shipmentspostgres.NewRepository(db),
		Clients:   clientspostgres.NewRepository(db),
		Vehicles:  vehiclespostgres.NewRepository(db),
		Users:     userspostgres.NewRepository(db),
	}
}

// BuildEventPublisher returns a Kafka-backed shipment event publisher, or the no-op
// publisher when no brokers are configured. The returned func closes the producer.
func BuildEventPublisher(cfg Config, logger *slog.Logger) (shipmentsports.EventPublisher, func()) {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, shipment events are dropped")
		return shipmentsports.NoopEventPublisher, func() {}
	}
	producer := platformkafka.NewProducer(cfg.Kafka.Brokers)
	logger.Info("shipment events published to kafka",
		slog.Any("brokers", cfg.Kafka.Brokers),
		slog.String("topic", cfg.Kafka.ShipmentEventsTopic),
	)
	return shipmentskafka.NewPublisher(producer, cfg.Kafka.ShipmentEventsTopic), func() {
		if err := producer.Close(); err != nil {
			logger.Warn("failed to close kafka producer", slog.String("error", err.Error()))
		}
	}
}

// BuildUserService wires password hashing, token signing and, when redis is available,
// login throttling around repo.
func BuildUserService(cfg Config, repo usersports.Repository, redisClient *goredis.Client, logger *slog.Logger) (*usersapp.Service, error) {
	secret := []byte(cfg.Auth.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, minJWTSecretLength)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate signing secret: %w", err)
		}
		logger.Warn("JWT_SECRET not set, tokens will not survive a restart")
	}
	issuer, err := userssecurity.NewJWTIssuer(secret, cfg.Auth.JWTIssuer, cfg.TokenTTL())
	if err != nil {
		return nil, err
	}
	var opts []usersapp.Option
	if redisClient != nil {
		limiter := usersratelimit.NewLoginLimiter(
			platformredis.NewRateLimiter(redisClient),
			int64(cfg.Auth.LoginRateLimitPerMinute),
			time.Minute,
		)
		opts = append(opts, usersapp.WithLoginLimiter(limiter))
	}
	return usersapp.NewService(repo, userssecurity.NewBcryptHasher(bcrypt.DefaultCost), issuer, opts...), nil
}

// AdminCredentials merges configured overrides onto the default bootstrap account.
func AdminCredentials(cfg Config) usertypes.AdminCredentials {
	creds := usertypes.DefaultAdminCredentials()
	if cfg.Admin.Name != "" {
		creds.Name = cfg.Admin.Name
	}
	if cfg.Admin.Email != "" {
		creds.Email = cfg.Admin.Email
	}
	if cfg.Admin.Password != "" {
		creds.Password = cfg.Admin.Password
	}
	if cfg.Admin.Phone != "" {
		creds.Phone = cfg.Admin.Phone
	}
	return creds
}

// EnsureAdmin runs the idempotent administrator bootstrap and logs its outcome.
func EnsureAdmin(ctx context.Context, users usersports.Service, cfg Config, logger *slog.Logger) error {
	creds := AdminCredentials(cfg)
	outcome, err := users.EnsureAdmin(ctx, creds)
	if err != nil {
		return fmt.Errorf("failed to bootstrap administrator: %w", err)
	}
	logger.Info("administrator bootstrap", slog.String("outcome", string(outcome)), slog.String("email", creds.Email))
	return nil
}

// DialTemporal connects a Temporal client with tracing and structured logging.
// ErrSharedStoreRequired reports that Temporal creation was requested while repositories are in memory.
var ErrSharedStoreRequired = errors.New("temporal workflows need POSTGRES_DSN so the API and the worker share one store")

// RequireSharedStore fails when db is nil: the worker would persist into its own process memory.
func RequireSharedStore(db *gorm.DB) error {
	if db == nil {
		return ErrSharedStoreRequired
	}
	return nil
}

func DialTemporal(cfg Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.Temporal.Disabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer(tracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.Temporal.Address,
		Namespace: cfg.Temporal.Namespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}

// OpenRedis returns a client for cfg.Redis.Addr or nil when redis is not configured or unreachable.
func OpenRedis(ctx context.Context, cfg Config, logger *slog.Logger) *goredis.Client {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set, tracking cache and login throttling disabled")
		return nil
	}
	c := platformredis.NewClient(cfg.Redis.Addr)
	if err := c.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, tracking cache and login throttling disabled", slog.String("error", err.Error()))
		_ = c.Close()
		return nil
	}
	logger.Info("redis connection established", slog.String("addr", cfg.Redis.Addr))
	return c
}
