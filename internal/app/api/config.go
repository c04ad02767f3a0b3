package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
	"go.yaml.in/yaml/v4"
)

const minJWTSecretLength = 32

// Config carries file- and environment-driven settings for the CourierSync processes.
type Config struct {
	Port        string         `yaml:"port"`
	PostgresDSN string         `yaml:"postgres_dsn"`
	Temporal    TemporalConfig `yaml:"temporal"`
	Kafka       KafkaConfig    `yaml:"kafka"`
	Redis       RedisConfig    `yaml:"redis"`
	Auth        AuthConfig     `yaml:"auth"`
	Admin       AdminConfig    `yaml:"admin"`
}

type TemporalConfig struct {
	Address   string `yaml:"address"`
	Namespace string `yaml:"namespace"`
	Disabled  bool   `yaml:"disabled"`
}

type KafkaConfig struct {
	Brokers             []string `yaml:"brokers"`
	ShipmentEventsTopic string   `yaml:"shipment_events_topic"`
}

type RedisConfig struct {
	Addr                    string `yaml:"addr"`
	TrackingCacheTTLSeconds int    `yaml:"tracking_cache_ttl_seconds"`
}

type AuthConfig struct {
	JWTSecret               string `yaml:"jwt_secret"`
	JWTIssuer               string `yaml:"jwt_issuer"`
	JWTTTLMinutes           int    `yaml:"jwt_ttl_minutes"`
	LoginRateLimitPerMinute int    `yaml:"login_rate_limit_per_minute"`
}

// AdminConfig overrides the bootstrap administrator. Empty fields keep the built-in defaults.
type AdminConfig struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Phone    string `yaml:"phone"`
}

func defaultConfig() Config {
	return Config{
		Port: "8080",
		Temporal: TemporalConfig{
			Address:   client.DefaultHostPort,
			Namespace: client.DefaultNamespace,
		},
		Kafka: KafkaConfig{ShipmentEventsTopic: "courier.shipments"},
		Redis: RedisConfig{TrackingCacheTTLSeconds: 300},
		Auth: AuthConfig{
			JWTIssuer:               "couriersync",
			JWTTTLMinutes:           60,
			LoginRateLimitPerMinute: 5,
		},
	}
}

// LoadConfig applies defaults, then the YAML file named by CONFIG_FILE when set, then
// environment variables, and validates the result.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal YAML: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.PostgresDSN, "POSTGRES_DSN")
	setString(&cfg.Temporal.Address, "TEMPORAL_ADDRESS")
	setString(&cfg.Temporal.Namespace, "TEMPORAL_NAMESPACE")
	if raw, ok := lookup("TEMPORAL_DISABLED"); ok {
		cfg.Temporal.Disabled = isTruthy(raw)
	}
	if raw, ok := lookup("KAFKA_BROKERS"); ok {
		cfg.Kafka.Brokers = splitList(raw)
	}
	setString(&cfg.Kafka.ShipmentEventsTopic, "SHIPMENT_EVENTS_TOPIC")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Auth.JWTIssuer, "JWT_ISSUER")
	setString(&cfg.Admin.Email, "ADMIN_EMAIL")
	setString(&cfg.Admin.Password, "ADMIN_PASSWORD")
	for key, dst := range map[string]*int{
		"TRACKING_CACHE_TTL_SECONDS":  &cfg.Redis.TrackingCacheTTLSeconds,
		"JWT_TTL_MINUTES":             &cfg.Auth.JWTTTLMinutes,
		"LOGIN_RATE_LIMIT_PER_MINUTE": &cfg.Auth.LoginRateLimitPerMinute,
	} {
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s must be an integer", key)
		}
		*dst = value
	}
	return nil
}

func (c Config) validate() error {
	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minJWTSecretLength)
	}
	if c.Auth.JWTTTLMinutes <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be a positive integer")
	}
	if c.Redis.TrackingCacheTTLSeconds < 0 {
		return fmt.Errorf("TRACKING_CACHE_TTL_SECONDS must not be negative")
	}
	if c.Auth.LoginRateLimitPerMinute < 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }

func (c Config) TrackingCacheTTL() time.Duration {
	return time.Duration(c.Redis.TrackingCacheTTLSeconds) * time.Second
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.JWTTTLMinutes) * time.Minute
}

func lookup(key string) (string, bool) {
	val := strings.TrimSpace(os.Getenv(key))
	return val, val != ""
}

func setString(dst *string, key string) {
	if val, ok := lookup(key); ok {
		*dst = val
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
