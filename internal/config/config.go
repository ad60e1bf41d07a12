package config

import (
	"errors"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// ApplyTrajectoryOffset is the default for requests that don't say
	// whether to perturb the aim point.
	ApplyTrajectoryOffset bool

	// Kafka publishing of completed simulations.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string

	// DatabaseURL selects the PostgreSQL user store when set.
	DatabaseURL string

	AuthTokenSecret string
	AuthTokenTTL    time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	tokenTTL, err := time.ParseDuration(sharedcfg.EnvOrDefault("AUTH_TOKEN_TTL", "24h"))
	if err != nil || tokenTTL <= 0 {
		return nil, errors.New("invalid AUTH_TOKEN_TTL")
	}

	trajectory, err := parseBool("SIMULATION_TRAJECTORY_OFFSET", false)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled, err := parseBool("KAFKA_ENABLED", len(brokers) > 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ApplyTrajectoryOffset: trajectory,

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "impact-simulations"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		AuthTokenSecret: os.Getenv("AUTH_TOKEN_SECRET"),
		AuthTokenTTL:    tokenTTL,
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required")
	}

	return cfg, nil
}

func parseBool(key string, def bool) (bool, error) {
	switch os.Getenv(key) {
	case "":
		return def, nil
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, errors.New("invalid " + key)
	}
}
