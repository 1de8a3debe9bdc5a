package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT"        default:":8081"`
	GrpcPort        string        `envconfig:"GRPC_PORT"        default:":50051"`
	LogLevel        string        `envconfig:"LOG_LEVEL"        default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT"       default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"mongo"`
	MongoURI      string `envconfig:"MONGO_URI"      default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"seci"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`

	// Where report documents/rows referencing categories live.
	StatsCollection    string `envconfig:"STATS_COLLECTION"     default:"reports"`
	StatsCategoryField string `envconfig:"STATS_CATEGORY_FIELD" default:"categoryId"`

	CacheSize int           `envconfig:"CACHE_SIZE" default:"256"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL"  default:"1m"`
}

var (
	config Config
	once   sync.Once
)

// Load reads the environment (after an optional .env file) into a Config
// and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("MONGO_URI and MONGO_DATABASE are required for the %s driver", DriverMongo)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", DriverPostgres)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want %s, %s or %s)", c.StorageDriver, DriverMongo, DriverPostgres, DriverMemory)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("CACHE_SIZE must not be negative")
	}
	if c.StatsCollection == "" || c.StatsCategoryField == "" {
		return fmt.Errorf("STATS_COLLECTION and STATS_CATEGORY_FIELD must not be empty")
	}
	return nil
}

// LoadConfig loads the process configuration once and exits on failure.
func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		cfg, err := Load()
		if err != nil {
			logger.Fatalf("Configuration error: %v", err)
		}
		config = *cfg

		logger.Infof("Configuration loaded: HTTP Port=%s, GRPC Port=%s, Storage=%s, LogLevel=%s",
			config.HTTPPort, config.GrpcPort, config.StorageDriver, config.LogLevel)
	})
	return &config
}
