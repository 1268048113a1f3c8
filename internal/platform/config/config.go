package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Drivers de persistencia soportados.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
	DriverS3       = "s3"
)

// Config se arma desde variables de entorno (opcionalmente desde un .env local).
type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	AppName   string `envconfig:"APP_NAME" default:"livestock-records"`

	// Clave fija del documento persistido.
	StoreKey      string `envconfig:"STORE_KEY" default:"cows"`
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"memory"`

	DBDSN      string `envconfig:"DB_DSN"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"data/livestock.db"`
	BadgerPath string `envconfig:"BADGER_PATH" default:"data/badger"`

	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3PathStyle bool   `envconfig:"S3_PATH_STYLE" default:"false"`
	S3Prefix    string `envconfig:"S3_PREFIX" default:"livestock/"`
}

// Load lee .env si existe (no es obligatorio) y luego el entorno.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.StoreKey) == "" {
		return errors.New("config: STORE_KEY must not be empty")
	}

	switch c.StorageDriver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("config: SQLITE_PATH required for sqlite driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return errors.New("config: DB_DSN required for postgres driver")
		}
	case DriverBadger:
		if strings.TrimSpace(c.BadgerPath) == "" {
			return errors.New("config: BADGER_PATH required for badger driver")
		}
	case DriverS3:
		if strings.TrimSpace(c.S3Bucket) == "" {
			return errors.New("config: S3_BUCKET required for s3 driver")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
