package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"dispatch/internal/pkg/logger"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"

	minPort = 1
	maxPort = 65535
)

type Config struct {
	HTTP           HTTPConfig           `yaml:"http"`
	Storage        StorageConfig        `yaml:"storage"`
	Redis          RedisConfig          `yaml:"redis"`
	RabbitMQ       RabbitMQConfig       `yaml:"rabbitmq"`
	Reconciliation ReconciliationConfig `yaml:"reconciliation"`
	Logging        logger.Config        `yaml:"logging"`
}

type HTTPConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// RateLimit caps offer requests per user within RateWindow. Zero disables it.
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
}

type StorageConfig struct {
	Driver   string         `yaml:"driver"`
	Postgres PostgresConfig `yaml:"postgres"`
	Mongo    MongoConfig    `yaml:"mongo"`
}

type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type MongoConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// RedisConfig backs the rate limiter. An empty Addr keeps counters in memory.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// RabbitMQConfig receives job events. An empty URL logs events instead.
type RabbitMQConfig struct {
	URL            string        `yaml:"url"`
	Exchange       string        `yaml:"exchange"`
	ConnectRetries int           `yaml:"connect_retries"`
	RetryInterval  time.Duration `yaml:"retry_interval"`
}

type ReconciliationConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
}

func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       60,
			RateWindow:      time.Minute,
		},
		Storage: StorageConfig{
			Driver: StoragePostgres,
			Postgres: PostgresConfig{
				Host:            "localhost",
				Port:            5432,
				SSLMode:         "disable",
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 30 * time.Minute,
			},
			Mongo: MongoConfig{ConnectTimeout: 10 * time.Second},
		},
		RabbitMQ: RabbitMQConfig{
			Exchange:       "dispatch.events",
			ConnectRetries: 5,
			RetryInterval:  2 * time.Second,
		},
		Reconciliation: ReconciliationConfig{Enabled: true, Schedule: "0 * * * * *"},
		Logging:        logger.Config{Level: "info", Format: "console"},
	}
}

// LoadConfig starts from defaults, applies the YAML file at path when path
// is not empty, then .env and the process environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString("DB_DRIVER", &c.Storage.Driver)
	setString("DB_HOST", &c.Storage.Postgres.Host)
	setString("DB_USER", &c.Storage.Postgres.User)
	setString("DB_PASSWORD", &c.Storage.Postgres.Password)
	setString("DB_NAME", &c.Storage.Postgres.Name)
	setString("DB_SSLMODE", &c.Storage.Postgres.SSLMode)
	setString("MONGO_URI", &c.Storage.Mongo.URI)
	setString("MONGO_DATABASE", &c.Storage.Mongo.Database)
	setString("REDIS_ADDR", &c.Redis.Addr)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setString("RABBITMQ_URL", &c.RabbitMQ.URL)
	setString("RABBITMQ_EXCHANGE", &c.RabbitMQ.Exchange)
	setString("RECONCILE_SCHEDULE", &c.Reconciliation.Schedule)
	setString("LOG_LEVEL", &c.Logging.Level)
	setString("LOG_FORMAT", &c.Logging.Format)

	return errors.Join(
		setInt("HTTP_PORT", &c.HTTP.Port),
		setInt("HTTP_RATE_LIMIT", &c.HTTP.RateLimit),
		setInt("DB_PORT", &c.Storage.Postgres.Port),
		setInt("REDIS_DB", &c.Redis.DB),
	)
}

func setString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func (c Config) Validate() error {
	var errList []error

	if c.HTTP.Port < minPort || c.HTTP.Port > maxPort {
		errList = append(errList, fmt.Errorf("invalid http port: %d (must be between %d and %d)", c.HTTP.Port, minPort, maxPort))
	}
	if c.HTTP.RateLimit > 0 && c.HTTP.RateWindow <= 0 {
		errList = append(errList, errors.New("http rate_window must be positive when rate_limit is set"))
	}

	switch c.Storage.Driver {
	case StoragePostgres:
		pg := c.Storage.Postgres
		if pg.Host == "" {
			errList = append(errList, errors.New("postgres host is required"))
		}
		if pg.Port < minPort || pg.Port > maxPort {
			errList = append(errList, fmt.Errorf("invalid postgres port: %d", pg.Port))
		}
		if pg.Name == "" {
			errList = append(errList, errors.New("postgres database name is required"))
		}
	case StorageMongo:
		if c.Storage.Mongo.URI == "" {
			errList = append(errList, errors.New("mongo uri is required"))
		}
		if c.Storage.Mongo.Database == "" {
			errList = append(errList, errors.New("mongo database is required"))
		}
	default:
		errList = append(errList, fmt.Errorf("unknown storage driver %q (want %s or %s)", c.Storage.Driver, StoragePostgres, StorageMongo))
	}

	if c.RabbitMQ.URL != "" && c.RabbitMQ.Exchange == "" {
		errList = append(errList, errors.New("rabbitmq exchange is required"))
	}
	if c.Reconciliation.Enabled && c.Reconciliation.Schedule == "" {
		errList = append(errList, errors.New("reconciliation schedule is required"))
	}

	return errors.Join(errList...)
}
