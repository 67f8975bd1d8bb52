// Package config loads process configuration from the environment.
// A .env file in the working directory is loaded first.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type logLevel string

const (
	LevelInfo    logLevel = "INFO"
	LevelDebug   logLevel = "DEBUG"
	LevelWarning logLevel = "WARNING"
	LevelError   logLevel = "ERROR"
	LevelFatal   logLevel = "FATAL"
)

// Config is the full process configuration.
type Config struct {
	Env       string          `mapstructure:"env"`
	Port      int             `mapstructure:"port" validate:"gt=0,lte=65535"`
	DB        DBConfig        `mapstructure:"db"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Auth      AuthConfig      `mapstructure:"auth"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

// DBConfig selects and configures the storage backend.
// Connection strings are not required here: a missing one is
// reported by the connection cache when a connection is first needed.
type DBConfig struct {
	Driver         string        `mapstructure:"driver" validate:"oneof=mongo postgres"`
	MongoURL       string        `mapstructure:"mongo_url"`
	MongoDatabase  string        `mapstructure:"mongo_database" validate:"required"`
	PostgresDSN    string        `mapstructure:"postgres_dsn"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size" validate:"gt=0"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" validate:"gt=0"`
	WatchdogSpec   string        `mapstructure:"watchdog_spec"`
}

// LoggerConfig configures logrus.
type LoggerConfig struct {
	LogLevel   logLevel `mapstructure:"log_level" validate:"oneof=INFO DEBUG WARNING ERROR FATAL"`
	Format     string   `mapstructure:"format" validate:"oneof=text json"`
	OutputFile string   `mapstructure:"output_file"`
}

// AuthConfig configures bearer token validation.
type AuthConfig struct {
	SecretKey string        `mapstructure:"secret_key"`
	Issuer    string        `mapstructure:"issuer" validate:"required"`
	TokenTTL  time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
}

// HTTPConfig configures the gin engine.
type HTTPConfig struct {
	AllowOrigins       []string `mapstructure:"allow_origins"`
	RateLimitPerSecond uint     `mapstructure:"rate_limit_per_second"`
	MaxBodyBytes       int64    `mapstructure:"max_body_bytes" validate:"gt=0"`
}

// DashboardConfig configures the dashboard service.
type DashboardConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`
}

var envBindings = map[string]string{
	"env":                        "APP_ENV",
	"port":                       "PORT",
	"db.driver":                  "DB_DRIVER",
	"db.mongo_url":               "MONGODB_URL",
	"db.mongo_database":          "MONGODB_DATABASE",
	"db.postgres_dsn":            "DB_CONNECTION_STR",
	"db.max_pool_size":           "DB_MAX_POOL_SIZE",
	"db.connect_timeout":         "DB_CONNECT_TIMEOUT",
	"db.watchdog_spec":           "DB_WATCHDOG_SPEC",
	"logger.log_level":           "LOG_LEVEL",
	"logger.format":              "LOG_FORMAT",
	"logger.output_file":         "LOG_FILE",
	"auth.secret_key":            "SECRET_KEY",
	"auth.issuer":                "JWT_ISSUER",
	"auth.token_ttl":             "TOKEN_TTL",
	"http.allow_origins":         "ALLOW_ORIGIN",
	"http.rate_limit_per_second": "RATE_LIMIT_REQUESTS_PER_SECOND",
	"http.max_body_bytes":        "MAX_BODY_BYTES",
	"dashboard.cache_ttl":        "DASHBOARD_CACHE_TTL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("port", 8080)
	v.SetDefault("db.driver", DriverMongo)
	v.SetDefault("db.mongo_database", "lynxats")
	v.SetDefault("db.max_pool_size", 10)
	v.SetDefault("db.connect_timeout", 10*time.Second)
	v.SetDefault("db.watchdog_spec", "@every 30s")
	v.SetDefault("logger.log_level", string(LevelInfo))
	v.SetDefault("logger.format", "text")
	v.SetDefault("auth.issuer", "LynxATS")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("http.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("http.rate_limit_per_second", 5)
	v.SetDefault("http.max_body_bytes", 1<<20)
	v.SetDefault("dashboard.cache_ttl", 30*time.Second)
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("invalid variable %s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
}

// IsRelease reports whether the process runs in production mode.
func (c Config) IsRelease() bool {
	return c.Env == "production"
}
