package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ModeDev  = "dev"
	ModeProd = "prod"

	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	// DefaultJWTSecret is only suitable for local development.
	DefaultJWTSecret = "change-me"

	// CronDisabled turns the overdue report off.
	CronDisabled = "off"
)

// Database selects the storage backend.
type Database struct {
	Driver string
	Path   string // sqlite file
	DSN    string // mysql
}

// JWT configures token issuance.
type JWT struct {
	Secret string
	TTL    time.Duration
}

// Redis configures the token denylist. An empty Addr disables it.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Log configures the process logger.
type Log struct {
	Level  string
	Format string
	File   string
}

// Config holds application level configuration.
type Config struct {
	AppMode       string
	ServerPort    string
	Database      Database
	JWT           JWT
	Redis         Redis
	Log           Log
	OverdueCron   string
	SwaggerHost   string
	BookListLimit uint
}

// IsDev reports whether the application runs in development mode.
func (c *Config) IsDev() bool {
	return c.AppMode == ModeDev
}

// UsesDefaultSecret reports whether JWT_SECRET was left at its default.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWT.Secret == DefaultJWTSecret
}

// Load builds Config from a .env file (if present), the environment and an
// optional YAML file. path takes precedence over CONFIG_FILE. Environment
// variables override file values.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_MODE", ModeDev)
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "library.db")
	v.SetDefault("MYSQL_DSN", "user:password@tcp(localhost:3306)/library?charset=utf8mb4&parseTime=True&loc=UTC")
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_TTL_MINUTES", 60)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("OVERDUE_CRON", "30 8 * * *")
	v.SetDefault("SWAGGER_HOST", "")
	v.SetDefault("BOOK_LIST_LIMIT", 100)

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		AppMode:    strings.ToLower(v.GetString("APP_MODE")),
		ServerPort: v.GetString("SERVER_PORT"),
		Database: Database{
			Driver: strings.ToLower(v.GetString("DB_DRIVER")),
			Path:   v.GetString("DB_PATH"),
			DSN:    v.GetString("MYSQL_DSN"),
		},
		JWT: JWT{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    time.Duration(v.GetInt("JWT_TTL_MINUTES")) * time.Minute,
		},
		Redis: Redis{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
			File:   v.GetString("LOG_FILE"),
		},
		OverdueCron:   strings.TrimSpace(v.GetString("OVERDUE_CRON")),
		SwaggerHost:   v.GetString("SWAGGER_HOST"),
		BookListLimit: v.GetUint("BOOK_LIST_LIMIT"),
	}

	switch cfg.AppMode {
	case ModeDev, ModeProd:
	default:
		return nil, fmt.Errorf("invalid APP_MODE %q", cfg.AppMode)
	}
	switch cfg.Database.Driver {
	case DriverSQLite, DriverMySQL:
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q", cfg.Database.Driver)
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
		if cfg.AppMode == ModeProd {
			cfg.Log.Format = "json"
		}
	}
	if cfg.JWT.TTL <= 0 {
		cfg.JWT.TTL = time.Hour
	}
	if cfg.BookListLimit == 0 {
		cfg.BookListLimit = 100
	}

	return cfg, nil
}
