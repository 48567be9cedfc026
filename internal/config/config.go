package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Tripo    TripoConfig
	Events   EventsConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	BindAddr           string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	BodyLimit          int
}

type DatabaseConfig struct {
	Connection     string
	MaxConnections int
	AutoMigrate    bool
}

type TripoConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration // 0 means no client-side timeout
}

type EventsConfig struct {
	Topic        string
	AuditLogPath string
	NatsURL      string // empty disables NATS fan-out
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			BindAddr:           getEnv("BIND_ADDR", "0.0.0.0:8080"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			BodyLimit:          getEnvAsInt("BODY_LIMIT_BYTES", 1024*1024),
		},
		Database: DatabaseConfig{
			Connection:     getEnv("DATABASE_URL", ""),
			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			AutoMigrate:    getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Tripo: TripoConfig{
			BaseURL: getEnv("TRIPO_BASE_URL", "https://api.tripo3d.ai/v2/openapi"),
			APIKey:  getEnv("TRIPO_API_KEY", ""),
			Timeout: getEnvAsDuration("TRIPO_HTTP_TIMEOUT", 0),
		},
		Events: EventsConfig{
			Topic:        getEnv("EVENTS_TOPIC", "weapon.events"),
			AuditLogPath: getEnv("EVENTS_AUDIT_LOG_PATH", "logs/events.log"),
			NatsURL:      getEnv("NATS_URL", ""),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "weaponforge-backend"),
		},
	}
}

// Validate reports the first missing or malformed required setting.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.App.BindAddr); err != nil {
		return fmt.Errorf("Invalid BIND_ADDR: %s", c.App.BindAddr)
	}
	if c.Database.Connection == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.Tripo.APIKey == "" {
		return errors.New("TRIPO_API_KEY is required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
