package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"

	"github.com/yungbote/calmzone-backend/internal/data/db"
	"github.com/yungbote/calmzone-backend/internal/jobs/reconcile"
	"github.com/yungbote/calmzone-backend/internal/observability"
	"github.com/yungbote/calmzone-backend/internal/pkg/clock"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	LogMode string `env:"LOG_MODE" envDefault:"development"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	Version string `env:"APP_VERSION" envDefault:"dev"`

	// Postgres
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresName     string `env:"POSTGRES_NAME" envDefault:"calmzone"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Completion provider
	OpenAIAPIKey  string        `env:"OPENAI_API_KEY,required"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL"`
	OpenAIModel   string        `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
	OpenAITimeout time.Duration `env:"OPENAI_TIMEOUT" envDefault:"60s"`
	PersonaPath   string        `env:"PERSONA_PATH"`

	MoodDayTimezone string `env:"MOOD_DAY_TIMEZONE" envDefault:"UTC"`

	// Live board feed
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisChannel  string `env:"REDIS_CHANNEL" envDefault:"calmzone.board"`

	ReconcileCron string `env:"RECONCILE_CRON" envDefault:"@every 1h"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// Tracing
	OtelEnabled     bool    `env:"OTEL_ENABLED"`
	OtelServiceName string  `env:"OTEL_SERVICE_NAME" envDefault:"calmzone-backend"`
	OtelEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelHeaders     string  `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	OtelInsecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE"`
	OtelSampleRatio float64 `env:"OTEL_SAMPLER_RATIO" envDefault:"0.1"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is empty")
	}
	if _, err := cfg.MoodLocation(); err != nil {
		return Config{}, err
	}
	if err := reconcile.Validate(cfg.ReconcileCron); err != nil {
		return Config{}, fmt.Errorf("RECONCILE_CRON %q: %w", cfg.ReconcileCron, err)
	}
	cfg.Port = strings.TrimPrefix(strings.TrimSpace(cfg.Port), ":")
	return cfg, nil
}

func (c Config) Addr() string { return ":" + c.Port }

// MoodLocation is the zone used to bucket mood entries by day.
func (c Config) MoodLocation() (*time.Location, error) {
	loc, err := clock.LoadLocation(c.MoodDayTimezone)
	if err != nil {
		return nil, fmt.Errorf("MOOD_DAY_TIMEZONE %q: %w", c.MoodDayTimezone, err)
	}
	return loc, nil
}

func (c Config) Postgres() db.PostgresConfig {
	return db.PostgresConfig{
		URL:      c.DatabaseURL,
		Host:     c.PostgresHost,
		Port:     c.PostgresPort,
		User:     c.PostgresUser,
		Password: c.PostgresPassword,
		Name:     c.PostgresName,
		SSLMode:  c.PostgresSSLMode,
	}
}

func (c Config) Otel() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.OtelEnabled,
		ServiceName: c.OtelServiceName,
		Environment: c.AppEnv,
		Version:     c.Version,
		Endpoint:    c.OtelEndpoint,
		Headers:     c.OtelHeaders,
		Insecure:    c.OtelInsecure,
		SampleRatio: c.OtelSampleRatio,
	}
}
