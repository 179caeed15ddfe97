package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config содержит конфигурацию Chronicle Server
type Config struct {
	// Настройки сервера
	Port        string `envconfig:"SERVER_PORT" default:"8080"`
	Env         string `envconfig:"APP_ENV" default:"production"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	// Хранилище: memory (по умолчанию) или postgres
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"memory"`

	// Настройки PostgreSQL (обязательны только при STORAGE_BACKEND=postgres)
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"chronicle"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"chronicle"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns int    `envconfig:"DB_MAX_CONNECTIONS" default:"10"`

	// Настройки Redis (кэш рекапов; пустой адрес отключает кэш)
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	RecapCacheTTL time.Duration `envconfig:"RECAP_CACHE_TTL" default:"10m"`

	// Настройки AI клиента
	AIClientType string        `envconfig:"AI_CLIENT_TYPE" default:"openai"`
	AIBaseURL    string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
	AIAPIKey     string        `envconfig:"AI_API_KEY"`
	AIModel      string        `envconfig:"AI_MODEL" default:"gpt-4o-mini"`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`

	// CORS
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// GetAllowedOrigins разбирает CORS_ALLOWED_ORIGINS (список через запятую).
func (c *Config) GetAllowedOrigins() []string {
	if strings.TrimSpace(c.CORSAllowedOrigins) == "" {
		return nil
	}
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	switch cfg.StorageBackend {
	case StorageMemory, StoragePostgres:
	default:
		return nil, fmt.Errorf("неизвестный storage backend: '%s'", cfg.StorageBackend)
	}

	if cfg.StorageBackend == StoragePostgres && cfg.DBPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD обязателен при STORAGE_BACKEND=postgres")
	}

	return &cfg, nil
}
