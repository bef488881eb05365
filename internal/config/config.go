package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv    string
	Port      string
	JWTSecret string

	HTTP      HTTPConfig
	DB        DBConfig
	RedisAddr string
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
}

type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DBConfig struct {
	Host        string
	User        string
	Password    string
	Name        string
	Port        string
	SSLMode     string
	MaxRetries  int
	AutoMigrate bool
}

type KafkaConfig struct {
	Broker        string
	ConsumerGroup string
	PollInterval  time.Duration
	BatchSize     int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load reads the process environment. cmd/* preloads .env before calling it.
func Load() (Config, error) {
	cfg := Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "3000"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		HTTP: HTTPConfig{
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    os.Getenv("DB_PASSWORD"),
			Name:        getEnv("DB_NAME", "ems"),
			Port:        getEnv("DB_PORT", "5432"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxRetries:  getEnvInt("DB_MAX_RETRIES", 5),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		},
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		Kafka: KafkaConfig{
			Broker:        os.Getenv("KAFKA_BROKER"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "go-ems-attendance"),
			PollInterval:  getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
			BatchSize:     getEnvInt("OUTBOX_BATCH_SIZE", 50),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
			Burst: getEnvInt("RATE_LIMIT_BURST", 40),
		},
	}

	if cfg.JWTSecret == "" && !cfg.IsDevelopment() {
		return Config{}, fmt.Errorf("JWT_SECRET is required outside development")
	}
	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development") || strings.EqualFold(c.AppEnv, "dev")
}

// RequireKafka is checked by the worker and consumer binaries only.
func (c Config) RequireKafka() error {
	if c.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
