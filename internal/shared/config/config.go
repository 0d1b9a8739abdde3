package config

import (
	"os"
	"strconv"
)

// Config holds application configuration.
type Config struct {
	SMTP      SMTPConfig
	Server    ServerConfig
	RateLimit RateLimitConfig
	Env       string
	LogLevel  string
}

// SMTPConfig holds mail-transport configuration.
type SMTPConfig struct {
	Host      string
	Port      int
	Secure    bool
	Username  string
	Password  string
	FromEmail string
	FromName  string
	PoolSize  int
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
}

// RateLimitConfig holds per-client rate limiting configuration.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// IsProduction reports whether the service runs in production mode. Outside
// production the transport performs a credential verification on startup.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	poolSize, _ := strconv.Atoi(getEnv("SMTP_POOL_SIZE", "4"))
	rps, _ := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "50"), 64)
	burst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "100"))

	username := getEnv("SMTP_USERNAME", "")

	// From address falls back to the SMTP username, then a fixed default.
	from := getEnv("SMTP_FROM_EMAIL", "")
	if from == "" {
		from = username
	}
	if from == "" {
		from = "no-reply@permit-system.local"
	}

	return &Config{
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:      smtpPort,
			Secure:    getEnv("SMTP_SECURE", "false") == "true",
			Username:  username,
			Password:  getEnv("SMTP_PASSWORD", ""),
			FromEmail: from,
			FromName:  getEnv("SMTP_FROM_NAME", "Permit System"),
			PoolSize:  poolSize,
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8084"),
		},
		RateLimit: RateLimitConfig{
			RPS:   rps,
			Burst: burst,
		},
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
