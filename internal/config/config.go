package config

import (
	"fmt"
	"os"
)

type Config struct {
	HTTPAddr string
	LogLevel string
	Env      string // dev|prod

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// SessionKey signs the flash cookie; must stay stable across restarts.
	SessionKey string

	SentryDSN string

	RecaptchaSecret    string
	RecaptchaVerifyURL string
}

func Load() *Config {
	return &Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		Env:      getenv("ENV", "dev"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", ""),
		DBName:     getenv("DB_NAME", "coursemanager"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		SessionKey: getenv("SESSION_KEY", "dev-only-insecure-session-key"),

		SentryDSN: os.Getenv("SENTRY_DSN"),

		RecaptchaSecret:    os.Getenv("RECAPTCHA_SECRET"),
		RecaptchaVerifyURL: getenv("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
	}
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getenv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
