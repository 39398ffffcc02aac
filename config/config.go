package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port              string
	LogLevel          string
	LogFormat         string
	StoreDriver       string
	StoreDSN          string
	SettingsNamespace string
	DefaultLocale     string
	NATSUrl           string
	SubmittedSubject  string
	CopySubject       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	return &Config{
		Port:              getEnv("PORT", "8081"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		StoreDriver:       getEnv("STORE_DRIVER", "memory"),
		StoreDSN:          getEnv("STORE_DSN", ""),
		SettingsNamespace: getEnv("SETTINGS_NAMESPACE", "custom.settings"),
		DefaultLocale:     getEnv("DEFAULT_LOCALE", "en"),
		NATSUrl:           getEnv("NATS_URL", ""),
		SubmittedSubject:  getEnv("SUBMITTED_SUBJECT", "candidate.application.submitted"),
		CopySubject:       getEnv("COPY_SUBJECT", "candidate.application.copy"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
