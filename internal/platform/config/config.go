package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultBootstrapToken is the legacy fixed-literal operational credential.
// It is only honored when AuthBootstrapTokenEnabled is explicitly set, which
// no production posture should do.
const DefaultBootstrapToken = "kinkeep-bootstrap-access"

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	// SessionTokenSecret signs session credentials. Required for the api process.
	SessionTokenSecret string
	SessionTokenTTL    time.Duration

	// AuthBootstrapTokenEnabled gates the legacy shared-secret bypass
	// credential. Default off; every use is logged distinctly.
	AuthBootstrapTokenEnabled bool
	AuthBootstrapToken        string

	// PendingLoginTTL bounds the multi-step external-login correlation window.
	PendingLoginTTL      time.Duration
	PendingLoginSweepGap time.Duration

	// AssumeAdultWhenBirthDateUnknown is the explicit policy for the age-gated
	// billing check when no birth date is on file.
	AssumeAdultWhenBirthDateUnknown bool

	ReminderPollInterval time.Duration
	ReminderBatchSize    int
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "kinkeep"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		SessionTokenSecret: os.Getenv("SESSION_TOKEN_SECRET"),
		SessionTokenTTL:    envDuration("SESSION_TOKEN_TTL", 12*time.Hour),

		AuthBootstrapTokenEnabled: envBool("AUTH_BOOTSTRAP_TOKEN_ENABLED", false),
		AuthBootstrapToken:        envString("AUTH_BOOTSTRAP_TOKEN", DefaultBootstrapToken),

		PendingLoginTTL:      envDuration("PENDING_LOGIN_TTL", 5*time.Minute),
		PendingLoginSweepGap: envDuration("PENDING_LOGIN_SWEEP_INTERVAL", time.Minute),

		AssumeAdultWhenBirthDateUnknown: envBool("ASSUME_ADULT_WHEN_BIRTH_DATE_UNKNOWN", true),

		ReminderPollInterval: envDuration("REMINDER_POLL_INTERVAL", 30*time.Second),
		ReminderBatchSize:    envInt("REMINDER_BATCH_SIZE", 50),
	}, nil
}

func envString(name string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
