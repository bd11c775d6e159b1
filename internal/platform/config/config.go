package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	ClinicTimeZone        string
	AdministratorIdentity string
	ReadOnlyIdentity      string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
}

// Load reads configuration from the environment, with an optional .env
// file for local runs. Environment variables win over file values.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SERVICE_NAME", "clinicalh")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("CLINIC_TIME_ZONE", "America/Bogota")
	v.SetDefault("ADMIN_IDENTITY", "superuser")
	v.SetDefault("READONLY_IDENTITY", "readonly")
	v.SetDefault("OUTBOX_POLL_INTERVAL", "2s")
	v.SetDefault("OUTBOX_BATCH_SIZE", 100)

	interval, err := time.ParseDuration(strings.TrimSpace(v.GetString("OUTBOX_POLL_INTERVAL")))
	if err != nil || interval <= 0 {
		interval = 2 * time.Second
	}

	return Config{
		ServiceName:           strings.TrimSpace(v.GetString("SERVICE_NAME")),
		HTTPPort:              strings.TrimSpace(v.GetString("HTTP_PORT")),
		PostgresDSN:           strings.TrimSpace(v.GetString("POSTGRES_DSN")),
		ClinicTimeZone:        strings.TrimSpace(v.GetString("CLINIC_TIME_ZONE")),
		AdministratorIdentity: strings.TrimSpace(v.GetString("ADMIN_IDENTITY")),
		ReadOnlyIdentity:      strings.TrimSpace(v.GetString("READONLY_IDENTITY")),
		OutboxPollInterval:    interval,
		OutboxBatchSize:       v.GetInt("OUTBOX_BATCH_SIZE"),
	}, nil
}
