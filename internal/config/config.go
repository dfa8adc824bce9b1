package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the service reads from the environment. All
// values have workable defaults; the POS runs on a single device and must
// start even with an empty environment.
type Config struct {
	App struct {
		Port        string
		DataPath    string
		CatalogPath string
		Version     string
	}
	Auth struct {
		JWTSecret    string
		SessionTTL   time.Duration
		AllowedUsers []string
	}
	Backup struct {
		Interval      time.Duration
		MaxSnapshots  int
		Email         string
		EmailEndpoint string
	}
	VersionGate struct {
		Endpoint string
	}
}

// Load reads .env (when present) and the process environment.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = getEnvOrDefault("APP_PORT", "8080")
	cfg.App.DataPath = getEnvOrDefault("DATA_PATH", "pos-data.db")
	cfg.App.CatalogPath = getEnvOrDefault("CATALOG_PATH", "")
	cfg.App.Version = getEnvOrDefault("APP_VERSION", "3")

	cfg.Auth.JWTSecret = getEnvOrDefault("JWT_SECRET", "")
	cfg.Auth.SessionTTL = getDurationEnv("SESSION_TTL_HOURS", 12, time.Hour)
	if users := getEnvOrDefault("ALLOWED_USERS", ""); users != "" {
		for _, u := range strings.Split(users, ",") {
			if u = strings.TrimSpace(u); u != "" {
				cfg.Auth.AllowedUsers = append(cfg.Auth.AllowedUsers, u)
			}
		}
	}

	cfg.Backup.Interval = getDurationEnv("BACKUP_INTERVAL_MINUTES", 30, time.Minute)
	cfg.Backup.MaxSnapshots = getIntEnv("BACKUP_MAX_SNAPSHOTS", 20)
	cfg.Backup.Email = getEnvOrDefault("BACKUP_EMAIL", "")
	cfg.Backup.EmailEndpoint = getEnvOrDefault("BACKUP_EMAIL_ENDPOINT", "")

	cfg.VersionGate.Endpoint = getEnvOrDefault("VERSION_CHECK_ENDPOINT", "")

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
