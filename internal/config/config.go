package config

import (
	"os"
	"time"
)

type PrefsBackend string

const (
	BackendFirestore PrefsBackend = "firestore"
	BackendRedis     PrefsBackend = "redis"
	BackendMemory    PrefsBackend = "memory"
)

type Config struct {
	ProjectID       string
	Region          string
	LogLevel        string
	Port            string
	PrefsBackend    PrefsBackend
	RedisURL        string
	PrefsNamespace  string
	PrefsCollection string
	SessionIdle     time.Duration
}

func New() *Config {
	return &Config{
		ProjectID:       os.Getenv("PROJECTID"),
		Region:          os.Getenv("REGION"),
		LogLevel:        os.Getenv("LOGLEVEL"),
		Port:            getOr("PORT", "8080"),
		PrefsBackend:    getPrefsBackend(os.Getenv("PREFSBACKEND")),
		RedisURL:        os.Getenv("REDISURL"),
		PrefsNamespace:  getOr("PREFSNAMESPACE", "dashboardLayout"),
		PrefsCollection: getOr("PREFSCOLLECTION", "dashboard_layouts"),
		SessionIdle:     getDuration("SESSIONIDLE", 30*time.Minute),
	}
}

func getPrefsBackend(v string) PrefsBackend {
	switch v {
	case "redis":
		return BackendRedis
	case "memory":
		return BackendMemory
	default: // "firestore"
		return BackendFirestore
	}
}

func getOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
