package config

import (
	"log"
	"os"
	"strconv"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	Port string

	GCPProjectID string
	GCPLocation  string
	ModelName    string

	StorageBackend string // "memory", "firestore", "redis" or "sqlite"
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SQLitePath     string

	UseMockLLM bool // true = use mock even on GCP
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, v)
	}
	return n
}

// Load reads all env vars and builds the config.
func Load() *Config {
	modeStr := getEnv("CAREBOT_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		Port: getEnv("CAREBOT_PORT", "8080"),

		GCPProjectID: getEnv("CAREBOT_GCP_PROJECT", ""),
		GCPLocation:  getEnv("CAREBOT_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("CAREBOT_MODEL_NAME", "gemini-2.5-flash"),

		StorageBackend: getEnv("CAREBOT_STORAGE_BACKEND", "memory"),
		RedisAddr:      getEnv("CAREBOT_REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("CAREBOT_REDIS_PASSWORD", ""),
		RedisDB:        getIntEnv("CAREBOT_REDIS_DB", 0),
		SQLitePath:     getEnv("CAREBOT_SQLITE_PATH", "carebot.db"),

		UseMockLLM: getBoolEnv("CAREBOT_USE_MOCK_LLM", mode == ModeLocal),
	}

	switch cfg.StorageBackend {
	case "memory", "firestore", "redis", "sqlite":
	default:
		log.Fatalf("unknown CAREBOT_STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" {
		log.Fatal("CAREBOT_GCP_PROJECT must be set in gcp mode")
	}
	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		log.Fatal("CAREBOT_GCP_PROJECT must be set for the firestore backend")
	}

	return cfg
}
