package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config carries converter defaults. Command-line flags override every field
// that has one.
type Config struct {
	PrefabRoot        string
	TextureMode       string
	PlaceholderPrefix string
	ExpandPrefabs     bool
	RemoveToolBrushes bool
	WorkerCount       int
	MaxPrefabDepth    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	return &Config{
		PrefabRoot:        getEnv("PREFAB_ROOT", ""),
		TextureMode:       getEnv("TEXTURE_MODE", "caulk_all"),
		PlaceholderPrefix: getEnv("PLACEHOLDER_PREFIX", "placeholder"),
		ExpandPrefabs:     getEnvBool("EXPAND_PREFABS", false),
		RemoveToolBrushes: getEnvBool("REMOVE_TOOL_BRUSHES", false),
		WorkerCount:       getEnvInt("WORKER_COUNT", 8),
		MaxPrefabDepth:    getEnvInt("MAX_PREFAB_DEPTH", 5),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
