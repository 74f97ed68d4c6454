package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Defaults are tuned for a LAN
// party: everything optional is off, and the game runs with no
// external services at all.
type Config struct {
	Port           string
	Environment    string
	AllowedOrigins []string
	Redis          RedisConfig
	Supplier       SupplierConfig
	Game           GameConfig
}

// RedisConfig points at the optional lookup-cache backend. An empty
// Host disables caching.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SupplierConfig configures the LLM content supplier. An empty APIKey
// selects the embedded catalog instead.
type SupplierConfig struct {
	APIKey      string
	APIURL      string
	Model       string
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
	CacheTTL    time.Duration
}

// GameConfig tunes content generation and the slot-number span.
type GameConfig struct {
	InitialBatch int
	BatchSize    int
	PoolTarget   int
	MaxSlot      int
	Languages    []string
}

// Load reads configuration from the environment, with a .env file
// merged in when present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Supplier: SupplierConfig{
			APIKey:      getEnv("SUPPLIER_API_KEY", ""),
			APIURL:      getEnv("SUPPLIER_API_URL", "https://api.openai.com/v1/chat/completions"),
			Model:       getEnv("SUPPLIER_MODEL", "gpt-4o-mini"),
			Timeout:     getEnvDuration("SUPPLIER_TIMEOUT", 60*time.Second),
			MaxAttempts: getEnvInt("SUPPLIER_MAX_ATTEMPTS", 3),
			Backoff:     getEnvDuration("SUPPLIER_BACKOFF", 500*time.Millisecond),
			CacheTTL:    getEnvDuration("SUPPLIER_CACHE_TTL", 24*time.Hour),
		},
		Game: GameConfig{
			InitialBatch: getEnvInt("GAME_INITIAL_BATCH", 3),
			BatchSize:    getEnvInt("GAME_BATCH_SIZE", 5),
			PoolTarget:   getEnvInt("GAME_POOL_TARGET", 50),
			MaxSlot:      getEnvInt("GAME_MAX_SLOT", 75),
			Languages:    splitList(getEnv("GAME_LANGUAGES", "")),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
