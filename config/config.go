package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything read from the environment at startup.
type Config struct {
	ListenAddr      string
	SupabaseURL     string
	SupabaseKey     string
	GatewayTimeout  time.Duration
	DuplicatePolicy string
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present but not required.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseKey:     os.Getenv("SUPABASE_ANON_KEY"),
		DuplicatePolicy: getEnv("DUPLICATE_POLICY", "ignore"),
	}

	if cfg.SupabaseURL == "" {
		return Config{}, fmt.Errorf("SUPABASE_URL must be set")
	}
	if cfg.SupabaseKey == "" {
		return Config{}, fmt.Errorf("SUPABASE_ANON_KEY must be set")
	}

	raw := getEnv("GATEWAY_TIMEOUT_SECONDS", "15")
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return Config{}, fmt.Errorf("invalid GATEWAY_TIMEOUT_SECONDS %q", raw)
	}
	cfg.GatewayTimeout = time.Duration(seconds) * time.Second

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
