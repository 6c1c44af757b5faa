package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	envAddr  = "KVCACHE_ADDR"
	envLog   = "KVCACHE_LOG"
	envDebug = "KVCACHE_DEBUG"

	// DefaultAddr is the fixed port the cache server has always listened on.
	DefaultAddr = ":7379"
)

type Config struct {
	// Addr is the TCP address the cache server listens on and the MCP
	// front-end dials.
	Addr string
	// LogPath is where logs go. Empty means the binary's default.
	LogPath string
	Debug   bool
}

// Load reads .env from the working directory if it exists, then the
// environment. Variables already set in the environment win over .env.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit .env path.
func LoadFrom(envFile string) (Config, error) {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Addr:    defaultString(os.Getenv(envAddr), DefaultAddr),
		LogPath: os.Getenv(envLog),
	}
	if v := os.Getenv(envDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", envDebug, err)
		}
		cfg.Debug = b
	}
	return cfg, nil
}

func defaultString(v, d string) string {
	if v == "" {
		return d
	}
	return v
}
