package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingTokenKey = errors.New("TOKEN_KEY environment variable is not set")

type Config struct {
	Addr            string
	TLSCert         string
	TLSKey          string
	DatabaseURL     string
	TokenKey        []byte
	RateLimit       float64
	RateBurst       int
	ShutdownTimeout time.Duration
	LogLevel        string
	LogFormat       string
}

// Load reads an optional .env file (or the given files) into the process
// environment, then builds the Config from it. Variables already set in the
// environment win over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Config{
		Addr:        getenv("ADDR", ":8443"),
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TokenKey:    []byte(os.Getenv("TOKEN_KEY")),
		LogLevel:    getenv("LOG_LEVEL", "INFO"),
		LogFormat:   getenv("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.RateLimit, err = strconv.ParseFloat(getenv("RATE_LIMIT", "1"), 64); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT: %w", err)
	}
	if cfg.RateBurst, err = strconv.Atoi(getenv("RATE_BURST", "3")); err != nil {
		return Config{}, fmt.Errorf("RATE_BURST: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getenv("SHUTDOWN_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings the HTTP server cannot start without.
func (c Config) Validate() error {
	if len(c.TokenKey) == 0 {
		return ErrMissingTokenKey
	}
	return nil
}

func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
