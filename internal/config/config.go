package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the hosting configuration of the predictor server
type Config struct {
	Port            string
	ArtifactPath    string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	SlowRequest     time.Duration
	Log             LogConfig
}

// LogConfig configures internal/logger
type LogConfig struct {
	Level       string
	OTELEnabled bool
	ServiceName string
	SampleRate  int
}

// Load reads configuration from the environment
// Variables from envFiles (default ".env") fill in anything not already set;
// a missing file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		ArtifactPath: getEnv("ARTIFACT_PATH", "artifacts/hypertension.json"),
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "INFO"),
			OTELEnabled: strings.EqualFold(os.Getenv("OTEL_ENABLED"), "true"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "hypertension-predictor"),
		},
	}

	var err error
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.SlowRequest, err = getDuration("SLOW_REQUEST_THRESHOLD", time.Second); err != nil {
		return nil, err
	}

	rate := getEnv("ERROR_SAMPLE_RATE", "1")
	cfg.Log.SampleRate, err = strconv.Atoi(rate)
	if err != nil || cfg.Log.SampleRate < 1 {
		return nil, fmt.Errorf("ERROR_SAMPLE_RATE must be a positive integer, got %q", rate)
	}

	return cfg, nil
}

// Addr returns the listen address for Port
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, value)
	}
	return d, nil
}
