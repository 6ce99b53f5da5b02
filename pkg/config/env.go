// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvironmentConfig carries host-process settings that are not part of
// the simulation tuning surface: resource limits for the monitor and the
// demo loop's frame rate.
type EnvironmentConfig struct {
	MaxMemoryMB           int64
	MaxGoroutines         int
	ShutdownTimeout       time.Duration
	ResourceCheckInterval time.Duration
	FrameRate             int
}

// LoadConfigFromEnv builds an EnvironmentConfig from STARSHIP_* variables,
// falling back to safe defaults for anything unset.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	cfg := &EnvironmentConfig{
		MaxMemoryMB:           500,
		MaxGoroutines:         100,
		ShutdownTimeout:       30 * time.Second,
		ResourceCheckInterval: 10 * time.Second,
		FrameRate:             30,
	}

	var err error
	if cfg.MaxMemoryMB, err = getEnvInt64("STARSHIP_MAX_MEMORY_MB", cfg.MaxMemoryMB); err != nil {
		return nil, err
	}
	maxGoroutines, err := getEnvInt64("STARSHIP_MAX_GOROUTINES", int64(cfg.MaxGoroutines))
	if err != nil {
		return nil, err
	}
	cfg.MaxGoroutines = int(maxGoroutines)
	if cfg.ShutdownTimeout, err = getEnvDuration("STARSHIP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.ResourceCheckInterval, err = getEnvDuration("STARSHIP_RESOURCE_CHECK_INTERVAL", cfg.ResourceCheckInterval); err != nil {
		return nil, err
	}
	frameRate, err := getEnvInt64("STARSHIP_FRAME_RATE", int64(cfg.FrameRate))
	if err != nil {
		return nil, err
	}
	cfg.FrameRate = int(frameRate)

	if cfg.MaxMemoryMB <= 0 || cfg.MaxGoroutines <= 0 {
		return nil, fmt.Errorf("resource limits must be positive (memory %dMB, goroutines %d)",
			cfg.MaxMemoryMB, cfg.MaxGoroutines)
	}
	if cfg.FrameRate < 1 || cfg.FrameRate > 240 {
		return nil, fmt.Errorf("STARSHIP_FRAME_RATE must be in [1,240], got %d", cfg.FrameRate)
	}
	return cfg, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}
