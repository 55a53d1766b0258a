package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	APIHost string

	RequestTimeout time.Duration
	AdultAge       int

	DevMode bool
}

func FromEnv() (Config, error) {
	cfg := Config{
		APIHost: strings.TrimSpace(os.Getenv("PVB_API_HOST")),
		DevMode: strings.TrimSpace(os.Getenv("DEV_MODE")) == "1",
	}
	if cfg.APIHost == "" {
		return cfg, fmt.Errorf("PVB_API_HOST is required")
	}

	var err error
	cfg.RequestTimeout, err = envDuration("PVB_TIMEOUT", 3*time.Second)
	if err != nil {
		return cfg, err
	}
	cfg.AdultAge, err = envInt("PVB_ADULT_AGE", 18)
	if err != nil {
		return cfg, err
	}
	if cfg.AdultAge <= 0 {
		return cfg, fmt.Errorf("PVB_ADULT_AGE must be positive (got %d)", cfg.AdultAge)
	}
	return cfg, nil
}

func envDuration(k string, d time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 3s: %w", k, err)
	}
	return parsed, nil
}

func envInt(k string, d int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", k, err)
	}
	return parsed, nil
}
