package config

import (
	"os"
	"time"
)

// getEnvString returns the value of the environment variable if set,
// otherwise the fallback.
func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvDuration returns the duration value of the environment variable if
// set and valid, otherwise the fallback.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
