package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	BookingAPIURL string
	APITimeout    time.Duration
	SessionSecret string
	StorePath     string
	RedisURL      string
	ServerPort    string
}

func Load() *Config {
	return &Config{
		BookingAPIURL: getEnv("BOOKING_API_URL", "http://localhost:8001"),
		APITimeout:    getDuration("BOOKING_API_TIMEOUT", 10*time.Second),
		SessionSecret: getEnv("SESSION_SECRET", "changeme"),
		StorePath:     getEnv("STORE_PATH", "westcutz_store.json"),
		RedisURL:      getEnv("REDIS_URL", ""),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

// UseRedis reports whether the key/value store should be backed by Redis
// instead of the local JSON file.
func (c *Config) UseRedis() bool {
	return c.RedisURL != ""
}
