package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting of the bot process
type Config struct {
	DiscordToken  string
	ApplicationID string
	GuildID       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// APIURL is the base URL of the LMS API
	APIURL     string
	APITimeout time.Duration

	HTTPPort int

	// WatchInterval is how often watched competitions are checked
	WatchInterval time.Duration

	// SnapshotTTL is how long a fetched competition is served from cache
	SnapshotTTL time.Duration

	LogLevel    slog.Level
	CORSOrigins []string
}

// Load reads the configuration from the environment, after loading a .env
// file if one exists. Variables already set take precedence over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),
		ApplicationID: os.Getenv("APPLICATION_ID"),
		GuildID:       os.Getenv("GUILD_ID"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		APIURL:        strings.TrimRight(os.Getenv("LASTMAN_API_URL"), "/"),
		CORSOrigins:   splitList(os.Getenv("CORS_ORIGINS")),
	}

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN environment variable is not set")
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("LASTMAN_API_URL environment variable is not set")
	}
	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("LASTMAN_API_URL must be an http or https URL, got %q", cfg.APIURL)
	}

	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RedisDB < 0 {
		return nil, fmt.Errorf("REDIS_DB must not be negative, got %d", cfg.RedisDB)
	}

	if cfg.HTTPPort, err = intEnv("HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", cfg.HTTPPort)
	}

	if cfg.APITimeout, err = durationEnv("API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.WatchInterval, err = durationEnv("WATCH_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.WatchInterval < 10*time.Second {
		return nil, fmt.Errorf("WATCH_INTERVAL must be at least 10s, got %s", cfg.WatchInterval)
	}
	if cfg.SnapshotTTL, err = durationEnv("SNAPSHOT_TTL", 30*time.Second); err != nil {
		return nil, err
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
		}
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
