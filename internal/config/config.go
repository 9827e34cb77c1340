package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	EONETBaseURL    string
	EONETTimeout    time.Duration // 0 disables the client timeout
	FetchWindowDays int
	RefreshInterval time.Duration
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka feed export configuration.
	KafkaExportEnabled bool
	KafkaBrokers       []string
	KafkaExportTopic   string
}

const defaultBaseURL = "https://eonet.gsfc.nasa.gov/api/v3"

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	eonetTimeout, err := parseDurationEnv("EONET_TIMEOUT", "0s", true)
	if err != nil {
		return nil, err
	}

	refreshInterval, err := parseDurationEnv("REFRESH_INTERVAL", "5m", false)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s", false)
	if err != nil {
		return nil, err
	}

	windowDays, err := parseIntEnv("FETCH_WINDOW_DAYS", 365)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		EONETBaseURL:    strings.TrimRight(envOrDefault("EONET_BASE_URL", defaultBaseURL), "/"),
		EONETTimeout:    eonetTimeout,
		FetchWindowDays: windowDays,
		RefreshInterval: refreshInterval,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaExportEnabled: os.Getenv("KAFKA_EXPORT_ENABLED") == "true",
		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaExportTopic:   envOrDefault("KAFKA_EXPORT_TOPIC", "eonet-events"),
	}

	if cfg.EONETBaseURL == "" {
		return nil, errors.New("EONET_BASE_URL is required")
	}
	if cfg.KafkaExportEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_EXPORT_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaExportTopic == "" {
			return nil, errors.New("KAFKA_EXPORT_ENABLED is true but KAFKA_EXPORT_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseDurationEnv parses a duration variable. allowZero permits "0" for
// settings where zero means "disabled" (the EONET client timeout).
func parseDurationEnv(key, def string, allowZero bool) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
