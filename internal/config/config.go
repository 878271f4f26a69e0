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
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// GRIB file fetch configuration.
	FetchEnabled   bool
	FetchTimeout   time.Duration
	FetchMaxBytes  int64
	FetchCacheSize int
	FetchUserAgent string
}

const (
	maxBatchSize = 1000

	// defaultFetchMaxBytes caps a single GRIB download. Full-resolution
	// model runs reach a few hundred MB; anything larger is suspect.
	defaultFetchMaxBytes = 512 << 20
)

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	batchSize, err := parseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := parseDurationEnv("BATCH_FLUSH_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDurationEnv("FETCH_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	fetchMaxBytes, err := parseFetchMaxBytes()
	if err != nil {
		return nil, err
	}

	fetchEnabled := true
	if v := os.Getenv("FETCH_ENABLED"); v != "" {
		fetchEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   envOrDefault("KAFKA_SOURCE_TOPIC", "raw-grib-files"),
		KafkaSinkTopic:     envOrDefault("KAFKA_SINK_TOPIC", "grib-scan-reports"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "grib-scan-etl"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		FetchEnabled:   fetchEnabled,
		FetchTimeout:   fetchTimeout,
		FetchMaxBytes:  fetchMaxBytes,
		FetchCacheSize: parseFetchCacheSize(),
		FetchUserAgent: envOrDefault("FETCH_USER_AGENT", "grib-scan-etl/1.0"),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

// envOrDefault returns the environment variable's value, or fallback when unset.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseBatchSize() (int, error) {
	s := os.Getenv("BATCH_SIZE")
	if s == "" {
		return 50, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > maxBatchSize {
		return 0, fmt.Errorf("invalid BATCH_SIZE: %q (must be 1-%d)", s, maxBatchSize)
	}
	return n, nil
}

func parseFetchMaxBytes() (int64, error) {
	s := os.Getenv("FETCH_MAX_BYTES")
	if s == "" {
		return defaultFetchMaxBytes, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid FETCH_MAX_BYTES: %q", s)
	}
	return n, nil
}

func parseFetchCacheSize() int {
	if s := os.Getenv("FETCH_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	// Whole files are cached, so keep the default small.
	return 8
}
