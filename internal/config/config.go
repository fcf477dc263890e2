package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	StatsAPI StatsAPIConfig
	InfluxDB InfluxDBConfig
	Log      LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port       string
	Host       string
	GinMode    string
	SessionTTL time.Duration // Idle dashboard sessions are dropped after this long
}

// StatsAPIConfig holds connection details for the statistics backend
type StatsAPIConfig struct {
	URL       string
	Timeout   time.Duration
	Validate  bool // Validate response bodies against the embedded schemas
	TrendDays int  // Window used by the insights trend request
}

// InfluxDBConfig holds InfluxDB connection details for batch telemetry.
// Telemetry is disabled when URL is empty.
type InfluxDBConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// Enabled reports whether batch telemetry should be written
func (c InfluxDBConfig) Enabled() bool {
	return c.URL != ""
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Debug  bool
	Output string // stdout or stderr
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:       getEnv("PORT", "8085"),
			Host:       getEnv("HOST", "0.0.0.0"),
			GinMode:    getEnv("GIN_MODE", "release"),
			SessionTTL: getEnvDuration("SESSION_TTL", 30*time.Minute),
		},
		StatsAPI: StatsAPIConfig{
			URL:       strings.TrimSuffix(getEnv("STATS_API_URL", "http://localhost:5001"), "/"),
			Timeout:   getEnvDuration("STATS_API_TIMEOUT", 10*time.Second),
			Validate:  getEnvBool("STATS_API_VALIDATE", true),
			TrendDays: getEnvInt("TREND_DAYS", 14),
		},
		InfluxDB: InfluxDBConfig{
			URL:    getEnv("INFLUXDB2_URL", ""),
			Token:  getEnv("INFLUXDB2_TOKEN", ""),
			Org:    getEnv("INFLUXDB2_ORG", ""),
			Bucket: getEnv("INFLUXDB2_BUCKET", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Debug:  getEnvBool("LOG_DEBUG", false),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ValidateConfig validates that required configuration values are present
func ValidateConfig(config *Config) error {
	if config.StatsAPI.URL == "" {
		return fmt.Errorf("STATS_API_URL is required")
	}
	if config.StatsAPI.Timeout <= 0 {
		return fmt.Errorf("STATS_API_TIMEOUT must be positive")
	}
	if config.Server.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if config.StatsAPI.TrendDays <= 0 {
		return fmt.Errorf("TREND_DAYS must be positive")
	}
	// InfluxDB is optional, but once a URL is set the rest must follow
	if config.InfluxDB.Enabled() {
		if config.InfluxDB.Token == "" {
			return fmt.Errorf("INFLUXDB2_TOKEN is required when INFLUXDB2_URL is set")
		}
		if config.InfluxDB.Org == "" {
			return fmt.Errorf("INFLUXDB2_ORG is required when INFLUXDB2_URL is set")
		}
		if config.InfluxDB.Bucket == "" {
			return fmt.Errorf("INFLUXDB2_BUCKET is required when INFLUXDB2_URL is set")
		}
	}
	return nil
}

// Helper functions for environment variable access
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("15s") or bare seconds ("15")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
