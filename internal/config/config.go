package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store backend names accepted in STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type Config struct {
	// HTTP Server
	Port string

	// Store backend: "memory" or "sqlite"
	StoreBackend string
	SQLiteDBPath string

	// Seed the store with the demo expense set on startup (memory backend).
	SeedDemoData bool

	// AMQP (optional; empty URL disables change events)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror (worker; optional)
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Rate limiting for mutating requests, per client IP.
	RateLimitPerMinute int
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		StoreBackend: getEnv("STORE_BACKEND", BackendMemory),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/splitledger.db"),
		SeedDemoData: getEnvBool("SEED_DEMO_DATA", false),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "splitledger"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_changes"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Ledger"),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}
}

// Validate checks the configuration and returns all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid store backend '%s': must be one of [memory sqlite]", c.StoreBackend))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.GoogleSpreadsheetID != "" && c.GoogleSheetName == "" {
		errs = append(errs, "Google sheet name cannot be empty when a spreadsheet ID is provided")
	}

	if c.RateLimitPerMinute < 1 {
		errs = append(errs, fmt.Sprintf("invalid rate limit %d: must be at least 1 per minute", c.RateLimitPerMinute))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
