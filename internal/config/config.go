package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	AI        AIConfig
	Schedule  ScheduleConfig
	Inventory InventoryConfig
	Budget    BudgetConfig
	Auth      AuthConfig
	Sheets    SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AIConfig holds settings for LLM providers.
type AIConfig struct {
	AnthropicKey string
}

// ScheduleConfig holds the canonical week settings used for grouping and
// persisting weekly schedules.
type ScheduleConfig struct {
	// WeekAnchor is the weekday a scheduling week starts on (0=Sunday..6=Saturday).
	WeekAnchor time.Weekday
}

// InventoryConfig holds stock classification settings.
type InventoryConfig struct {
	OverstockMultiplier float64
}

// BudgetConfig holds the weekly budget rollover settings.
type BudgetConfig struct {
	RolloverCron string
	Timezone     string
}

// AuthConfig holds session settings.
type AuthConfig struct {
	SessionTTL       time.Duration
	SeedDefaultAdmin bool
}

// SheetsConfig contains configuration for the optional shipment order export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	anchor, err := parseWeekday(getenvWithDefault("SCHEDULE_WEEK_ANCHOR", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_WEEK_ANCHOR: %w", err)
	}

	multiplier, err := strconv.ParseFloat(getenvWithDefault("OVERSTOCK_MULTIPLIER", "3"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OVERSTOCK_MULTIPLIER: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getenvWithDefault("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "tacovision"),
		},
		AI: AIConfig{
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
		Schedule: ScheduleConfig{
			WeekAnchor: anchor,
		},
		Inventory: InventoryConfig{
			OverstockMultiplier: multiplier,
		},
		Budget: BudgetConfig{
			RolloverCron: getenvWithDefault("BUDGET_ROLLOVER_CRON", "0 0 * * 3"),
			Timezone:     getenvWithDefault("TIMEZONE", "America/Chicago"),
		},
		Auth: AuthConfig{
			SessionTTL:       sessionTTL,
			SeedDefaultAdmin: getenvWithDefault("SEED_DEFAULT_ADMIN", "false") == "true",
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Inventory.OverstockMultiplier <= 0 {
		return errors.New("OVERSTOCK_MULTIPLIER must be positive")
	}

	if c.Budget.RolloverCron == "" {
		return errors.New("BUDGET_ROLLOVER_CRON must be provided")
	}

	if c.Budget.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.Auth.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}

	// The sheets export is optional, but half a configuration is a mistake.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_EXPORT_ID must be set together")
	}

	return nil
}

func parseWeekday(value string) (time.Weekday, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 6 {
		return 0, fmt.Errorf("weekday %d out of range 0-6", n)
	}
	return time.Weekday(n), nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
