package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultStandardDailyHours is the organization-wide full-day capacity
	// before rate and absence adjustments
	DefaultStandardDailyHours = 7.5

	// DefaultQuantizeUnit is the rounding unit for monthly apportionment
	DefaultQuantizeUnit = 0.25

	configFileName = "effort_engine_config.yaml"
	dateLayout     = "2006-01-02"
)

// Config represents the application configuration
type Config struct {
	// StandardDailyHours is the full-day baseline; defaults to 7.5
	StandardDailyHours float64 `yaml:"standardDailyHours,omitempty" validate:"omitempty,gt=0"`

	// QuantizeUnit is the apportionment rounding unit; defaults to 0.25
	QuantizeUnit float64 `yaml:"quantizeUnit,omitempty" validate:"omitempty,gt=0"`

	// Holidays are fixed company holidays as YYYY-MM-DD dates
	Holidays []string `yaml:"holidays,omitempty" validate:"dive,datetime=2006-01-02"`

	// ClosureRules are rrule strings for recurring company closures
	// (e.g. "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=29,30,31")
	ClosureRules []string `yaml:"closureRules,omitempty"`

	// DatabaseURL is the PostgreSQL connection string
	DatabaseURL string `yaml:"databaseURL" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from effort_engine_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.ClosureRules {
		if _, err := rrule.StrToRRule(rule); err != nil {
			return fmt.Errorf("invalid rrule in closureRules[%d]: %w", i, err)
		}
	}

	return nil
}

// HolidayDates returns the configured holidays as normalized dates
func (c *Config) HolidayDates() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(c.Holidays))
	for i, h := range c.Holidays {
		d, err := time.ParseInLocation(dateLayout, h, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date in holidays[%d]: %w", i, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// ClosureRRules returns the configured closure rules parsed into rrules
func (c *Config) ClosureRRules() ([]*rrule.RRule, error) {
	rules := make([]*rrule.RRule, 0, len(c.ClosureRules))
	for i, raw := range c.ClosureRules {
		r, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in closureRules[%d]: %w", i, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func applyDefaults(cfg *Config) {
	if cfg.StandardDailyHours == 0 {
		cfg.StandardDailyHours = DefaultStandardDailyHours
	}
	if cfg.QuantizeUnit == 0 {
		cfg.QuantizeUnit = DefaultQuantizeUnit
	}
}

// findConfigFile searches for the config file in the current directory and
// the home directory
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
