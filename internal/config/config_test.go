package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		StandardDailyHours: 7.5,
		QuantizeUnit:       0.25,
		Holidays:           []string{"2024-12-25", "2025-01-01"},
		ClosureRules:       []string{"FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=29,30,31"},
		DatabaseURL:        "postgres://localhost/effort",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := &Config{
		StandardDailyHours: 7.5,
		QuantizeUnit:       0.25,
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_NonPositiveStandardHours(t *testing.T) {
	cfg := &Config{
		StandardDailyHours: -1,
		QuantizeUnit:       0.25,
		DatabaseURL:        "postgres://localhost/effort",
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestValidate_InvalidHolidayDate(t *testing.T) {
	cfg := &Config{
		StandardDailyHours: 7.5,
		QuantizeUnit:       0.25,
		Holidays:           []string{"25/12/2024"},
		DatabaseURL:        "postgres://localhost/effort",
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := &Config{
		StandardDailyHours: 7.5,
		QuantizeUnit:       0.25,
		ClosureRules:       []string{"INVALID_RRULE_SYNTAX"},
		DatabaseURL:        "postgres://localhost/effort",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "closureRules[0]")
}

func TestLoadFromPath_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	content := "databaseURL: postgres://localhost/effort\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultStandardDailyHours, cfg.StandardDailyHours)
	assert.Equal(t, DefaultQuantizeUnit, cfg.QuantizeUnit)
}

func TestLoadFromPath_FullConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	content := `standardDailyHours: 8
quantizeUnit: 0.5
holidays:
  - "2024-12-25"
closureRules:
  - "FREQ=WEEKLY;BYDAY=WE"
databaseURL: postgres://localhost/effort
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 8.0, cfg.StandardDailyHours)
	assert.Equal(t, 0.5, cfg.QuantizeUnit)

	dates, err := cfg.HolidayDates()
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), dates[0])

	rules, err := cfg.ClosureRRules()
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
