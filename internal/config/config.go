// Package config loads the planner's YAML configuration with sensible
// defaults, so a missing or partially-filled config file still behaves.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// FestivalLabel is the human-friendly date range shown in headers.
	FestivalLabel string `yaml:"festival_label"`

	// Timezone is the festival's fixed IANA timezone. All now/next
	// resolution and calendar export happen in this zone, independent of
	// the viewer's locale.
	Timezone string `yaml:"timezone"`

	// Schedule sources, in resolver priority order.
	LocalJSONPath string `yaml:"local_json_path"`
	LocalCSVPath  string `yaml:"local_csv_path"`
	RemoteCSVURL  string `yaml:"remote_csv_url"`

	// DayDates maps the festival's known day labels to ISO dates, used to
	// infer a missing date column.
	DayDates map[string]string `yaml:"day_dates"`

	// ExpectedSessions, when positive, enables the normalizer's
	// count-drift warning. Update it together with the published sheet.
	ExpectedSessions int `yaml:"expected_sessions"`

	// DataDir holds the persisted local state (saved plan, cache, flags).
	DataDir string `yaml:"data_dir"`
}

// Default returns the in-memory default configuration.
func Default() *Config {
	return &Config{
		FestivalLabel: "Feb 13–15, 2026",
		Timezone:      "Asia/Kolkata",
		LocalJSONPath: "schedule.json",
		LocalCSVPath:  "schedule_extracted.csv",
		RemoteCSVURL:  "https://docs.google.com/spreadsheets/d/1Yw24ECctBPCMWJejqsEB41XYBx0d8wJGAl2MNSuCyeI/gviz/tq?tqx=out:csv",
		DayDates: map[string]string{
			"friday":   "2026-02-13",
			"saturday": "2026-02-14",
			"sunday":   "2026-02-15",
		},
		ExpectedSessions: 0,
		DataDir:          "~/.local/share/festplan",
	}
}

// Load reads the configuration from path. An empty path or a missing file
// yields the defaults; a present file is parsed and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var conf Config
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	conf.Normalize()
	return &conf, nil
}

// Normalize fills in missing/zero values with defaults so that partial
// configs still behave correctly.
func (c *Config) Normalize() {
	def := Default()
	if c.FestivalLabel == "" {
		c.FestivalLabel = def.FestivalLabel
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.LocalJSONPath == "" {
		c.LocalJSONPath = def.LocalJSONPath
	}
	if c.LocalCSVPath == "" {
		c.LocalCSVPath = def.LocalCSVPath
	}
	if c.RemoteCSVURL == "" {
		c.RemoteCSVURL = def.RemoteCSVURL
	}
	if len(c.DayDates) == 0 {
		c.DayDates = def.DayDates
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
