// Package config loads the JSON settings file and applies environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	xdgAppName = "tasktrack"
	configFile = "config.json"

	DefaultAirtableTable = "Tasks"
	DefaultLogLevel      = "info"

	EnvAirtableAPIKey = "TASKTRACK_AIRTABLE_API_KEY"
	EnvAirtableBase   = "TASKTRACK_AIRTABLE_BASE"
)

type Airtable struct {
	BaseID string `json:"base_id,omitempty"`
	Table  string `json:"table,omitempty"`
	APIKey string `json:"api_key,omitempty"`
}

type Config struct {
	SheetURL      string   `json:"sheet_url,omitempty"`
	SpreadsheetID string   `json:"spreadsheet_id,omitempty"`
	SheetRange    string   `json:"sheet_range,omitempty"`
	Airtable      Airtable `json:"airtable"`
	LogLevel      string   `json:"log_level,omitempty"`
	LexiconFile   string   `json:"lexicon_file,omitempty"`
}

func Default() *Config {
	return &Config{
		Airtable: Airtable{Table: DefaultAirtableTable},
		LogLevel: DefaultLogLevel,
	}
}

// Dir returns the per-user directory holding config, tokens and ledgers.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	if cfg.Airtable.Table == "" {
		cfg.Airtable.Table = DefaultAirtableTable
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if v := strings.TrimSpace(os.Getenv(EnvAirtableAPIKey)); v != "" {
		cfg.Airtable.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAirtableBase)); v != "" {
		cfg.Airtable.BaseID = v
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

func SaveTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
