package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
)

type Config struct {
	Language     string `json:"language"`
	DatabasePath string `json:"database_path"`
	PageRetries  int    `json:"page_retries"`
	PageDelayMs  int    `json:"page_delay_ms"`
	PathFile     string `json:"path_file"`
}

const (
	configDirName  = ".branchmate"
	configFileName = "config.json"
	databaseName   = "branchmate.db"

	defaultLang        = LangEN
	defaultPageRetries = 20
	defaultPageDelayMs = 500
)

// Keys accepted by Set.
const (
	KeyLanguage     = "language"
	KeyDatabasePath = "database_path"
	KeyPageRetries  = "page_retries"
	KeyPageDelayMs  = "page_delay_ms"
)

func Keys() []string {
	return []string{KeyLanguage, KeyDatabasePath, KeyPageRetries, KeyPageDelayMs}
}

// LoadConfig reads the configuration from path. A path ending in .json is used
// as is, otherwise it is treated as the home directory holding .branchmate.
// A missing file is created with defaults.
func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configPath = filepath.Join(path, configDirName, configFileName)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	} else if err != nil {
		return nil, domainErrors.ErrConfigMissing.WithError(err).WithContext("path", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, domainErrors.ErrConfigMissing.WithError(err).WithContext("path", configPath)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, domainErrors.ErrInvalidConfig.WithError(err).WithContext("path", configPath)
	}
	config.PathFile = configPath
	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{PathFile: path}
	applyDefaults(config)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, domainErrors.ErrConfigMissing.WithError(err).WithContext("path", path)
	}

	if err := write(config); err != nil {
		return nil, err
	}

	return config, nil
}

func applyDefaults(config *Config) {
	if config.Language == "" {
		config.Language = defaultLang
	}
	if config.DatabasePath == "" && config.PathFile != "" {
		config.DatabasePath = filepath.Join(filepath.Dir(config.PathFile), databaseName)
	}
	if config.PageRetries == 0 {
		config.PageRetries = defaultPageRetries
	}
	if config.PageDelayMs == 0 {
		config.PageDelayMs = defaultPageDelayMs
	}
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return err
	}

	if config.PathFile == "" {
		return domainErrors.ErrConfigMissing.WithContext("missing", "path_file")
	}

	return write(config)
}

func write(config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return domainErrors.ErrInvalidConfig.WithError(err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return domainErrors.ErrConfigMissing.WithError(err).WithContext("path", config.PathFile)
	}

	return nil
}

// Set assigns a single key from its textual value and validates the result.
func (c *Config) Set(key, value string) error {
	updated := *c

	switch key {
	case KeyLanguage:
		updated.Language = value
	case KeyDatabasePath:
		updated.DatabasePath = value
	case KeyPageRetries, KeyPageDelayMs:
		n, err := strconv.Atoi(value)
		if err != nil {
			return domainErrors.ErrInvalidConfig.WithError(err).WithContext("key", key)
		}
		if key == KeyPageRetries {
			updated.PageRetries = n
		} else {
			updated.PageDelayMs = n
		}
	default:
		return domainErrors.ErrInvalidConfig.
			WithContext("key", key).
			WithSuggestion(fmt.Sprintf("Valid keys are: %v", Keys()))
	}

	if err := validateConfig(&updated); err != nil {
		return err
	}

	*c = updated
	return nil
}

// PageDelay is the pause between readiness checks.
func (c *Config) PageDelay() time.Duration {
	return time.Duration(c.PageDelayMs) * time.Millisecond
}

func validateConfig(config *Config) error {
	if config.Language != LangEN && config.Language != LangES {
		return domainErrors.ErrInvalidConfig.WithContext("missing", "language must be en or es")
	}
	if config.PageRetries < 0 {
		return domainErrors.ErrInvalidConfig.WithContext("missing", "page_retries must not be negative")
	}
	if config.PageDelayMs <= 0 {
		return domainErrors.ErrInvalidConfig.WithContext("missing", "page_delay_ms must be greater than 0")
	}
	return nil
}
