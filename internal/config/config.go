// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment variables.
type Config struct {
	// Inputs
	ResumePath     string `json:"resume_path,omitempty"`     // Path to resume text file (CLI analyze)
	JobDescription string `json:"job_description,omitempty"` // Inline job description text
	JobURL         string `json:"job_url,omitempty"`         // URL to fetch a job posting from
	TargetRole     string `json:"target_role,omitempty"`     // Role ID from the role catalog

	// Services
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	StorageURL  string `json:"storage_url,omitempty"`  // File-storage service base URL

	// Behavior
	BaselineLevel int  `json:"baseline_level,omitempty"` // Assumed level for extracted skills (0-100)
	Verbose       bool `json:"verbose,omitempty"`        // Print detailed output
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.JobDescription != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job_description' and 'job_url' are mutually exclusive")
	}

	if c.BaselineLevel < 0 || c.BaselineLevel > 100 {
		return fmt.Errorf("config error: 'baseline_level' must be in [0, 100]")
	}

	if c.ResumePath != "" {
		if _, err := os.Stat(c.ResumePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.ResumePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ResumePath == "" {
		result.ResumePath = defaults.ResumePath
	}
	if result.JobDescription == "" {
		result.JobDescription = defaults.JobDescription
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.TargetRole == "" {
		result.TargetRole = defaults.TargetRole
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.StorageURL == "" {
		result.StorageURL = defaults.StorageURL
	}

	if result.BaselineLevel == 0 {
		if defaults.BaselineLevel > 0 {
			result.BaselineLevel = defaults.BaselineLevel
		} else {
			result.BaselineLevel = 50 // default assumed proficiency
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge.

	return result
}
