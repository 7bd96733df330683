package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the optional file-based configuration for cargo-easydep.
// Everything here can also be set per-run via flags or environment
// variables; the file mainly carries the exclude list.
type Config struct {
	// MinOccurrences overrides the default promotion threshold.
	MinOccurrences int `yaml:"min_occurrences"`

	// Exclude lists dependency names that are never promoted, e.g.
	// crates whose requirements intentionally diverge across members.
	Exclude []string `yaml:"exclude"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads and parses a configuration file, expanding environment
// variables in the exclude entries.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	for i := range cfg.Exclude {
		cfg.Exclude[i] = expandEnv(cfg.Exclude[i])
	}

	if validateErr := validate(&cfg); validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".easydep.yaml",
		".easydep.yml",
		"easydep.yaml",
		"easydep.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// expandEnv expands ${ENV_VAR} references.
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// validate checks for invalid configuration values.
func validate(cfg *Config) error {
	if cfg.MinOccurrences < 0 {
		return fmt.Errorf("min_occurrences must be positive, got %d", cfg.MinOccurrences)
	}
	for i, name := range cfg.Exclude {
		if name == "" {
			return fmt.Errorf("exclude[%d] is empty", i)
		}
	}
	return nil
}
