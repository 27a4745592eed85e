// Package config provides configuration loading and defaults for gameshelf.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ResourceFilter holds allowlist and denylist entries for a resource category.
type ResourceFilter struct {
	Allowlist []string `yaml:"allowlist"`
	Denylist  []string `yaml:"denylist"`
}

// SafetyConfig groups resource filters. Games are matched by title.
type SafetyConfig struct {
	Games ResourceFilter `yaml:"games"`
}

// AuditConfig controls audit logging behaviour. When MaxSizeMB is positive
// the audit file is rotated once it reaches that size.
type AuditConfig struct {
	Enabled    bool   `yaml:"enabled"`
	LogPath    string `yaml:"log_path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// ServerConfig holds network and authentication settings for the MCP server.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	AuthToken string `yaml:"auth_token"`
}

// GraphQLConfig holds connection details for the games GraphQL API.
type GraphQLConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	// Timeout is the HTTP request timeout in seconds.
	Timeout int               `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

// LogFileConfig configures the rotating log file. An empty Path means
// logs go to stderr.
type LogFileConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is either console or json.
	Format string        `yaml:"format"`
	File   LogFileConfig `yaml:"file"`
}

// UIConfig holds terminal client preferences.
type UIConfig struct {
	// ClearFormOnAdd resets the add-game draft after a successful add.
	ClearFormOnAdd bool `yaml:"clear_form_on_add"`
	// Theme is light or dark.
	Theme string `yaml:"theme"`
}

// Config is the top-level configuration structure for gameshelf.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	GraphQL GraphQLConfig `yaml:"graphql"`
	Safety  SafetyConfig  `yaml:"safety"`
	Audit   AuditConfig   `yaml:"audit"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"console": true, "json": true}
	validThemes  = map[string]bool{"": true, "light": true, "dark": true}
)

// LoadConfig reads and parses a YAML configuration file from the given path.
// The file is decoded on top of DefaultConfig, so keys absent from the file
// keep their default values. On error, nil is returned for the config pointer.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a new Config populated with sensible default values.
// Each call returns a distinct instance.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		GraphQL: GraphQLConfig{
			URL:     "http://localhost:4000/graphql",
			Timeout: 30,
		},
		Audit: AuditConfig{
			Enabled:    false,
			LogPath:    "gameshelf-audit.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// Validate reports every problem found in cfg, joined into a single error.
func (c *Config) Validate() error {
	var errs []error
	if c.GraphQL.URL == "" {
		errs = append(errs, errors.New("graphql.url is required"))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level %q: must be debug, info, warn or error", c.Log.Level))
	}
	if !validFormats[c.Log.Format] {
		errs = append(errs, fmt.Errorf("log.format %q: must be console or json", c.Log.Format))
	}
	if !validThemes[c.UI.Theme] {
		errs = append(errs, fmt.Errorf("ui.theme %q: must be light or dark", c.UI.Theme))
	}
	if c.Audit.Enabled && c.Audit.LogPath == "" {
		errs = append(errs, errors.New("audit.log_path is required when audit is enabled"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ApplyEnvOverrides updates cfg in place with values from environment variables.
// Recognized variables:
//   - GAMESHELF_AUTH_TOKEN overrides cfg.Server.AuthToken
//   - GAMESHELF_GRAPHQL_URL overrides cfg.GraphQL.URL
//   - GAMESHELF_GRAPHQL_API_KEY overrides cfg.GraphQL.APIKey
//   - GAMESHELF_LOG_LEVEL overrides cfg.Log.Level
func ApplyEnvOverrides(cfg *Config) {
	if token := os.Getenv("GAMESHELF_AUTH_TOKEN"); token != "" {
		cfg.Server.AuthToken = token
	}
	if url := os.Getenv("GAMESHELF_GRAPHQL_URL"); url != "" {
		cfg.GraphQL.URL = url
	}
	if key := os.Getenv("GAMESHELF_GRAPHQL_API_KEY"); key != "" {
		cfg.GraphQL.APIKey = key
	}
	if level := os.Getenv("GAMESHELF_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
}

// EnsureAuthToken generates a random auth token and sets it on cfg if
// cfg.Server.AuthToken is empty. It returns the token (existing or generated)
// and any error encountered during generation.
func EnsureAuthToken(cfg *Config) (string, error) {
	if cfg.Server.AuthToken != "" {
		return cfg.Server.AuthToken, nil
	}
	token, err := GenerateRandomToken()
	if err != nil {
		return "", fmt.Errorf("generate auth token: %w", err)
	}
	cfg.Server.AuthToken = token
	return token, nil
}

// GenerateRandomToken returns a 32-character hex-encoded cryptographically
// random token string.
func GenerateRandomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return hex.EncodeToString(b), nil
}
