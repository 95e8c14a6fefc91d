// Package config provides YAML configuration parsing for mcwatch.
//
// This package enables running mcwatch as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	server: play.example.com:19132
//	server_type: bedrock
//	check_interval: 5m
//	offline_threshold: 2
//	webhook_url: ${DISCORD_WEBHOOK_URL:-}
//	state_path: /var/lib/mcwatch/state.json
package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/philipovic/mcwatch"
)

// minCheckInterval is the minimum allowed polling interval. This prevents
// accidental hammering of the public status API, which caches results and
// rate-limits aggressive clients.
const minCheckInterval = 1 * time.Second

// Config is the root configuration structure for mcwatch.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Server is the game server address to monitor (host or host:port).
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}.
	// Required.
	Server string `yaml:"server"`

	// ServerType is the monitored edition: "java" or "bedrock".
	// Defaults to "bedrock".
	ServerType string `yaml:"server_type"`

	// CheckInterval is the time between poll cycles.
	// Accepts duration strings like "30s", "5m". Defaults to 5m.
	CheckInterval Duration `yaml:"check_interval"`

	// OfflineThreshold is how many consecutive offline-or-failed polls are
	// required before the server is confirmed offline. Defaults to 2.
	OfflineThreshold int `yaml:"offline_threshold"`

	// RequestTimeout bounds each status API request. Defaults to 10s.
	RequestTimeout Duration `yaml:"request_timeout"`

	// WebhookURL is the chat webhook notifications are posted to.
	// Supports environment variable substitution. When empty, notifications
	// are printed to stdout with a timestamp prefix.
	WebhookURL string `yaml:"webhook_url"`

	// StatePath is where the confirmed state is persisted across restarts.
	// Defaults to "mcwatch_state.json".
	StatePath string `yaml:"state_path"`

	// StatusPort enables the HTTP status endpoint on the given port.
	// Zero (the default) disables the endpoint.
	StatusPort int `yaml:"status_port"`

	// APIBaseURL overrides the status API base URL. Defaults to the public
	// mcsrvstat.us instance.
	APIBaseURL string `yaml:"api_base_url"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		// submatches[2] is ":-..." (non-empty if default syntax was used)
		// submatches[3] is the actual default value (may be empty for ${VAR:-})
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in the Server and WebhookURL values.
// Defaults are applied for ServerType (bedrock), CheckInterval (5m),
// OfflineThreshold (2), RequestTimeout (10s) and StatePath
// ("mcwatch_state.json").
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.ServerType == "" {
		cfg.ServerType = string(mcwatch.ServerTypeBedrock)
	}
	if cfg.CheckInterval == 0 {
		cfg.CheckInterval = Duration(5 * time.Minute)
	}
	if cfg.OfflineThreshold == 0 {
		cfg.OfflineThreshold = 2
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = Duration(10 * time.Second)
	}
	if cfg.StatePath == "" {
		cfg.StatePath = "mcwatch_state.json"
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Server == "" {
		return fmt.Errorf("server is required")
	}
	expanded, err := expandEnvVars(c.Server)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	c.Server = expanded

	switch strings.ToLower(c.ServerType) {
	case string(mcwatch.ServerTypeBedrock), string(mcwatch.ServerTypeJava):
		c.ServerType = strings.ToLower(c.ServerType)
	default:
		return fmt.Errorf("server_type must be %q or %q, got %q",
			mcwatch.ServerTypeJava, mcwatch.ServerTypeBedrock, c.ServerType)
	}

	if c.CheckInterval.Duration() < minCheckInterval {
		return fmt.Errorf("check_interval must be at least %s, got %s", minCheckInterval, c.CheckInterval.Duration())
	}

	if c.OfflineThreshold < 1 {
		return fmt.Errorf("offline_threshold must be at least 1, got %d", c.OfflineThreshold)
	}

	if c.RequestTimeout.Duration() <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout.Duration())
	}

	if c.WebhookURL != "" {
		expanded, err := expandEnvVars(c.WebhookURL)
		if err != nil {
			return fmt.Errorf("webhook_url: %w", err)
		}
		c.WebhookURL = expanded
	}
	if c.WebhookURL != "" {
		parsed, err := url.Parse(c.WebhookURL)
		if err != nil {
			return fmt.Errorf("invalid webhook_url: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("webhook_url scheme must be http or https, got %q", parsed.Scheme)
		}
	}

	if c.StatusPort != 0 && (c.StatusPort < 1 || c.StatusPort > 65535) {
		return fmt.Errorf("status_port must be between 1 and 65535, got %d", c.StatusPort)
	}

	if c.APIBaseURL != "" {
		parsed, err := url.Parse(c.APIBaseURL)
		if err != nil {
			return fmt.Errorf("invalid api_base_url: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("api_base_url scheme must be http or https, got %q", parsed.Scheme)
		}
	}

	return nil
}

// BuildOptions converts a validated Config into SDK options for
// [mcwatch.New].
func BuildOptions(cfg *Config) []mcwatch.Option {
	opts := []mcwatch.Option{
		mcwatch.WithServer(cfg.Server),
		mcwatch.WithServerType(mcwatch.ServerType(cfg.ServerType)),
		mcwatch.WithCheckInterval(cfg.CheckInterval.Duration()),
		mcwatch.WithOfflineThreshold(cfg.OfflineThreshold),
		mcwatch.WithRequestTimeout(cfg.RequestTimeout.Duration()),
		mcwatch.WithStatePath(cfg.StatePath),
	}
	if cfg.WebhookURL != "" {
		opts = append(opts, mcwatch.WithWebhookURL(cfg.WebhookURL))
	}
	if cfg.StatusPort != 0 {
		opts = append(opts, mcwatch.WithStatusPort(cfg.StatusPort))
	}
	if cfg.APIBaseURL != "" {
		opts = append(opts, mcwatch.WithAPIBaseURL(cfg.APIBaseURL))
	}
	return opts
}
