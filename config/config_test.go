package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("server: mc.example.com:19132"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Server != "mc.example.com:19132" {
		t.Errorf("Server = %q", cfg.Server)
	}
	if cfg.ServerType != "bedrock" {
		t.Errorf("ServerType = %q, want bedrock default", cfg.ServerType)
	}
	if cfg.CheckInterval.Duration() != 5*time.Minute {
		t.Errorf("CheckInterval = %v, want 5m default", cfg.CheckInterval.Duration())
	}
	if cfg.OfflineThreshold != 2 {
		t.Errorf("OfflineThreshold = %d, want 2 default", cfg.OfflineThreshold)
	}
	if cfg.RequestTimeout.Duration() != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s default", cfg.RequestTimeout.Duration())
	}
	if cfg.StatePath != "mcwatch_state.json" {
		t.Errorf("StatePath = %q, want default", cfg.StatePath)
	}
	if cfg.StatusPort != 0 {
		t.Errorf("StatusPort = %d, want disabled by default", cfg.StatusPort)
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
server: mc.example.com
server_type: java
check_interval: 30s
offline_threshold: 3
request_timeout: 5s
webhook_url: https://discord.com/api/webhooks/123/abc
state_path: /var/lib/mcwatch/state.json
status_port: 9090
api_base_url: http://localhost:8080
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.ServerType != "java" {
		t.Errorf("ServerType = %q, want java", cfg.ServerType)
	}
	if cfg.CheckInterval.Duration() != 30*time.Second {
		t.Errorf("CheckInterval = %v, want 30s", cfg.CheckInterval.Duration())
	}
	if cfg.OfflineThreshold != 3 {
		t.Errorf("OfflineThreshold = %d, want 3", cfg.OfflineThreshold)
	}
	if cfg.WebhookURL != "https://discord.com/api/webhooks/123/abc" {
		t.Errorf("WebhookURL = %q", cfg.WebhookURL)
	}
	if cfg.StatusPort != 9090 {
		t.Errorf("StatusPort = %d, want 9090", cfg.StatusPort)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing server", "server_type: java", "server is required"},
		{"bad server type", "server: s\nserver_type: pocket", "server_type must be"},
		{"interval too small", "server: s\ncheck_interval: 100ms", "check_interval must be at least"},
		{"threshold below one", "server: s\noffline_threshold: -1", "offline_threshold must be at least 1"},
		{"bad webhook scheme", "server: s\nwebhook_url: ftp://example.com", "webhook_url scheme"},
		{"bad status port", "server: s\nstatus_port: 99999", "status_port must be"},
		{"bad duration", "server: s\ncheck_interval: soon", "invalid duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_ServerTypeIsCaseInsensitive(t *testing.T) {
	cfg, err := Parse([]byte("server: s\nserver_type: JAVA"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.ServerType != "java" {
		t.Errorf("ServerType = %q, want normalized java", cfg.ServerType)
	}
}

func TestParse_EnvVarExpansion(t *testing.T) {
	t.Setenv("MCWATCH_TEST_SERVER", "play.example.com:19132")
	t.Setenv("MCWATCH_TEST_WEBHOOK", "https://discord.com/api/webhooks/1/a")

	yaml := `
server: ${MCWATCH_TEST_SERVER}
webhook_url: ${MCWATCH_TEST_WEBHOOK}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Server != "play.example.com:19132" {
		t.Errorf("Server = %q, want expanded value", cfg.Server)
	}
	if cfg.WebhookURL != "https://discord.com/api/webhooks/1/a" {
		t.Errorf("WebhookURL = %q, want expanded value", cfg.WebhookURL)
	}
}

func TestParse_EnvVarDefaults(t *testing.T) {
	yaml := "server: ${MCWATCH_UNSET_VAR:-fallback.example.com}"

	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Server != "fallback.example.com" {
		t.Errorf("Server = %q, want fallback default", cfg.Server)
	}
}

func TestParse_MissingEnvVarIsAnError(t *testing.T) {
	_, err := Parse([]byte("server: ${MCWATCH_DEFINITELY_UNSET}"))
	if err == nil {
		t.Fatal("Parse() error = nil, want missing env var error")
	}
	if !strings.Contains(err.Error(), "MCWATCH_DEFINITELY_UNSET") {
		t.Errorf("error = %v, want variable name", err)
	}
}

func TestParse_EmptyWebhookDefaultIsAllowed(t *testing.T) {
	// ${VAR:-} expands to the empty string, meaning "stdout notifications"
	cfg, err := Parse([]byte("server: s\nwebhook_url: ${MCWATCH_UNSET_WEBHOOK:-}"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.WebhookURL != "" {
		t.Errorf("WebhookURL = %q, want empty", cfg.WebhookURL)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: mc.example.com"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server != "mc.example.com" {
		t.Errorf("Server = %q", cfg.Server)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Load() error = nil, want read error")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("error = %v, want read failure", err)
	}
}

func TestBuildOptions_ProducesWorkingMonitorConfig(t *testing.T) {
	cfg, err := Parse([]byte("server: mc.example.com\nserver_type: java\ncheck_interval: 45s"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	opts := BuildOptions(cfg)
	if len(opts) == 0 {
		t.Fatal("BuildOptions() returned no options")
	}
}
