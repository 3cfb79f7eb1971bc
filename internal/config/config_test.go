package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"ntfystep/internal/config"
	"ntfystep/internal/testsupport"
)

func TestLoadDefaultConfigWithoutFile(t *testing.T) {
	home := testsupport.IsolateEnv(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	want := filepath.Join(home, ".config", "ntfystep", "config.toml")
	if resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Ntfy.ServerHost != "ntfy.sh" {
		t.Fatalf("expected default server host, got %q", cfg.Ntfy.ServerHost)
	}
	if cfg.Ntfy.Topic != "" {
		t.Fatalf("expected empty topic, got %q", cfg.Ntfy.Topic)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Fatalf("unexpected request timeout: %s", cfg.RequestTimeout())
	}
	if cfg.Ntfy.UserAgent != config.DefaultUserAgent {
		t.Fatalf("unexpected user agent: %q", cfg.Ntfy.UserAgent)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Message.Markdown {
		t.Fatal("expected markdown disabled by default")
	}
	if err := cfg.ValidateDispatch(); err == nil {
		t.Fatal("expected ValidateDispatch to require a topic")
	}
}

func TestLoadCustomPath(t *testing.T) {
	testsupport.IsolateEnv(t)
	configPath := filepath.Join(t.TempDir(), "ntfystep.toml")

	type payload struct {
		Ntfy struct {
			ServerHost     string `toml:"server_host"`
			Topic          string `toml:"topic"`
			RequestTimeout int    `toml:"request_timeout"`
		} `toml:"ntfy"`
		Message struct {
			Title    string `toml:"title"`
			Tags     string `toml:"tags"`
			Markdown bool   `toml:"markdown"`
		} `toml:"message"`
		Logging struct {
			Format string `toml:"format"`
			Dir    string `toml:"dir"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Ntfy.ServerHost = "https://push.example.com/"
	custom.Ntfy.Topic = "builds"
	custom.Ntfy.RequestTimeout = 3
	custom.Message.Title = "  CI  "
	custom.Message.Tags = " ci, urgent "
	custom.Message.Markdown = true
	custom.Logging.Format = "JSON"
	custom.Logging.Dir = "~/logs"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected existing config at %q, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Ntfy.ServerHost != "push.example.com" {
		t.Fatalf("expected scheme and slash stripped, got %q", cfg.Ntfy.ServerHost)
	}
	if cfg.Ntfy.Topic != "builds" {
		t.Fatalf("unexpected topic: %q", cfg.Ntfy.Topic)
	}
	if cfg.RequestTimeout() != 3*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.RequestTimeout())
	}
	if cfg.Message.Title != "CI" {
		t.Fatalf("expected trimmed title, got %q", cfg.Message.Title)
	}
	if cfg.Message.Tags != "ci, urgent" {
		t.Fatalf("expected trimmed tags, got %q", cfg.Message.Tags)
	}
	if !cfg.Message.Markdown {
		t.Fatal("expected markdown enabled")
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected lowercased log format, got %q", cfg.Logging.Format)
	}
	if !filepath.IsAbs(cfg.Logging.Dir) || filepath.Base(cfg.Logging.Dir) != "logs" {
		t.Fatalf("expected expanded log dir, got %q", cfg.Logging.Dir)
	}
	if err := cfg.ValidateDispatch(); err != nil {
		t.Fatalf("ValidateDispatch: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if info, err := os.Stat(cfg.Logging.Dir); err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestLoadAppliesEnvironmentFallbacks(t *testing.T) {
	testsupport.IsolateEnv(t)
	t.Setenv("PLUGIN_SERVER_URL", "http://ntfy.internal:8443")
	t.Setenv("PLUGIN_TOPIC", "deploys")
	t.Setenv("NTFY_TITLE", "Deploy")
	t.Setenv("PLUGIN_PRIORITY", "high")
	t.Setenv("PLUGIN_TAGS", "rocket")
	t.Setenv("PLUGIN_MESSAGE", "  shipped  ")
	t.Setenv("PLUGIN_MARKDOWN", "yes")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Ntfy.ServerHost != "ntfy.internal:8443" {
		t.Fatalf("unexpected server host: %q", cfg.Ntfy.ServerHost)
	}
	if cfg.Ntfy.Topic != "deploys" {
		t.Fatalf("unexpected topic: %q", cfg.Ntfy.Topic)
	}
	if cfg.Message.Title != "Deploy" || cfg.Message.Priority != "high" || cfg.Message.Tags != "rocket" {
		t.Fatalf("unexpected message fields: %+v", cfg.Message)
	}
	if cfg.Message.Body != "  shipped  " {
		t.Fatalf("expected body kept verbatim, got %q", cfg.Message.Body)
	}
	if !cfg.Message.Markdown {
		t.Fatal("expected markdown from PLUGIN_MARKDOWN")
	}
}

func TestFileValuesWinOverEnvironment(t *testing.T) {
	testsupport.IsolateEnv(t)
	t.Setenv("NTFY_TOPIC", "from-env")
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[ntfy]\ntopic = \"from-file\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Ntfy.Topic != "from-file" {
		t.Fatalf("expected file topic to win, got %q", cfg.Ntfy.Topic)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "zero timeout",
			content: "[ntfy]\nrequest_timeout = 0\n",
			wantErr: "ntfy.request_timeout",
		},
		{
			name:    "unknown log format",
			content: "[logging]\nformat = \"xml\"\n",
			wantErr: "logging.format",
		},
		{
			name:    "unknown log level",
			content: "[logging]\nlevel = \"loud\"\n",
			wantErr: "logging.level",
		},
		{
			name:    "bad markdown env",
			content: "",
			env:     map[string]string{"NTFY_MARKDOWN": "maybe"},
			wantErr: "NTFY_MARKDOWN",
		},
		{
			name:    "malformed toml",
			content: "[ntfy\n",
			wantErr: "parse config",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			testsupport.IsolateEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(configPath)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadFindsProjectFile(t *testing.T) {
	home := testsupport.IsolateEnv(t)
	project := t.TempDir()
	t.Chdir(project)
	if err := os.WriteFile(filepath.Join(project, "ntfystep.toml"), []byte("[ntfy]\ntopic = \"project\"\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || cfg.Ntfy.Topic != "project" {
		t.Fatalf("expected project config, got exists=%v topic=%q", exists, cfg.Ntfy.Topic)
	}
	if filepath.Base(resolved) != "ntfystep.toml" {
		t.Fatalf("unexpected resolved path %q", resolved)
	}

	userPath := filepath.Join(home, ".config", "ntfystep", "config.toml")
	if err := config.CreateSample(userPath); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	_, resolved, _, err = config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != userPath {
		t.Fatalf("user config should win over project config, got %q", resolved)
	}
}

func TestLoadRejectsDirectory(t *testing.T) {
	testsupport.IsolateEnv(t)
	if _, _, _, err := config.Load(t.TempDir()); err == nil || !strings.Contains(err.Error(), "is a directory") {
		t.Fatalf("expected directory error, got %v", err)
	}
}

func TestCreateSampleLoads(t *testing.T) {
	testsupport.IsolateEnv(t)
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Ntfy.ServerHost != "ntfy.sh" {
		t.Fatalf("unexpected server host from sample: %q", cfg.Ntfy.ServerHost)
	}
}

func TestNormalizeServerHost(t *testing.T) {
	tests := map[string]string{
		"ntfy.sh":                  "ntfy.sh",
		" https://ntfy.sh/ ":       "ntfy.sh",
		"HTTP://ntfy.local:8080//": "ntfy.local:8080",
		"example.com/ntfy":         "example.com/ntfy",
		"":                         "",
	}
	for in, want := range tests {
		if got := config.NormalizeServerHost(in); got != want {
			t.Fatalf("NormalizeServerHost(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseBool(t *testing.T) {
	for _, in := range []string{"yes", "TRUE", "1", "on"} {
		if v, err := config.ParseBool(in); err != nil || !v {
			t.Fatalf("ParseBool(%q) = %v, %v", in, v, err)
		}
	}
	for _, in := range []string{"no", "false", "0", "off"} {
		if v, err := config.ParseBool(in); err != nil || v {
			t.Fatalf("ParseBool(%q) = %v, %v", in, v, err)
		}
	}
	if _, err := config.ParseBool("sometimes"); err == nil {
		t.Fatal("expected error for unknown value")
	}
}
