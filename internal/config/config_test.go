package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scantidy/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := writeConfig(t, `
[xnat]
base_url = "https://xnat.example.edu/"
project = "CUTTING"
username = "lab"
password = "secret"

[rules]
db_path = "~/rules/renames.db"

[expectations]
mr = 176

[logging]
format = "JSON"
level = "Debug"
dir = ""
`)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected existing resolved config, got exists=%v path=%q", exists, resolved)
	}
	if cfg.XNAT.BaseURL != "https://xnat.example.edu" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.XNAT.BaseURL)
	}
	if want := filepath.Join(tempHome, "rules", "renames.db"); cfg.Rules.DBPath != want {
		t.Fatalf("unexpected rules db path: got %q want %q", cfg.Rules.DBPath, want)
	}
	if frames, ok := cfg.Expectations["MR"]; !ok || frames != 176 {
		t.Fatalf("expected expectations key upcased to MR=176, got %v", cfg.Expectations)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging fields lowercased, got %+v", cfg.Logging)
	}
	if cfg.XNAT.TimeoutSeconds != 30 {
		t.Fatalf("expected default timeout, got %d", cfg.XNAT.TimeoutSeconds)
	}
}

func TestLoadUsesEnvCredentials(t *testing.T) {
	t.Setenv("XNAT_TOKEN", "tok-123")

	path := writeConfig(t, `
[xnat]
base_url = "https://xnat.example.edu"
project = "CUTTING"
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.XNAT.Token != "tok-123" {
		t.Fatalf("expected token from env, got %q", cfg.XNAT.Token)
	}
}

func TestLoadRejectsMissingCredentials(t *testing.T) {
	t.Setenv("XNAT_TOKEN", "")
	t.Setenv("XNAT_PASSWORD", "")

	path := writeConfig(t, `
[xnat]
base_url = "https://xnat.example.edu"
project = "CUTTING"
username = "lab"
`)

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "credentials") {
		t.Fatalf("expected credentials error, got %v", err)
	}
}

func TestLoadRejectsBadExpectation(t *testing.T) {
	path := writeConfig(t, `
[xnat]
base_url = "https://xnat.example.edu"
project = "CUTTING"
token = "tok"

[expectations]
MR = -3
`)

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "expectations.mr") {
		t.Fatalf("expected expectation validation error, got %v", err)
	}
}

func TestValidateRejectsRelativeBaseURL(t *testing.T) {
	path := writeConfig(t, `
[xnat]
base_url = "xnat.example.edu"
project = "CUTTING"
token = "tok"
`)

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "absolute URL") {
		t.Fatalf("expected URL validation error, got %v", err)
	}
}
