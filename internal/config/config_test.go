package config

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GRAND_CONFIG", "GRAND_LOG_LEVEL", "GRAND_LOG_FORMAT", "GRAND_DB", "GRAND_BANKS_DIR"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("config = %+v, want defaults", cfg)
	}
	if want := []string{"backend-data.js", "data-storage.js", "data-editor.html"}; !slices.Equal(cfg.Verify.RequiredFiles, want) {
		t.Errorf("required files = %q, want %q", cfg.Verify.RequiredFiles, want)
	}
	if cfg.Verify.StartCommand != "node backend-data.js" {
		t.Errorf("start command = %q", cfg.Verify.StartCommand)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, DefaultFile), `
log_level: debug
verify:
  manifest: go.mod
  modules:
    - github.com/spf13/cobra@>=1.8.0
  project_dir: /srv/grand
`)

	cfg, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
	if cfg.Verify.Manifest != "go.mod" {
		t.Errorf("manifest = %q", cfg.Verify.Manifest)
	}
	if !slices.Equal(cfg.Verify.Modules, []string{"github.com/spf13/cobra@>=1.8.0"}) {
		t.Errorf("modules = %q", cfg.Verify.Modules)
	}
	if cfg.Verify.ProjectDir != "/srv/grand" {
		t.Errorf("project dir = %q", cfg.Verify.ProjectDir)
	}
	// Untouched fields keep their defaults.
	if cfg.Verify.BackendFile != "backend-data.js" {
		t.Errorf("backend file = %q", cfg.Verify.BackendFile)
	}
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeConfig(t, path, "verfy:\n  manifest: go.mod\n")

	_, err := Load(dir, path)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if !strings.Contains(err.Error(), "custom.yaml") {
		t.Errorf("err = %q, want file name", err)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if _, err := Load(dir, filepath.Join(dir, "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, DefaultFile), "log_format: text\n")
	t.Setenv("GRAND_LOG_FORMAT", "json")
	t.Setenv("GRAND_DB", "/tmp/grand.db")

	cfg, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("log format = %q, want json", cfg.LogFormat)
	}
	if cfg.DBPath != "/tmp/grand.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that exists, even when empty.
	if err := os.Unsetenv("GRAND_BANKS_DIR"); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".env"), "GRAND_BANKS_DIR=/opt/banks\n")

	cfg, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BanksDir != "/opt/banks" {
		t.Errorf("banks dir = %q, want /opt/banks", cfg.BanksDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }},
		{"no required files", func(c *Config) { c.Verify.RequiredFiles = nil }},
		{"blank required file", func(c *Config) { c.Verify.RequiredFiles = []string{"a.js", " "} }},
		{"no data dir", func(c *Config) { c.Verify.DataDir = "" }},
		{"no manifest", func(c *Config) { c.Verify.Manifest = "" }},
		{"blank module", func(c *Config) { c.Verify.Modules = []string{""} }},
		{"no data definition", func(c *Config) { c.Verify.DataDefinition = "" }},
		{"no start command", func(c *Config) { c.Verify.StartCommand = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted an invalid config")
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("defaults fail validation: %v", err)
	}
}
