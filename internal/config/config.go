// Package config loads grand's settings from an optional YAML file, a .env
// file and GRAND_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/saturogrp-blip/Grand/internal/logging"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "grand.yaml"

// Config holds all grand settings.
type Config struct {
	LogLevel  string       `yaml:"log_level"`
	LogFormat string       `yaml:"log_format"`
	DBPath    string       `yaml:"db_path"`
	BanksDir  string       `yaml:"banks_dir"`
	Verify    VerifyConfig `yaml:"verify"`
}

// VerifyConfig describes what the environment verifier expects to find in
// the backend's working directory.
type VerifyConfig struct {
	// BackendFile must exist for the working-directory probe to pass.
	BackendFile string `yaml:"backend_file"`

	// RequiredFiles each get their own existence probe, in order.
	RequiredFiles []string `yaml:"required_files"`

	// DataDir is created when missing.
	DataDir string `yaml:"data_dir"`

	// Manifest is the dependency manifest (package.json or go.mod).
	Manifest string `yaml:"manifest"`

	// Modules are resolved against the manifest. An entry may carry a
	// minimum version: "express@>=4.18.0".
	Modules []string `yaml:"modules"`

	// DataDefinition is parsed (never executed) by the syntax probe.
	DataDefinition string `yaml:"data_definition"`

	StartCommand   string `yaml:"start_command"`
	InstallCommand string `yaml:"install_command"`

	// ProjectDir is shown in the "wrong directory" hint. Empty means the
	// hint names BackendFile instead.
	ProjectDir string `yaml:"project_dir"`
}

// DefaultConfig returns the settings of the original backend layout.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "warn",
		LogFormat: "text",
		Verify: VerifyConfig{
			BackendFile:    "backend-data.js",
			RequiredFiles:  []string{"backend-data.js", "data-storage.js", "data-editor.html"},
			DataDir:        "data",
			Manifest:       "package.json",
			Modules:        []string{"express", "cors", "body-parser"},
			DataDefinition: "backend-data.js",
			StartCommand:   "node backend-data.js",
			InstallCommand: "npm install express cors body-parser",
		},
	}
}

// Load builds a Config for the working directory dir. path names an explicit
// config file; when empty, GRAND_CONFIG and then dir/grand.yaml are tried.
// A .env file in dir is loaded into the process environment first.
func Load(dir, path string) (Config, error) {
	cfg := DefaultConfig()

	if err := LoadDotEnv(dir); err != nil {
		return Config{}, err
	}

	explicit := path != ""
	if !explicit {
		if p := os.Getenv("GRAND_CONFIG"); p != "" {
			path, explicit = p, true
		} else {
			path = filepath.Join(dir, DefaultFile)
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No config file; defaults apply.
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads dir/.env without overriding variables already set.
// A missing file is not an error.
func LoadDotEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func decode(data []byte, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GRAND_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GRAND_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("GRAND_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("GRAND_BANKS_DIR"); v != "" {
		c.BanksDir = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if !slices.Contains(logging.Formats, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("invalid log format %q: must be 'text' or 'json'", c.LogFormat)
	}

	v := c.Verify
	if v.BackendFile == "" {
		return fmt.Errorf("verify.backend_file is required")
	}
	if len(v.RequiredFiles) == 0 {
		return fmt.Errorf("verify.required_files must name at least one file")
	}
	for _, f := range v.RequiredFiles {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("verify.required_files contains an empty entry")
		}
	}
	if v.DataDir == "" {
		return fmt.Errorf("verify.data_dir is required")
	}
	if v.Manifest == "" {
		return fmt.Errorf("verify.manifest is required")
	}
	for _, m := range v.Modules {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("verify.modules contains an empty entry")
		}
	}
	if v.DataDefinition == "" {
		return fmt.Errorf("verify.data_definition is required")
	}
	if v.StartCommand == "" {
		return fmt.Errorf("verify.start_command is required")
	}
	return nil
}
