// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file read by [Load].
const EnvironmentVariable = "LITERATE_CONFIG"

// Config is the complete resolver configuration.
type Config struct {
	// Request holds the naming conventions used to find marker files
	// and document sections.
	Request RequestConfig `yaml:"request" json:"request"`

	// Markdown configures the Markdown builder.
	Markdown MarkdownConfig `yaml:"markdown" json:"markdown"`

	// YAML configures the YAML builder.
	YAML YAMLConfig `yaml:"yaml" json:"yaml"`

	// Log configures CLI logging.
	Log LogConfig `yaml:"log" json:"log"`

	// Snapshot configures snapshot files written by "literate resolve".
	Snapshot SnapshotConfig `yaml:"snapshot" json:"snapshot"`
}

// RequestConfig holds request defaults.
type RequestConfig struct {
	// BaseName is the marker file base name: ".{base_name}.md".
	// Default: cloudbees
	BaseName string `yaml:"base_name" json:"base_name" validate:"required,excludesall=/\\"`

	// EnvironmentsID is the heading token of the environments section.
	// Default: environments
	EnvironmentsID string `yaml:"environments_id" json:"environments_id" validate:"required"`

	// BuildID is the heading token of the build section. For YAML
	// documents it may list several comma separated keys.
	// Default: build
	BuildID string `yaml:"build_id" json:"build_id" validate:"required"`

	// TaskIDs are the tasks to extract. Default: [deploy]
	TaskIDs []string `yaml:"task_ids" json:"task_ids" validate:"dive,required"`
}

// MarkdownConfig configures the Markdown builder.
type MarkdownConfig struct {
	// FallbackFile is read when the marker file has no build section.
	// Default: README.md
	FallbackFile string `yaml:"fallback_file" json:"fallback_file" validate:"required"`
}

// YAMLConfig configures the YAML builder.
type YAMLConfig struct {
	// BuildKeys are accepted as build keys in addition to the request
	// build id. Default: [script]
	BuildKeys []string `yaml:"build_keys" json:"build_keys" validate:"dive,required"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`
}

// SnapshotConfig configures snapshot files.
type SnapshotConfig struct {
	// Compression is one of none, lz4, zstd. Default: zstd
	Compression string `yaml:"compression" json:"compression" validate:"oneof=none lz4 zstd"`

	// Directory receives snapshots written without an explicit path.
	// Default: ${HOME}/.cache/literate/snapshots
	Directory string `yaml:"directory" json:"directory"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Request: RequestConfig{
			BaseName:       "cloudbees",
			EnvironmentsID: "environments",
			BuildID:        "build",
			TaskIDs:        []string{"deploy"},
		},
		Markdown: MarkdownConfig{FallbackFile: "README.md"},
		YAML:     YAMLConfig{BuildKeys: []string{"script"}},
		Log:      LogConfig{Level: "info"},
		Snapshot: SnapshotConfig{
			Compression: "zstd",
			Directory:   "${HOME}/.cache/literate/snapshots",
		},
	}
}

// Load reads the file named by LITERATE_CONFIG, or returns [Default]
// with expanded paths when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads a YAML or JSONC config file over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		return yaml.Unmarshal(data, c)
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{"HOME": os.Getenv("HOME")}
	c.Markdown.FallbackFile = expandVars(c.Markdown.FallbackFile, vars)
	c.Snapshot.Directory = expandVars(c.Snapshot.Directory, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, looking in
// vars before the environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// validate names fields by their YAML keys.
var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
})

// Validate reports every invalid field, joined.
func (c *Config) Validate() error {
	err := validate().Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	errs := make([]error, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		field := strings.TrimPrefix(fieldError.Namespace(), "Config.")
		switch fieldError.Tag() {
		case "required":
			errs = append(errs, fmt.Errorf("%s is required", field))
		case "oneof":
			errs = append(errs, fmt.Errorf("%s must be one of: %s (got %q)", field, fieldError.Param(), fieldError.Value()))
		default:
			errs = append(errs, fmt.Errorf("%s is invalid (%s)", field, fieldError.Tag()))
		}
	}
	return errors.Join(errs...)
}
