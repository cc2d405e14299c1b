package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-qaguide/internal/fileutil"
	"github.com/alnah/go-qaguide/internal/htmldoc"
	"github.com/alnah/go-qaguide/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Field limits.
const (
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxMarkerLength = 200  // index marker
	MaxIndexIndent  = 16   // spaces
	MaxBackupKeep   = 100  // backups kept next to the document
)

// Accepted enumerations.
var (
	Grammars    = []any{"classic", "extended"}
	IndexShapes = []any{"category", "alphabetical"}
	LogLevels   = []any{"debug", "info", "warn", "error"}
)

// AppName names the user config directory.
const AppName = "qaguide"

// Config holds all configuration for a guide build.
type Config struct {
	Source    string       `yaml:"source"`    // markup source file
	Document  string       `yaml:"document"`  // HTML guide, read and rewritten
	Grammar   string       `yaml:"grammar"`   // "classic" or "extended"
	Strict    bool         `yaml:"strict"`    // missing container or index aborts the build
	Container string       `yaml:"container"` // "main" or "#id"
	Keywords  string       `yaml:"keywords"`  // vocabulary file (empty = embedded default)
	Index     IndexConfig  `yaml:"index"`
	Backup    BackupConfig `yaml:"backup"`
	LogLevel  string       `yaml:"logLevel"`
}

// IndexConfig defines keyword index options.
type IndexConfig struct {
	Marker string `yaml:"marker"` // text opening the literal, must contain "{"
	Shape  string `yaml:"shape"`  // "category" or "alphabetical"
	Indent int    `yaml:"indent"` // extra spaces for the literal lines
}

// BackupConfig defines backup rotation options.
type BackupConfig struct {
	Enabled bool `yaml:"enabled"`
	Keep    int  `yaml:"keep"` // maximum backups kept (default: 5)
}

// Validate checks index fields.
func (c IndexConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Marker,
			validation.Required,
			validation.Length(1, MaxMarkerLength),
			validation.By(containsBrace),
		),
		validation.Field(&c.Shape, validation.In(IndexShapes...)),
		validation.Field(&c.Indent, validation.Min(0), validation.Max(MaxIndexIndent)),
	)
}

// Validate checks backup fields.
func (c BackupConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Keep,
			validation.When(c.Enabled, validation.Required, validation.Min(1)),
			validation.Max(MaxBackupKeep),
		),
	)
}

// Validate checks every field. Called automatically by LoadConfig, but
// available for callers that build a Config from flags and environment.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.Length(0, MaxPathLength)),
		validation.Field(&c.Document, validation.Length(0, MaxPathLength)),
		validation.Field(&c.Keywords, validation.Length(0, MaxPathLength)),
		validation.Field(&c.Grammar, validation.In(Grammars...)),
		validation.Field(&c.Container, validation.Required, validation.By(validSelector)),
		validation.Field(&c.Index),
		validation.Field(&c.Backup),
		validation.Field(&c.LogLevel, validation.In(LogLevels...)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return nil
}

func containsBrace(value any) error {
	if s, _ := value.(string); s != "" && !strings.Contains(s, "{") {
		return errors.New(`must contain "{"`)
	}
	return nil
}

func validSelector(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := htmldoc.ParseSelector(s); err != nil {
		return errors.New("must be a tag name or #id")
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// classic grammar, strict checks, <main> container, embedded vocabulary,
// category index, five backups.
func DefaultConfig() *Config {
	return &Config{
		Source:    "guide.txt",
		Document:  "guide.html",
		Grammar:   "classic",
		Strict:    true,
		Container: "main",
		Keywords:  "",
		Index: IndexConfig{
			Marker: "var keywords = {",
			Shape:  "category",
			Indent: 6,
		},
		Backup: BackupConfig{
			Enabled: true,
			Keep:    5,
		},
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/qaguide/
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
