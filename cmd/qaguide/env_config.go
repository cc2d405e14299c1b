package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-qaguide/internal/config"
)

// envPrefix marks the environment variables read by qaguide.
const envPrefix = "QAGUIDE_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // QAGUIDE_CONFIG: config file name or path
	Source     string // QAGUIDE_SOURCE: markup source file
	Document   string // QAGUIDE_DOCUMENT: HTML guide
	Keywords   string // QAGUIDE_KEYWORDS: vocabulary file
	Grammar    string // QAGUIDE_GRAMMAR: classic, extended
	Container  string // QAGUIDE_CONTAINER: tag name or #id
	LogLevel   string // QAGUIDE_LOG_LEVEL: debug, info, warn, error
	Strict     *bool  // QAGUIDE_STRICT: true, false
	BackupKeep *int   // QAGUIDE_BACKUP_KEEP: 0 disables backups
}

// knownEnvVars lists valid QAGUIDE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"QAGUIDE_CONFIG":      true,
	"QAGUIDE_SOURCE":      true,
	"QAGUIDE_DOCUMENT":    true,
	"QAGUIDE_KEYWORDS":    true,
	"QAGUIDE_GRAMMAR":     true,
	"QAGUIDE_CONTAINER":   true,
	"QAGUIDE_LOG_LEVEL":   true,
	"QAGUIDE_STRICT":      true,
	"QAGUIDE_BACKUP_KEEP": true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable booleans and integers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("QAGUIDE_CONFIG"),
		Source:     os.Getenv("QAGUIDE_SOURCE"),
		Document:   os.Getenv("QAGUIDE_DOCUMENT"),
		Keywords:   os.Getenv("QAGUIDE_KEYWORDS"),
		Grammar:    os.Getenv("QAGUIDE_GRAMMAR"),
		Container:  os.Getenv("QAGUIDE_CONTAINER"),
		LogLevel:   strings.ToLower(os.Getenv("QAGUIDE_LOG_LEVEL")),
	}

	if v := os.Getenv("QAGUIDE_STRICT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Strict = &b
		}
	}

	if v := os.Getenv("QAGUIDE_BACKUP_KEEP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.BackupKeep = &n
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized QAGUIDE_* variable.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Source != "" {
		cfg.Source = env.Source
	}
	if env.Document != "" {
		cfg.Document = env.Document
	}
	if env.Keywords != "" {
		cfg.Keywords = env.Keywords
	}
	if env.Grammar != "" {
		cfg.Grammar = env.Grammar
	}
	if env.Container != "" {
		cfg.Container = env.Container
	}
	if env.LogLevel != "" {
		cfg.LogLevel = env.LogLevel
	}
	if env.Strict != nil {
		cfg.Strict = *env.Strict
	}
	if env.BackupKeep != nil {
		applyBackupKeep(cfg, *env.BackupKeep)
	}
}

// applyBackupKeep sets the rotation size; zero disables backups.
func applyBackupKeep(cfg *config.Config, keep int) {
	cfg.Backup.Keep = keep
	cfg.Backup.Enabled = keep > 0
}
