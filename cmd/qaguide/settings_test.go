package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/alnah/go-qaguide/internal/config"
)

func TestMergeBuildFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		flags  buildFlags
		args   []string
		check  func(*config.Config) bool
		detail string
	}{
		{
			name:   "positional source and document",
			args:   []string{"a.txt", "a.html"},
			flags:  buildFlags{document: documentFlags{indent: indentUnset}},
			check:  func(c *config.Config) bool { return c.Source == "a.txt" && c.Document == "a.html" },
			detail: "source/document",
		},
		{
			name:   "flags win over positional args",
			args:   []string{"a.txt"},
			flags:  buildFlags{input: inputFlags{source: "b.txt"}, document: documentFlags{indent: indentUnset}},
			check:  func(c *config.Config) bool { return c.Source == "b.txt" },
			detail: "source",
		},
		{
			name:   "unset indent keeps default",
			flags:  buildFlags{document: documentFlags{indent: indentUnset}},
			check:  func(c *config.Config) bool { return c.Index.Indent == 6 },
			detail: "indent",
		},
		{
			name:   "zero indent is honored",
			flags:  buildFlags{document: documentFlags{indent: 0}},
			check:  func(c *config.Config) bool { return c.Index.Indent == 0 },
			detail: "indent",
		},
		{
			name:   "lenient turns strict off",
			flags:  buildFlags{document: documentFlags{indent: indentUnset, lenient: true}},
			check:  func(c *config.Config) bool { return !c.Strict },
			detail: "strict",
		},
		{
			name:   "shape is case-insensitive",
			flags:  buildFlags{document: documentFlags{indent: indentUnset, shape: "Alphabetical"}},
			check:  func(c *config.Config) bool { return c.Index.Shape == "alphabetical" },
			detail: "shape",
		},
		{
			name:   "backups count enables rotation",
			flags:  buildFlags{document: documentFlags{indent: indentUnset}, backup: backupFlags{keep: 9}},
			check:  func(c *config.Config) bool { return c.Backup.Enabled && c.Backup.Keep == 9 },
			detail: "backup",
		},
		{
			name:   "no-backup wins",
			flags:  buildFlags{document: documentFlags{indent: indentUnset}, backup: backupFlags{keep: 9, disabled: true}},
			check:  func(c *config.Config) bool { return !c.Backup.Enabled },
			detail: "backup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			mergeBuildFlags(&tt.flags, tt.args)(cfg)
			if !tt.check(cfg) {
				t.Errorf("%s not merged: %+v", tt.detail, cfg)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			logger := newLogger(&bytes.Buffer{}, tt.level)
			ctx := context.Background()
			if !logger.Enabled(ctx, tt.want) {
				t.Errorf("level %v disabled", tt.want)
			}
			if tt.want > slog.LevelDebug && logger.Enabled(ctx, tt.want-4) {
				t.Errorf("level below %v enabled", tt.want)
			}
		})
	}
}

func TestNewService_VocabularyHint(t *testing.T) {
	t.Parallel()

	g := writeGuide(t, cliSource, cliDocument)
	writeFile(t, g.keywords, "categories: []\n")

	cfg := config.DefaultConfig()
	cfg.Keywords = g.keywords

	_, err := newService(cfg, slog.New(slog.DiscardHandler))
	if err == nil {
		t.Fatal("newService() error = nil, want vocabulary error")
	}
	if exitCodeFor(err) != ExitUsage {
		t.Errorf("exitCodeFor() = %d, want %d", exitCodeFor(err), ExitUsage)
	}
	if !strings.Contains(err.Error(), "hint:") {
		t.Errorf("error %q should carry a hint", err)
	}
}
