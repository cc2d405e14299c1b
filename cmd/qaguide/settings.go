package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	qaguide "github.com/alnah/go-qaguide"
	"github.com/alnah/go-qaguide/internal/config"
	"github.com/alnah/go-qaguide/internal/fileutil"
	"github.com/alnah/go-qaguide/internal/hints"
)

// resolveConfig loads the config named by --config or QAGUIDE_CONFIG, applies
// environment overrides, then flags, and validates the result.
func resolveConfig(common commonFlags, applyFlags func(*config.Config)) (*config.Config, error) {
	env := loadEnvConfig()

	name := common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			hint := ""
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				hint = hints.ForConfigNotFound(config.SearchPaths(name))
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hint)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	if applyFlags != nil {
		applyFlags(cfg)
	}
	switch {
	case common.verbose:
		cfg.LogLevel = "debug"
	case common.quiet:
		cfg.LogLevel = "warn"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeInputFlags merges file flags into config. CLI values override config values.
func mergeInputFlags(f inputFlags, cfg *config.Config) {
	if f.source != "" {
		cfg.Source = f.source
	}
	if f.document != "" {
		cfg.Document = f.document
	}
	if f.keywords != "" {
		cfg.Keywords = f.keywords
	}
}

// mergeMarkupFlags merges grammar flags into config.
func mergeMarkupFlags(f markupFlags, cfg *config.Config) {
	if f.grammar != "" {
		cfg.Grammar = strings.ToLower(f.grammar)
	}
}

// mergeDocumentFlags merges document structure flags into config.
func mergeDocumentFlags(f documentFlags, cfg *config.Config) {
	if f.container != "" {
		cfg.Container = f.container
	}
	if f.marker != "" {
		cfg.Index.Marker = f.marker
	}
	if f.shape != "" {
		cfg.Index.Shape = strings.ToLower(f.shape)
	}
	if f.indent != indentUnset {
		cfg.Index.Indent = f.indent
	}
	if f.lenient {
		cfg.Strict = false
	}
}

// mergeBackupFlags merges backup flags into config.
func mergeBackupFlags(f backupFlags, cfg *config.Config) {
	if f.keep > 0 {
		applyBackupKeep(cfg, f.keep)
	}
	if f.disabled {
		cfg.Backup.Enabled = false
	}
}

// mergeBuildFlags merges every build flag into config.
func mergeBuildFlags(f *buildFlags, args []string) func(*config.Config) {
	return func(cfg *config.Config) {
		// Positional source and document come first; flags still win.
		if len(args) > 0 {
			cfg.Source = args[0]
		}
		if len(args) > 1 {
			cfg.Document = args[1]
		}
		mergeInputFlags(f.input, cfg)
		mergeMarkupFlags(f.markup, cfg)
		mergeDocumentFlags(f.document, cfg)
		mergeBackupFlags(f.backup, cfg)
	}
}

// newLogger builds a text logger for the configured level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// newService builds a Service from a validated config.
// The vocabulary file is read on every call, so watch picks up edits.
func newService(cfg *config.Config, logger *slog.Logger, extra ...qaguide.Option) (*qaguide.Service, error) {
	grammar, err := qaguide.GrammarByName(cfg.Grammar)
	if err != nil {
		return nil, err
	}

	vocab, err := qaguide.LoadVocabulary(cfg.Keywords)
	if err != nil {
		if errors.Is(err, qaguide.ErrVocabulary) {
			return nil, fmt.Errorf("%w%s", err, hints.ForVocabulary())
		}
		return nil, err
	}

	sel, err := qaguide.ParseSelector(cfg.Container)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	opts := []qaguide.Option{
		qaguide.WithGrammar(grammar),
		qaguide.WithVocabulary(vocab),
		qaguide.WithContainer(sel),
		qaguide.WithIndexMarker(cfg.Index.Marker),
		qaguide.WithIndexShape(qaguide.IndexShape(cfg.Index.Shape)),
		qaguide.WithIndexIndent(cfg.Index.Indent),
		qaguide.WithStrict(cfg.Strict),
		qaguide.WithLogger(logger),
	}
	return qaguide.New(append(opts, extra...)...), nil
}

// withHint appends the actionable hint matching err.
func withHint(err error, cfg *config.Config) error {
	var hint string
	switch {
	case errors.Is(err, qaguide.ErrMalformed):
		hint = hints.ForMalformed(cfg.Grammar)
	case errors.Is(err, qaguide.ErrContainerNotFound):
		hint = hints.ForContainerNotFound(cfg.Container)
	case errors.Is(err, qaguide.ErrIndexNotFound):
		hint = hints.ForIndexNotFound(cfg.Index.Marker)
	case errors.Is(err, qaguide.ErrSourceNotFound):
		hint = hints.ForSourceNotFound()
	case errors.Is(err, qaguide.ErrDocumentNotFound):
		hint = hints.ForDocumentNotFound()
	default:
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
