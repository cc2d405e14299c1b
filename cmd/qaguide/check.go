package main

import (
	"fmt"

	qaguide "github.com/alnah/go-qaguide"
	"github.com/alnah/go-qaguide/internal/config"
	"github.com/alnah/go-qaguide/internal/fileutil"
)

// runCheck validates the source and, when it exists, preflights the document.
// Nothing is written.
func runCheck(args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: check takes at most a source", ErrUsage)
	}

	cfg, err := resolveConfig(flags.common, func(cfg *config.Config) {
		if len(positional) == 1 {
			cfg.Source = positional[0]
		}
		mergeInputFlags(flags.input, cfg)
		mergeMarkupFlags(flags.markup, cfg)
		mergeDocumentFlags(flags.document, cfg)
	})
	if err != nil {
		return err
	}

	svc, err := newService(cfg, newLogger(env.Stderr, cfg.LogLevel))
	if err != nil {
		return err
	}

	source, err := readInput(cfg.Source, qaguide.ErrSourceNotFound)
	if err != nil {
		return withHint(err, cfg)
	}
	if err := svc.Check(source); err != nil {
		return withHint(fmt.Errorf("%s: %w", cfg.Source, err), cfg)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%s: ok (%s grammar)\n", cfg.Source, grammarName(cfg))
	}

	// A missing document is only reported by build.
	if !fileutil.FileExists(cfg.Document) {
		return nil
	}
	document, err := readInput(cfg.Document, qaguide.ErrDocumentNotFound)
	if err != nil {
		return withHint(err, cfg)
	}
	if err := svc.Preflight(document); err != nil {
		if !cfg.Strict {
			fmt.Fprintf(env.Stderr, "warning: %s: %v\n", cfg.Document, err)
			return nil
		}
		return withHint(fmt.Errorf("%s: %w", cfg.Document, err), cfg)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%s: ok (container %s, index %q)\n", cfg.Document, cfg.Container, cfg.Index.Marker)
	}
	return nil
}

func grammarName(cfg *config.Config) string {
	if cfg.Grammar == "" {
		return "classic"
	}
	return cfg.Grammar
}
