package main

import (
	"fmt"

	"github.com/alnah/go-qaguide/internal/assets"
	"github.com/alnah/go-qaguide/internal/config"
	"github.com/alnah/go-qaguide/internal/fileutil"
	"github.com/alnah/go-qaguide/internal/yamlutil"
)

// runInit writes the embedded starter document and vocabulary, plus a
// config file pointing at them. Existing files are left untouched.
func runInit(args []string, env *Environment) error {
	flags, err := parseInitFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	starters := []struct {
		path string
		load func(string) ([]byte, error)
	}{
		{flags.document, assets.LoadTemplate},
		{flags.keywords, assets.LoadVocabulary},
		{flags.config, func(string) ([]byte, error) { return starterConfig(flags) }},
	}

	for _, s := range starters {
		if fileutil.FileExists(s.path) {
			fmt.Fprintf(env.Stdout, "skipped %s (exists)\n", s.path)
			continue
		}
		content, err := s.load(assets.DefaultName)
		if err != nil {
			return err
		}
		if err := fileutil.WriteFileAtomic(s.path, content, filePermissions); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteDocument, err)
		}
		fmt.Fprintf(env.Stdout, "created %s\n", s.path)
	}

	fmt.Fprintf(env.Stdout, "next: qaguide build --config %s\n", flags.config)
	return nil
}

// starterConfig renders the default config with the starter file paths.
func starterConfig(flags *initFlags) ([]byte, error) {
	cfg := config.DefaultConfig()
	cfg.Document = flags.document
	cfg.Keywords = flags.keywords
	return yamlutil.Marshal(cfg)
}
