package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	qaguide "github.com/alnah/go-qaguide"
	"github.com/alnah/go-qaguide/internal/backup"
	"github.com/alnah/go-qaguide/internal/config"
	"github.com/alnah/go-qaguide/internal/fileutil"
)

// ErrWriteDocument is returned when the rebuilt document or its backup cannot be written.
var ErrWriteDocument = errors.New("failed to write document")

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// runBuild rebuilds the document once.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 2 {
		return fmt.Errorf("%w: build takes at most a source and a document", ErrUsage)
	}

	cfg, err := resolveConfig(flags.common, mergeBuildFlags(flags, positional))
	if err != nil {
		return err
	}

	b := newBuilder(cfg, flags, env)
	_, err = b.build(ctx)
	return err
}

// builder runs one build with a resolved config. Watch reuses it for every rebuild.
type builder struct {
	cfg     *config.Config
	env     *Environment
	logger  *slog.Logger
	quiet   bool
	dryRun  bool
	dumpDir string
}

func newBuilder(cfg *config.Config, flags *buildFlags, env *Environment) *builder {
	return &builder{
		cfg:     cfg,
		env:     env,
		logger:  newLogger(env.Stderr, cfg.LogLevel),
		quiet:   flags.common.quiet,
		dryRun:  flags.dryRun,
		dumpDir: flags.dumpDir,
	}
}

// build reads the source and document, runs the pipeline, rotates backups
// and atomically replaces the document. Nothing is written on failure.
func (b *builder) build(ctx context.Context) (*qaguide.Result, error) {
	start := b.env.Now()
	prog := newProgress(b.env.Stderr, b.quiet, "build")

	source, err := readInput(b.cfg.Source, qaguide.ErrSourceNotFound)
	if err != nil {
		return nil, withHint(err, b.cfg)
	}
	document, err := readInput(b.cfg.Document, qaguide.ErrDocumentNotFound)
	if err != nil {
		return nil, withHint(err, b.cfg)
	}

	inspectors := []qaguide.Inspector{prog.Stage}
	if b.dumpDir != "" {
		dumper, err := newStageDumper(b.dumpDir, b.logger)
		if err != nil {
			return nil, err
		}
		inspectors = append(inspectors, dumper.Dump)
	}

	svc, err := newService(b.cfg, b.logger, qaguide.WithInspector(chainInspectors(inspectors...)))
	if err != nil {
		return nil, err
	}

	res, err := svc.Build(ctx, qaguide.Input{Source: source, Document: document})
	if err != nil {
		prog.Fail()
		return nil, withHint(err, b.cfg)
	}

	if b.dryRun {
		fmt.Fprint(b.env.Stdout, res.HTML)
		prog.Done(res, "stdout", b.env.Now().Sub(start))
		return res, nil
	}

	if b.cfg.Backup.Enabled {
		name, err := backup.Rotate(b.cfg.Document, b.cfg.Backup.Keep, start)
		if err != nil {
			prog.Fail()
			return nil, fmt.Errorf("%w: backup: %w", ErrWriteDocument, err)
		}
		b.logger.Debug("backup written", "path", name)
	}

	if err := fileutil.WriteFileAtomic(b.cfg.Document, []byte(res.HTML), filePermissions); err != nil {
		prog.Fail()
		return nil, fmt.Errorf("%w: %w", ErrWriteDocument, err)
	}

	prog.Done(res, b.cfg.Document, b.env.Now().Sub(start))
	return res, nil
}

// readInput reads a whole file, wrapping a missing file in sentinel.
func readInput(path string, sentinel error) (string, error) {
	if err := fileutil.CheckFile(path); err != nil {
		return "", fmt.Errorf("%w: %w", sentinel, err)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// chainInspectors calls every inspector in order.
func chainInspectors(fns ...qaguide.Inspector) qaguide.Inspector {
	return func(stage qaguide.Stage, content string) {
		for _, fn := range fns {
			fn(stage, content)
		}
	}
}

// stageDumper writes each interim stage result to a numbered file.
type stageDumper struct {
	dir    string
	seq    int
	logger *slog.Logger
}

func newStageDumper(dir string, logger *slog.Logger) (*stageDumper, error) {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating dump directory: %w", err)
	}
	return &stageDumper{dir: dir, logger: logger}, nil
}

// Dump is a qaguide.Inspector. Write failures are logged, never fatal.
func (d *stageDumper) Dump(stage qaguide.Stage, content string) {
	d.seq++
	path := filepath.Join(d.dir, fmt.Sprintf("%02d-%s.html", d.seq, stage))
	if err := os.WriteFile(path, []byte(content), filePermissions); err != nil {
		d.logger.Warn("writing stage dump", "path", path, "error", err.Error())
		return
	}
	d.logger.Debug("stage dumped", "stage", string(stage), "path", path)
}
