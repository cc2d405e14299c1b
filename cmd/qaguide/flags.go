package main

import (
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags holds the files a command reads or rewrites.
type inputFlags struct {
	source   string
	document string
	keywords string
}

// markupFlags holds source grammar flags.
type markupFlags struct {
	grammar string
}

// documentFlags holds output document structure flags.
type documentFlags struct {
	container string
	marker    string
	shape     string
	indent    int
	lenient   bool
}

// backupFlags holds backup rotation flags.
type backupFlags struct {
	keep     int
	disabled bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common   commonFlags
	input    inputFlags
	markup   markupFlags
	document documentFlags
	backup   backupFlags
	dryRun   bool   // print the result instead of writing it
	dumpDir  string // write every interim stage result here
}

// watchFlags holds flags for the watch command.
type watchFlags struct {
	build    buildFlags
	debounce time.Duration
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common   commonFlags
	input    inputFlags
	markup   markupFlags
	document documentFlags
}

// initFlags holds flags for the init command.
type initFlags struct {
	document string
	keywords string
	config   string
}

// indentUnset detects if --indent was explicitly set, since 0 is valid.
const indentUnset = -1

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addInputFlags adds source, document and vocabulary flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVarP(&f.source, "source", "s", "", "markup source file")
	fs.StringVarP(&f.document, "document", "d", "", "HTML guide to rewrite")
	fs.StringVarP(&f.keywords, "keywords", "k", "", "keyword vocabulary file (YAML)")
}

// addMarkupFlags adds grammar flags to a FlagSet.
func addMarkupFlags(fs *flag.FlagSet, f *markupFlags) {
	fs.StringVarP(&f.grammar, "grammar", "g", "", "source grammar: classic, extended")
}

// addDocumentFlags adds document structure flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.container, "container", "", "content container: tag name or #id")
	fs.StringVar(&f.marker, "index-marker", "", "text opening the keyword index literal")
	fs.StringVar(&f.shape, "index-shape", "", "index shape: category, alphabetical")
	fs.IntVar(&f.indent, "index-indent", indentUnset, "extra spaces for index literal lines")
	fs.BoolVar(&f.lenient, "lenient", false, "skip stages whose target is missing instead of failing")
}

// addBackupFlags adds backup rotation flags to a FlagSet.
func addBackupFlags(fs *flag.FlagSet, f *backupFlags) {
	fs.IntVar(&f.keep, "backups", 0, "backups kept next to the document")
	fs.BoolVar(&f.disabled, "no-backup", false, "do not back up the document")
}

// registerBuildFlags adds every build flag to fs.
func registerBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addMarkupFlags(fs, &f.markup)
	addDocumentFlags(fs, &f.document)
	addBackupFlags(fs, &f.backup)
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "print the result instead of writing it")
	fs.StringVar(&f.dumpDir, "dump", "", "directory for interim stage results")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	f := &buildFlags{}
	registerBuildFlags(fs, f)

	fs.SetOutput(usage)
	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags.
func parseWatchFlags(args []string, usage io.Writer) (*watchFlags, error) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	f := &watchFlags{}
	registerBuildFlags(fs, &f.build)
	fs.DurationVar(&f.debounce, "debounce", defaultDebounce, "delay before rebuilding after a change")

	fs.SetOutput(usage)
	fs.Usage = func() { printWatchUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: watch takes no arguments", ErrUsage)
	}
	if f.debounce <= 0 {
		return nil, fmt.Errorf("%w: --debounce must be positive", ErrUsage)
	}
	return f, nil
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string, usage io.Writer) (*checkFlags, []string, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	f := &checkFlags{}
	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addMarkupFlags(fs, &f.markup)
	addDocumentFlags(fs, &f.document)

	fs.SetOutput(usage)
	fs.Usage = func() { printCheckUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags.
func parseInitFlags(args []string, usage io.Writer) (*initFlags, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	f := &initFlags{}
	fs.StringVarP(&f.document, "document", "d", "guide.html", "starter document to create")
	fs.StringVarP(&f.keywords, "keywords", "k", "keywords.yaml", "starter vocabulary to create")
	fs.StringVarP(&f.config, "config", "c", "qaguide.yaml", "starter config to create")

	fs.SetOutput(usage)
	fs.Usage = func() { printInitUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: init takes no arguments", ErrUsage)
	}
	return f, nil
}

// usageError marks flag parse failures as usage errors. Help requests pass through.
func usageError(err error) error {
	if err == flag.ErrHelp {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
