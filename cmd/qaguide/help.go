package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: qaguide <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Rebuild the guide from the markup source (default)")
	fmt.Fprintln(w, "  check      Validate the source and the document without writing")
	fmt.Fprintln(w, "  watch      Rebuild whenever the source or vocabulary changes")
	fmt.Fprintln(w, "  init       Create a starter document, vocabulary and config")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'qaguide help <command>' for details on a specific command.")
}

// printDocumentFlags prints the flags shared by build, check and watch.
func printDocumentFlags(w io.Writer) {
	fmt.Fprintln(w, "Files:")
	fmt.Fprintln(w, "  -s, --source <path>       Markup source file (default: guide.txt)")
	fmt.Fprintln(w, "  -d, --document <path>     HTML guide to rewrite (default: guide.html)")
	fmt.Fprintln(w, "  -k, --keywords <path>     Keyword vocabulary (default: embedded)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markup:")
	fmt.Fprintln(w, "  -g, --grammar <s>         Grammar: classic (Q/A), extended (Q,P,J,H / A,D)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --container <s>       Content container: tag name or #id (default: main)")
	fmt.Fprintln(w, "      --index-marker <s>    Text opening the index literal (default: \"var keywords = {\")")
	fmt.Fprintln(w, "      --index-shape <s>     Index shape: category, alphabetical")
	fmt.Fprintln(w, "      --index-indent <n>    Extra spaces for index literal lines (default: 6)")
	fmt.Fprintln(w, "      --lenient             Skip stages whose target is missing")
}

// printOutputFlags prints the logging flags.
func printOutputFlags(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: qaguide build [source] [document] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rebuild the guide: validate the source, replace the container content,")
	fmt.Fprintln(w, "highlight keywords, rewrite the keyword index and normalize the output.")
	fmt.Fprintln(w)
	printDocumentFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write:")
	fmt.Fprintln(w, "      --backups <n>         Backups kept next to the document (default: 5)")
	fmt.Fprintln(w, "      --no-backup           Do not back up the document")
	fmt.Fprintln(w, "  -n, --dry-run             Print the result instead of writing it")
	fmt.Fprintln(w, "      --dump <dir>          Write every interim stage result to dir")
	printOutputFlags(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: qaguide check [source] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validate tag alternation in the source. If the document exists, also")
	fmt.Fprintln(w, "check that it has the content container and the keyword index script.")
	fmt.Fprintln(w)
	printDocumentFlags(w)
	printOutputFlags(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: qaguide watch [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build once, then rebuild whenever the source or vocabulary file changes.")
	fmt.Fprintln(w, "Accepts every build flag.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --debounce <d>        Delay before rebuilding (default: 200ms)")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: qaguide init [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create a starter document, vocabulary and config. Existing files are kept.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -d, --document <path>     Starter document (default: guide.html)")
	fmt.Fprintln(w, "  -k, --keywords <path>     Starter vocabulary (default: keywords.yaml)")
	fmt.Fprintln(w, "  -c, --config <path>       Starter config (default: qaguide.yaml)")
}

// printEnvironment prints the recognized environment variables.
func printEnvironment(w io.Writer) {
	fmt.Fprintln(w, "Usage: qaguide help env")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables override the config file; flags override both.")
	fmt.Fprintln(w, "A .env file in the working directory is loaded automatically.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  QAGUIDE_CONFIG        Config file name or path")
	fmt.Fprintln(w, "  QAGUIDE_SOURCE        Markup source file")
	fmt.Fprintln(w, "  QAGUIDE_DOCUMENT      HTML guide")
	fmt.Fprintln(w, "  QAGUIDE_KEYWORDS      Vocabulary file")
	fmt.Fprintln(w, "  QAGUIDE_GRAMMAR       classic, extended")
	fmt.Fprintln(w, "  QAGUIDE_CONTAINER     Tag name or #id")
	fmt.Fprintln(w, "  QAGUIDE_STRICT        true, false")
	fmt.Fprintln(w, "  QAGUIDE_BACKUP_KEEP   Backups kept (0 disables)")
	fmt.Fprintln(w, "  QAGUIDE_LOG_LEVEL     debug, info, warn, error")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "env":
		printEnvironment(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: qaguide version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: qaguide help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
