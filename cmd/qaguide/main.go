package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := DefaultEnv()
	warnUnknownEnvVars(env.Stderr)

	if err := run(ctx, os.Args[1:], env); err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		stop()
		os.Exit(exitCodeFor(err))
	}
}

// run dispatches to the command named by args[0]. Without a command, or
// when args[0] is a flag, build runs.
func run(ctx context.Context, args []string, env *Environment) error {
	cmd, rest := "build", args
	if len(args) > 0 && !isFlag(args[0]) {
		cmd, rest = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "build":
		err = runBuild(ctx, rest, env)
	case "check":
		err = runCheck(rest, env)
	case "watch":
		err = runWatch(ctx, rest, env)
	case "init":
		err = runInit(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "qaguide %s\n", Version)
		return nil
	case "help", "-h", "--help":
		runHelp(rest, env)
		return nil
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func isFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-' && arg != "--version" && arg != "--help" && arg != "-h"
}
