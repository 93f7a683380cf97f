// Package main is the entry point for the canvasedit command.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/canvasedit/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	opts := app.Options{ScriptOutput: os.Stdout}
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.InputPath, "in", "", "Document to open (JSON)")
	flag.StringVar(&opts.InputPath, "i", "", "Document to open (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua script to run against the document")
	flag.StringVar(&opts.ScriptPath, "s", "", "Lua script to run (shorthand)")
	flag.StringVar(&opts.OutputPath, "out", "", "Write the edited document as JSON")
	flag.StringVar(&opts.OutputPath, "o", "", "Write the edited document as JSON (shorthand)")
	flag.StringVar(&opts.PDFPath, "pdf", "", "Write the edited document as PDF")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.Watch, "watch", false, "Re-run the script whenever the config file changes")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Refuse all edits")
	flag.BoolVar(&opts.ReadOnly, "R", false, "Refuse all edits (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "canvasedit - scriptable canvas document editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: canvasedit [options] [document.json]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  canvasedit -s layout.lua -o out.json          Edit a new document\n")
		fmt.Fprintf(os.Stderr, "  canvasedit -s layout.lua -pdf out.pdf in.json  Edit and export to PDF\n")
		fmt.Fprintf(os.Stderr, "  canvasedit -c edit.toml -s layout.lua -watch   Re-run on config change\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("canvasedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	// A positional argument names the input document.
	if opts.InputPath == "" && flag.NArg() > 0 {
		opts.InputPath = flag.Arg(0)
	}

	return opts
}
