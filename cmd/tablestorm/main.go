// Package main is a terminal demo host for the tablestorm extension. It
// parses an HTML document, renders its tables as a character grid, and feeds
// tcell mouse and key events into the editor. One terminal cell maps to one
// document unit.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/tablestorm"
	"github.com/dshills/tablestorm/internal/logging"
	"github.com/dshills/tablestorm/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	log, err := newLogger(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	app, err := newApp(opts, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer app.Shutdown()

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type options struct {
	ConfigPath string
	ScriptPath string
	LogLevel   string
	LogFile    string
	File       string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Path to a Lua extension script")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to a file instead of discarding them")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Tablestorm demo - drag-resizable tables in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tablestorm [options] [file.html]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: q quit, t insert table, Esc dismiss menu\n")
		fmt.Fprintf(os.Stderr, "Mouse: drag cell borders to resize, right-click for the menu\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Tablestorm %s (%s)\n", version, commit)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", opts.LogLevel)
		os.Exit(1)
	}

	if args := flag.Args(); len(args) > 0 {
		opts.File = args[0]
	}
	return opts
}

// newLogger builds the demo logger. The terminal owns stderr, so logs go to
// a file when requested and nowhere otherwise.
func newLogger(opts options) (*logging.Logger, error) {
	if opts.LogFile == "" {
		return logging.Nop(), nil
	}
	f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(opts.LogLevel),
		Output: f,
		Prefix: "tablestorm",
	}), nil
}

// loadScript loads the Lua extension when one is configured.
func loadScript(opts options, log *logging.Logger) (*script.Engine, error) {
	if opts.ScriptPath == "" {
		return nil, nil
	}
	eng := script.New(log)
	if err := eng.LoadFile(opts.ScriptPath); err != nil {
		eng.Close()
		return nil, err
	}
	return eng, nil
}

// demoConfig scales the editor's size floors to terminal cells.
func demoConfig() tablestorm.Config {
	cfg := tablestorm.DefaultConfig()
	cfg.HandleSize = 1
	cfg.MinColumnWidth = 5
	cfg.MinRowHeight = 2
	cfg.MinTableWidth = 10
	cfg.MinTableHeight = 3
	return cfg
}
