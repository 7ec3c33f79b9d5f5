package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/regexfu/internal/app"
	"github.com/kk-code-lab/regexfu/internal/config"
	fsutil "github.com/kk-code-lab/regexfu/internal/fs"
	"github.com/kk-code-lab/regexfu/internal/logging"
	"github.com/kk-code-lab/regexfu/internal/match"
	renderui "github.com/kk-code-lab/regexfu/internal/ui/render"
	flag "github.com/spf13/pflag"
)

var version = "dev"

type cliOptions struct {
	configPath  string
	engine      string
	flags       string
	pattern     string
	subject     string
	subjectFile string
	logFile     string
	logLevel    string
	watch       bool
	print       bool
	showVersion bool
	help        bool
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, `regexfu - interactive regular expression tester

USAGE:
    regexfu [OPTIONS]

OPTIONS:
%s
KEYS:
    Enter / Ctrl+F   first match       Ctrl+N / F3   next match
    Alt+i/m/s/x      toggle modifiers  Alt+Up/Down   pattern history
    Ctrl+Y           copy result       F1            help
`, fs.FlagUsages())
}

func newFlagSet(opts *cliOptions) *flag.FlagSet {
	fs := flag.NewFlagSet("regexfu", flag.ContinueOnError)
	fs.StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	fs.StringVarP(&opts.engine, "engine", "e", "", "Regex engine (regexp2 or re2)")
	fs.StringVarP(&opts.flags, "flags", "f", "", "Initial modifiers, any of \"imsx\"")
	fs.StringVarP(&opts.pattern, "pattern", "p", "", "Initial pattern")
	fs.StringVarP(&opts.subject, "subject", "s", "", "Initial subject text")
	fs.StringVar(&opts.subjectFile, "subject-file", "", "Load the subject from a file")
	fs.BoolVarP(&opts.watch, "watch", "w", false, "Reload --subject-file when it changes")
	fs.BoolVar(&opts.print, "print", false, "Print every match of --pattern and exit")
	fs.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	fs.BoolVarP(&opts.showVersion, "version", "v", false, "Print version and exit")
	fs.BoolVarP(&opts.help, "help", "h", false, "Show this help message and exit")
	fs.SortFlags = false
	return fs
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts cliOptions
	fs := newFlagSet(&opts)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		printUsage(stderr, fs)
		return 2
	}
	if opts.help {
		printUsage(stdout, fs)
		return 0
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "regexfu %s\n", version)
		return 0
	}

	cfg, err := loadConfig(&opts, fs)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	logger, closer, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error setting up logging: %v\n", err)
		return 1
	}
	defer func() {
		_ = closer.Close()
	}()

	subject := opts.subject
	if opts.subjectFile != "" {
		if subject, err = fsutil.LoadSubject(opts.subjectFile); err != nil {
			fmt.Fprintf(stderr, "Error loading subject: %v\n", err)
			return 1
		}
	}

	engine, err := match.NewEngine(cfg.Engine, cfg.EngineOptions())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.print {
		return printMatches(stdout, stderr, engine, cfg.InitialFlags(), opts.pattern, subject, logger)
	}

	theme, err := renderui.GetColorTheme().WithColorNames(cfg.Colors.Matches, cfg.Colors.Brace, cfg.Colors.Error)
	if err != nil {
		fmt.Fprintf(stderr, "Error in colour configuration: %v\n", err)
		return 1
	}

	// Fall back to UTF-8 so non-ASCII subjects display on minimal terminals.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app, err := apppkg.NewApplication(apppkg.Options{
		Engine:      engine,
		Flags:       cfg.InitialFlags(),
		Logger:      logger,
		Theme:       &theme,
		Version:     version,
		TabWidth:    cfg.TabWidth,
		Pattern:     opts.pattern,
		Subject:     subject,
		SubjectPath: opts.subjectFile,
		Watch:       cfg.WatchSubject,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error initializing application: %v\n", err)
		return 1
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	return 0
}

// loadConfig reads the config file and environment, then applies the flags
// the user set explicitly.
func loadConfig(opts *cliOptions, fs *flag.FlagSet) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if fs.Changed("engine") {
		cfg.Engine = opts.engine
	}
	if fs.Changed("flags") {
		cfg.Flags = opts.flags
	}
	if fs.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if fs.Changed("watch") {
		cfg.WatchSubject = opts.watch
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if cfg.WatchSubject && opts.subjectFile == "" && fs.Changed("watch") {
		return nil, fmt.Errorf("--watch requires --subject-file")
	}
	return cfg, nil
}
