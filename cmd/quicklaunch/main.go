package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"quicklaunch/internal/calc"
	"quicklaunch/internal/catalog"
	"quicklaunch/internal/config"
	"quicklaunch/internal/discovery"
	"quicklaunch/internal/eventbus"
	"quicklaunch/internal/launch"
	"quicklaunch/internal/logging"
	"quicklaunch/internal/query"
	"quicklaunch/internal/ui"
)

// rootList collects a repeatable -root flag
type rootList []string

func (r *rootList) String() string {
	return strings.Join(*r, ",")
}

func (r *rootList) Set(value string) error {
	*r = append(*r, value)
	return nil
}

type options struct {
	configPath string
	initConfig bool
	logPath    string
	debug      bool
	list       bool
	query      string
	hasQuery   bool
	roots      rootList
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("quicklaunch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to the config file")
	fs.BoolVar(&opts.initConfig, "init-config", false, "Write the default config file and exit")
	fs.StringVar(&opts.logPath, "log", "", "Path to the log file")
	fs.BoolVar(&opts.debug, "debug", false, "Log at debug level")
	fs.BoolVar(&opts.list, "list", false, "Page through the application catalog")
	fs.StringVar(&opts.query, "query", "", "Print the rows matching a query and exit")
	fs.Var(&opts.roots, "root", "Application directory to search (repeatable, replaces the defaults)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "query" {
			opts.hasQuery = true
		}
	})

	return opts, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// Load configuration
	configSvc := config.NewConfigService(opts.configPath)
	if opts.initConfig {
		if err := configSvc.Save(config.DefaultConfig()); err != nil {
			fmt.Fprintf(stderr, "Error writing config: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Config written to %s\n", configSvc.Path())
		return 0
	}

	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	// Set up logging
	logPath := opts.logPath
	if logPath == "" {
		logPath = cfg.Log.File
	}
	logger, logFile, err := logging.Open(logging.Options{Path: logPath, Level: cfg.Log.Level, Debug: opts.debug})
	if err != nil {
		fmt.Fprintf(stderr, "Could not open log file: %v\n", err)
		logger = logging.Discard()
	} else {
		defer logFile.Close()
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New(logger)
	defer bus.Close()
	subscribeLogging(bus, logger)

	// Build the catalog before accepting input
	roots := searchRoots(cfg, opts.roots)
	logger.Debug("search roots", "roots", roots)
	cat, _ := discovery.NewBuilder(bus, logger, cfg.Discovery.Extension).Build(ctx, roots)

	if opts.list {
		if err := ui.ShowInPager(ui.CatalogTable(cat.Applications(), cfg.UI.ShowIcons)); err != nil {
			fmt.Fprintf(stderr, "Error running pager: %v\n", err)
			return 1
		}
		return 0
	}

	session := query.NewSession(cat, evaluator(cfg))

	if opts.hasQuery {
		session.SetQuery(opts.query)
		if err := ui.WriteRows(stdout, session.View(), cfg.UI.ShowIcons); err != nil {
			fmt.Fprintf(stderr, "Error writing rows: %v\n", err)
			return 1
		}
		return 0
	}

	return runUI(ctx, cfg, cat, session, bus, logger, stderr)
}

func runUI(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, session *query.Session, bus eventbus.EventBus, logger *log.Logger, stderr io.Writer) int {
	dispatcher := launch.NewDispatcher(bus, logger, nil)
	// the spawn must happen before the process exits
	defer dispatcher.Close()

	model := ui.NewModel(session, dispatcher, ui.SystemClipboard{}, bus, logger, ui.Options{
		CloseOnCommit: cfg.UI.CloseOnCommit,
		MaxRows:       cfg.UI.MaxRows,
		ShowIcons:     cfg.UI.ShowIcons,
		Placeholder:   cfg.UI.Placeholder,
	})

	logger.Info("starting UI", "apps", cat.Len())
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("error running program", "err", err)
		fmt.Fprintf(stderr, "Error running program: %v\n", err)
		return 1
	}
	logger.Info("UI exited", "commit", model.LastCommit().Kind)

	return 0
}

// searchRoots returns the -root flags when given, otherwise the XDG
// application directories followed by the configured extra roots.
func searchRoots(cfg *config.Config, override []string) []string {
	if len(override) > 0 {
		return override
	}
	roots := discovery.RootsFor(cfg.Discovery.DataDirs)
	return append(roots, cfg.Discovery.ExtraRoots...)
}

func evaluator(cfg *config.Config) query.Evaluator {
	if !cfg.Calculator.Enabled {
		return nil
	}
	return calc.Evaluate
}

func subscribeLogging(bus eventbus.EventBus, logger *log.Logger) {
	bus.Subscribe(eventbus.EventCatalogBuilt, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.CatalogBuiltEvent)
		logger.Debug("catalog ready", "files", ev.Stats.Files, "entries", ev.Stats.Entries)
	})
	bus.Subscribe(eventbus.EventAppLaunched, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.AppLaunchedEvent)
		logger.Debug("app launched", "program", ev.Program, "pid", ev.PID)
	})
	bus.Subscribe(eventbus.EventLaunchFailed, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.LaunchFailedEvent)
		logger.Debug("launch failed", "program", ev.Program, "err", ev.Err)
	})
	bus.Subscribe(eventbus.EventResultCopied, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.ResultCopiedEvent)
		logger.Debug("result copied", "value", ev.Value)
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.ErrorEvent)
		logger.Warn(ev.Message, "err", ev.Err)
	})
}
