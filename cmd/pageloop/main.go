package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"pageloop/internal/config"
	"pageloop/internal/discovery"
	"pageloop/internal/eventbus"
	"pageloop/internal/ui"
	"pageloop/internal/watcher"
)

// CLI defines the command-line interface
type CLI struct {
	Dir        string        `arg:"" optional:"" type:"path" help:"Directory holding the slides (default: deck.dir from the config, then the current directory)"`
	Config     string        `short:"c" type:"path" help:"Config file (default: ~/.config/pageloop/config.toml)"`
	Vertical   bool          `help:"Scroll pages vertically"`
	NoWrap     bool          `name:"no-wrap" help:"Stop at the first and last page instead of looping"`
	Interval   time.Duration `help:"Auto-scroll interval, e.g. 5s"`
	AutoScroll bool          `name:"autoscroll" short:"a" help:"Start auto-scrolling as soon as slides are loaded"`
	Debug      bool          `help:"Log page changes and refused scrolls"`
	Verbose    bool          `help:"Log every offset change and state transition"`
	LogFile    string        `name:"log-file" default:"pageloop.log" type:"path" help:"Where log output goes"`
}

// forwarded are the bus events the UI reacts to
var forwarded = []eventbus.EventType{
	eventbus.EventScanStarted,
	eventbus.EventSlideDiscovered,
	eventbus.EventScanCompleted,
	eventbus.EventDeckChanged,
	eventbus.EventError,
	eventbus.EventConfigLoaded,
	eventbus.EventConfigSaved,
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("pageloop"),
		kong.Description("A looping, paginated slide carousel for the terminal."),
		kong.UsageOnError(),
	)

	// Set up logging; the terminal belongs to the UI
	logFile, err := tea.LogToFile(cli.LogFile, "pageloop")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(cli.Config, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := applyFlags(cfg, &cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Deck directory: %s", cfg.Deck.Dir)

	discoverySvc := discovery.NewDiscoveryService(bus, discovery.Options{
		Extensions: cfg.Deck.Extensions,
		MaxDepth:   cfg.Deck.MaxDepth,
	})

	zones := zone.New()
	uiModel := ui.NewModel(bus, cfg,
		ui.WithConfigService(configSvc),
		ui.WithDiscovery(discoverySvc),
		ui.WithContext(ctx),
		ui.WithZones(zones),
	)

	p := tea.NewProgram(uiModel,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	uiModel.SetProgram(p)

	// Forward domain events to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	for _, t := range forwarded {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			default:
				log.Println("Event channel full, dropping event")
			}
		})
	}
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-ctx.Done():
				return
			}
		}
	}()

	if cfg.Debug.Debug {
		bus.Subscribe(eventbus.EventPageChanged, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.PageChangedEvent)
			log.Printf("page %d (direction %+d)", ev.Index, ev.Direction)
		})
		bus.Subscribe(eventbus.EventPageTapped, func(e eventbus.DomainEvent) {
			log.Printf("page %d tapped", e.(eventbus.PageTappedEvent).Index)
		})
	}

	if cfg.Deck.Watch {
		w, err := watcher.New(bus, cfg.Deck.Dir, cfg.Deck.Extensions, cfg.Deck.MaxDepth)
		if err != nil {
			log.Printf("Not watching %s: %v", cfg.Deck.Dir, err)
		} else {
			defer w.Close()
			go func() {
				if err := w.Run(ctx); err != nil {
					log.Printf("Watcher stopped: %v", err)
				}
			}()
		}
	}

	if err := discoverySvc.StartScan(ctx, cfg.Deck.Dir); err != nil {
		log.Printf("Initial scan failed: %v", err)
	}

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	cancel()
	discoverySvc.StopScan()
}

// applyFlags lets command-line flags override the config file
func applyFlags(cfg *config.Config, cli *CLI) error {
	if cli.Dir != "" {
		cfg.Deck.Dir = cli.Dir
	}
	if cfg.Deck.Dir == "" {
		cfg.Deck.Dir = "."
	}
	abs, err := filepath.Abs(cfg.Deck.Dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", cfg.Deck.Dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("deck directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("deck directory %s is not a directory", abs)
	}
	cfg.Deck.Dir = abs

	if cli.Vertical {
		cfg.Scroll.Orientation = "vertical"
	}
	if cli.NoWrap {
		cfg.Scroll.Wrap = false
	}
	if cli.Interval > 0 {
		cfg.Scroll.IntervalSeconds = cli.Interval.Seconds()
	}
	if cli.AutoScroll {
		cfg.Scroll.AutoStart = true
	}
	if cli.Debug {
		cfg.Debug.Debug = true
	}
	if cli.Verbose {
		cfg.Debug.Debug = true
		cfg.Debug.Verbose = true
	}
	return cfg.Validate()
}
