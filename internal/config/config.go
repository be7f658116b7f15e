package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"pageloop/internal/eventbus"
	"pageloop/internal/scrollview"
	"pageloop/internal/scrollview/autoscroll"
	"pageloop/internal/scrollview/geom"
)

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Deck    DeckSettings   `toml:"deck"`
	Scroll  ScrollSettings `toml:"scroll"`
	UI      UISettings     `toml:"ui"`
	Debug   DebugSettings  `toml:"debug"`
}

// DeckSettings says where slides come from
type DeckSettings struct {
	Dir        string   `toml:"dir"`
	Extensions []string `toml:"extensions"`
	MaxDepth   int      `toml:"max_depth"`
	Watch      bool     `toml:"watch"`
}

// ScrollSettings mirrors the carousel widget settings
type ScrollSettings struct {
	Orientation         string  `toml:"orientation"`
	AutoScrollDirection string  `toml:"auto_scroll_direction"`
	IntervalSeconds     float64 `toml:"interval_seconds"`
	Wrap                bool    `toml:"wrap"`
	Tap                 bool    `toml:"tap"`
	AnimationSeconds    float64 `toml:"animation_seconds"`
	TimingCurve         string  `toml:"timing_curve"`
	AutoStart           bool    `toml:"autostart"`
	RestartAfterDrag    bool    `toml:"restart_after_drag"`
	FlickPagesPerSecond float64 `toml:"flick_pages_per_second"`
	StartPage           int     `toml:"start_page"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowIndicator bool `toml:"show_indicator"`
	ShowBorder    bool `toml:"show_border"`
	ShowHelp      bool `toml:"show_help"`
}

// DebugSettings controls diagnostic logging
type DebugSettings struct {
	Debug   bool `toml:"debug"`
	Verbose bool `toml:"verbose"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath is the config file location under the user config directory
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "pageloop", "config.toml")
}

// NewConfigService creates a config service reading path. An empty path
// means DefaultPath.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields the defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:    cs.filePath,
			DeckDir: cfg.Deck.Dir,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	sv := scrollview.DefaultConfig()
	return &Config{
		Version: 1,
		Deck: DeckSettings{
			Dir:        ".",
			Extensions: []string{".md", ".txt"},
			MaxDepth:   2,
			Watch:      true,
		},
		Scroll: ScrollSettings{
			Orientation:         sv.ScrollDirection.String(),
			AutoScrollDirection: sv.AutoScrollDirection.String(),
			IntervalSeconds:     sv.Interval.Seconds(),
			Wrap:                sv.ShouldWrap,
			Tap:                 sv.TapEnabled,
			AnimationSeconds:    sv.AnimationDuration.Seconds(),
			TimingCurve:         sv.TimingCurve.String(),
			FlickPagesPerSecond: sv.FlickVelocity,
		},
		UI: UISettings{
			ShowIndicator: true,
			ShowBorder:    true,
			ShowHelp:      true,
		},
	}
}

// Validate checks every enumerated and numeric setting
func (c *Config) Validate() error {
	var errs []error
	if _, err := geom.ParseOrientation(c.Scroll.Orientation); err != nil {
		errs = append(errs, err)
	}
	if _, err := autoscroll.ParseDirection(c.Scroll.AutoScrollDirection); err != nil {
		errs = append(errs, err)
	}
	if _, err := scrollview.ParseTimingCurve(c.Scroll.TimingCurve); err != nil {
		errs = append(errs, err)
	}
	if c.Scroll.IntervalSeconds < 0 {
		errs = append(errs, fmt.Errorf("interval_seconds must not be negative, got %v", c.Scroll.IntervalSeconds))
	}
	if c.Scroll.AnimationSeconds < 0 {
		errs = append(errs, fmt.Errorf("animation_seconds must not be negative, got %v", c.Scroll.AnimationSeconds))
	}
	if c.Scroll.StartPage < 0 {
		errs = append(errs, fmt.Errorf("start_page must not be negative, got %d", c.Scroll.StartPage))
	}
	if c.Deck.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.Deck.MaxDepth))
	}
	for _, ext := range c.Deck.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("extension %q must start with a dot", ext))
		}
	}
	return errors.Join(errs...)
}

// ToScrollView maps the settings onto the widget configuration. Call
// Validate first; unparsable values fall back to the widget defaults.
func (c *Config) ToScrollView() scrollview.Config {
	sv := scrollview.DefaultConfig()
	if o, err := geom.ParseOrientation(c.Scroll.Orientation); err == nil {
		sv.ScrollDirection = o
	}
	if d, err := autoscroll.ParseDirection(c.Scroll.AutoScrollDirection); err == nil {
		sv.AutoScrollDirection = d
	}
	if tc, err := scrollview.ParseTimingCurve(c.Scroll.TimingCurve); err == nil {
		sv.TimingCurve = tc
	}
	if c.Scroll.IntervalSeconds > 0 {
		sv.Interval = seconds(c.Scroll.IntervalSeconds)
	}
	if c.Scroll.FlickPagesPerSecond > 0 {
		sv.FlickVelocity = c.Scroll.FlickPagesPerSecond
	}
	sv.AnimationDuration = seconds(c.Scroll.AnimationSeconds)
	sv.ShouldWrap = c.Scroll.Wrap
	sv.TapEnabled = c.Scroll.Tap
	sv.RestartAutoScrollAfterDrag = c.Scroll.RestartAfterDrag
	sv.PageIndex = c.Scroll.StartPage
	sv.Debug = c.Debug.Debug
	sv.VerboseDebug = c.Debug.Verbose
	return sv
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
