package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"quicksearch/internal/eventbus"
)

// Match modes for plain queries
const (
	MatchSubstring = "substring"
	MatchFuzzy     = "fuzzy"
)

// CurrentVersion is written into new config files
const CurrentVersion = 1

// Config represents the application configuration
type Config struct {
	Version    int            `toml:"version"`
	UISettings UISettings     `toml:"ui"`
	Search     SearchSettings `toml:"search"`
	Index      IndexSettings  `toml:"index"`
	Bangs      []Bang         `toml:"bangs,omitempty"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	MaxResults int  `toml:"max_results"` // rows per page
	LinkSlot   bool `toml:"link_slot"`   // reserve a row for the website/bang suggestion
	ShowHints  bool `toml:"show_hints"`
}

// SearchSettings configures the file index and matching
type SearchSettings struct {
	DefaultDirs            []string `toml:"default_dirs"`
	ExtendedDirs           []string `toml:"extended_dirs"`
	ExcludeFromDefault     Rules    `toml:"exclude_from_default"`
	Exclude                Rules    `toml:"exclude"`
	MatchMode              string   `toml:"match_mode"`
	MaxWorkersPercent      float64  `toml:"max_workers_percent"`
	DefaultRefreshSeconds  int      `toml:"default_refresh_seconds"`
	ExtendedRefreshSeconds int      `toml:"extended_refresh_seconds"`
	MaxResults             int      `toml:"max_results"` // backend result cap
	Watch                  bool     `toml:"watch"`
}

// Rules select directories by base name, exact path or regular expression
type Rules struct {
	Name  []string `toml:"name,omitempty"`
	Path  []string `toml:"path,omitempty"`
	Regex []string `toml:"regex,omitempty"`
}

// IndexSettings configures the on-disk index snapshot
type IndexSettings struct {
	CachePath string `toml:"cache_path"`
}

// Bang adds or overrides a bang shortcut
type Bang struct {
	Trigger string `toml:"trigger"`
	Service string `toml:"service"`
	URL     string `toml:"url"`
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

// DefaultPath returns $XDG_CONFIG_HOME/quicksearch/config.toml
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
	return filepath.Join(configDir, "quicksearch", "config.toml")
}

// NewConfigService creates a config service for path, or DefaultPath when empty
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

// Load reads the config file, writing the defaults first when it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := cs.Save(cfg); err != nil {
			return nil, err
		}
		cs.publishLoaded()
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	cs.publishLoaded()
	return cfg, nil
}

func (cs *configService) publishLoaded() {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
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

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
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

// Validate rejects settings the rest of the program cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.UISettings.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("ui.max_results must be positive, got %d", c.UISettings.MaxResults))
	}
	if c.Search.MaxResults < 0 {
		errs = append(errs, fmt.Errorf("search.max_results must not be negative, got %d", c.Search.MaxResults))
	}
	switch c.Search.MatchMode {
	case MatchSubstring, MatchFuzzy:
	default:
		errs = append(errs, fmt.Errorf("search.match_mode must be %q or %q, got %q", MatchSubstring, MatchFuzzy, c.Search.MatchMode))
	}
	if c.Search.MaxWorkersPercent <= 0 || c.Search.MaxWorkersPercent > 1 {
		errs = append(errs, fmt.Errorf("search.max_workers_percent must be in (0, 1], got %v", c.Search.MaxWorkersPercent))
	}
	if c.Search.DefaultRefreshSeconds < 0 || c.Search.ExtendedRefreshSeconds < 0 {
		errs = append(errs, errors.New("search refresh intervals must not be negative"))
	}
	for _, rules := range []Rules{c.Search.Exclude, c.Search.ExcludeFromDefault} {
		for _, pattern := range rules.Regex {
			if _, err := regexp.Compile(pattern); err != nil {
				errs = append(errs, fmt.Errorf("invalid exclude regex %q: %w", pattern, err))
			}
		}
	}
	for i, b := range c.Bangs {
		if b.Trigger == "" || strings.ContainsAny(b.Trigger, "! \t") {
			errs = append(errs, fmt.Errorf("bangs[%d]: invalid trigger %q", i, b.Trigger))
		}
		if !strings.Contains(b.URL, "{{{s}}}") {
			errs = append(errs, fmt.Errorf("bangs[%d]: url must contain {{{s}}}", i))
		}
	}

	return errors.Join(errs...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	home := strings.TrimSuffix(homeDir, string(filepath.Separator)) + string(filepath.Separator)

	return &Config{
		Version: CurrentVersion,
		UISettings: UISettings{
			MaxResults: 6,
			LinkSlot:   true,
			ShowHints:  true,
		},
		Search: SearchSettings{
			DefaultDirs:  []string{home},
			ExtendedDirs: []string{string(filepath.Separator)},
			ExcludeFromDefault: Rules{
				Regex: []string{"^" + regexp.QuoteMeta(home) + `\.[^/]+/?$`},
			},
			Exclude: Rules{
				Name: []string{".git", "node_modules", "steamapps"},
				Path: []string{"/proc/", "/sys/", "/dev/", "/run/"},
			},
			MatchMode:              MatchSubstring,
			MaxWorkersPercent:      0.25,
			DefaultRefreshSeconds:  120,
			ExtendedRefreshSeconds: 1800,
			MaxResults:             200,
			Watch:                  true,
		},
		Index: IndexSettings{
			CachePath: defaultCachePath(),
		},
	}
}

func defaultCachePath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = filepath.Join(os.TempDir(), "quicksearch-cache")
	}
	return filepath.Join(cacheDir, "quicksearch", "index.db")
}
