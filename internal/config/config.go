package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// CurrentVersion is the version written to new config files
const CurrentVersion = 1

// ErrNotFound is returned by LoadFromPath when the file does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version    int                `toml:"version"`
	Discovery  DiscoverySettings  `toml:"discovery"`
	Calculator CalculatorSettings `toml:"calculator"`
	UI         UISettings         `toml:"ui"`
	Log        LogSettings        `toml:"log"`
}

// DiscoverySettings controls where desktop entries are searched for
type DiscoverySettings struct {
	DataDirs   []string `toml:"data_dirs,omitempty"`   // replaces the XDG data dirs when set
	ExtraRoots []string `toml:"extra_roots,omitempty"` // application directories searched as is
	Extension  string   `toml:"extension"`
}

// CalculatorSettings controls the arithmetic result row
type CalculatorSettings struct {
	Enabled bool `toml:"enabled"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	CloseOnCommit bool   `toml:"close_on_commit"`
	MaxRows       int    `toml:"max_rows"`
	ShowIcons     bool   `toml:"show_icons"`
	Placeholder   string `toml:"placeholder"`
}

// LogSettings selects the log file and level
type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
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
	filePath string
}

// NewConfigService creates a config service for path. An empty path means
// DefaultPath().
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/quicklaunch/config.toml
func DefaultPath() string {
	configDir := xdg.ConfigHome
	if configDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		configDir = dir
	}
	return filepath.Join(configDir, "quicklaunch", "config.toml")
}

// Path returns the file the service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to the defaults when the file
// does not exist.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values; unknown keys are an error.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("failed to parse config %s:%d:%d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Discovery: DiscoverySettings{
			Extension: ".desktop",
		},
		Calculator: CalculatorSettings{
			Enabled: true,
		},
		UI: UISettings{
			CloseOnCommit: true,
			MaxRows:       10,
			ShowIcons:     true,
			Placeholder:   "Search applications...",
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

func (c *Config) normalize() {
	if c.Version == 0 {
		c.Version = CurrentVersion
	}
	if c.Discovery.Extension == "" {
		c.Discovery.Extension = ".desktop"
	}
	if c.UI.MaxRows < 1 {
		c.UI.MaxRows = 10
	}
}
