package appconfig

import (
	"os"
	"path/filepath"

	"pkt.systems/tabdeck/internal/commandsource"
	"pkt.systems/tabdeck/internal/eventbus"
	"pkt.systems/tabdeck/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int            `mapstructure:"config_version" yaml:"config_version"`
	StateDir      string         `mapstructure:"state_dir" yaml:"state_dir"`
	Theme         ThemeConfig    `mapstructure:"theme" yaml:"theme"`
	Engines       EnginesConfig  `mapstructure:"engines" yaml:"engines"`
	Bus           BusConfig      `mapstructure:"bus" yaml:"bus"`
	Commands      CommandsConfig `mapstructure:"commands" yaml:"commands"`
	HTTP          HTTPConfig     `mapstructure:"http" yaml:"http"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// ThemeConfig controls the default UI theme.
type ThemeConfig struct {
	Default string `mapstructure:"default" yaml:"default"`
}

// EnginesConfig controls the default engine selection.
type EnginesConfig struct {
	Default string `mapstructure:"default" yaml:"default"`
}

// BusConfig controls event bus delivery.
type BusConfig struct {
	Depth int `mapstructure:"depth" yaml:"depth"`
}

// CommandsConfig controls custom-command caching.
type CommandsConfig struct {
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" yaml:"cache_ttl_seconds"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr       string `mapstructure:"addr" yaml:"addr"`
	HubHistory int    `mapstructure:"hub_history" yaml:"hub_history"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		StateDir:      filepath.Join(home, ".tabdeck", "state"),
		Theme: ThemeConfig{
			Default: string(schema.DefaultTheme),
		},
		Engines: EnginesConfig{
			Default: string(schema.DefaultEngine),
		},
		Bus: BusConfig{
			Depth: eventbus.DefaultDepth,
		},
		Commands: CommandsConfig{
			CacheTTLSeconds: int(commandsource.DefaultCacheTTL.Seconds()),
		},
		HTTP: HTTPConfig{
			Addr:       "127.0.0.1:27490",
			HubHistory: 1000,
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tabdeck", "config.yaml"), nil
}
