package schema

import "errors"

// ServiceConfig defines defaults and limits for the core service.
type ServiceConfig struct {
	DefaultTheme   ThemeName
	DefaultEngine  EngineID
	TabTitleMax    int
	TabTitleSuffix string
}

// NormalizeServiceConfig applies defaults and validates the config.
func NormalizeServiceConfig(cfg ServiceConfig) (ServiceConfig, error) {
	if cfg.DefaultTheme == "" {
		cfg.DefaultTheme = DefaultTheme
	}
	if _, ok := NormalizeThemeName(string(cfg.DefaultTheme)); !ok {
		return ServiceConfig{}, ErrInvalidTheme
	}
	if cfg.DefaultEngine == "" {
		cfg.DefaultEngine = DefaultEngine
	}
	if _, err := NormalizeEngine(string(cfg.DefaultEngine)); err != nil {
		return ServiceConfig{}, err
	}
	if cfg.TabTitleMax <= 0 {
		cfg.TabTitleMax = 32
	}
	if cfg.TabTitleSuffix == "" {
		cfg.TabTitleSuffix = "…"
	}
	if cfg.TabTitleMax <= len(cfg.TabTitleSuffix) {
		return ServiceConfig{}, errors.New("tab title max must exceed suffix length")
	}
	return cfg, nil
}
