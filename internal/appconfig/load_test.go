package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defaults, err := DefaultConfig()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if cfg.Theme.Default != defaults.Theme.Default {
		t.Fatalf("expected default theme %q, got %q", defaults.Theme.Default, cfg.Theme.Default)
	}
	if cfg.HTTP.Addr != defaults.HTTP.Addr {
		t.Fatalf("expected default addr %q, got %q", defaults.HTTP.Addr, cfg.HTTP.Addr)
	}
	if cfg.Bus.Depth != defaults.Bus.Depth || cfg.Commands.CacheTTLSeconds != defaults.Commands.CacheTTLSeconds {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "config_version: 1\ntheme:\n  default: light\nhttp:\n  addr: 127.0.0.1:9999\nbus:\n  depth: 16\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme.Default != "light" {
		t.Fatalf("expected light theme, got %q", cfg.Theme.Default)
	}
	if cfg.HTTP.Addr != "127.0.0.1:9999" {
		t.Fatalf("expected overridden addr, got %q", cfg.HTTP.Addr)
	}
	if cfg.Bus.Depth != 16 {
		t.Fatalf("expected bus depth 16, got %d", cfg.Bus.Depth)
	}
	defaults, err := DefaultConfig()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if cfg.Engines.Default != defaults.Engines.Default {
		t.Fatalf("expected untouched engine default, got %q", cfg.Engines.Default)
	}
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("config_version: 99\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "config_version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestLoadExpandsStateDirEnv(t *testing.T) {
	t.Setenv("TABDECK_TEST_HOME", "/srv/tabdeck")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("config_version: 1\nstate_dir: $TABDECK_TEST_HOME/state\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StateDir != "/srv/tabdeck/state" {
		t.Fatalf("expected expanded state dir, got %q", cfg.StateDir)
	}
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	written, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("write default: %v", err)
	}
	if written != path {
		t.Fatalf("expected %q, got %q", path, written)
	}
	if _, err := WriteDefault(path, false); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Fatalf("expected overwrite to succeed, got %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Fatalf("expected version %d, got %d", CurrentConfigVersion, cfg.ConfigVersion)
	}
}
