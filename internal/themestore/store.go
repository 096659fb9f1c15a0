// Package themestore persists the UI theme selection as a small YAML file.
package themestore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"pkt.systems/pslog"
	"pkt.systems/tabdeck/schema"
)

const fileName = "theme.yaml"

type themeFile struct {
	Theme string `yaml:"theme"`
}

// Store reads and writes the single theme value under a state directory.
type Store struct {
	dir string
	log pslog.Logger
}

// NewStore constructs a store rooted at the given directory.
func NewStore(dir string) (*Store, error) {
	return NewStoreWithLogger(dir, nil)
}

// NewStoreWithLogger constructs a store with logging.
func NewStoreWithLogger(dir string, logger pslog.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("state_dir", dir)
	}
	return &Store{dir: dir, log: logger}, nil
}

// Load returns the persisted theme, or the default when none is stored.
func (s *Store) Load() (schema.ThemeName, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if s.log != nil {
				s.log.Debug("theme load miss")
			}
			return schema.DefaultTheme, nil
		}
		return "", err
	}
	var parsed themeFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return "", err
	}
	theme, ok := schema.NormalizeThemeName(parsed.Theme)
	if !ok {
		if s.log != nil {
			s.log.Warn("theme load invalid", "theme", parsed.Theme)
		}
		return schema.DefaultTheme, nil
	}
	return theme, nil
}

// Save writes the theme atomically via a temp file rename.
func (s *Store) Save(theme schema.ThemeName) error {
	normalized, ok := schema.NormalizeThemeName(string(theme))
	if !ok {
		return schema.ErrInvalidTheme
	}
	data, err := yaml.Marshal(themeFile{Theme: string(normalized)})
	if err != nil {
		return err
	}
	target := filepath.Join(s.dir, fileName)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if s.log != nil {
		s.log.Trace("theme saved", "theme", normalized)
	}
	return nil
}
