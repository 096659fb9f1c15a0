package core

import (
	"context"

	"pkt.systems/pslog"
	"pkt.systems/tabdeck/schema"
)

// CommandSource lists custom slash commands for an engine and project path.
// Implementations signal an engine without custom-command support with
// schema.ErrEngineUnsupported rather than an opaque failure.
type CommandSource interface {
	List(ctx context.Context, engine schema.EngineID, projectPath string) ([]schema.SlashCommand, error)
}

// CommandReloader is optionally implemented by caching command sources.
type CommandReloader interface {
	Reload(engine schema.EngineID, projectPath string)
}

// ThemeStore persists the single theme value across restarts.
type ThemeStore interface {
	Load() (schema.ThemeName, error)
	Save(theme schema.ThemeName) error
}

// TitlebarNotifier recolors the host window chrome for the active theme.
// Notification is one-way; failures never block the theme change.
type TitlebarNotifier interface {
	SetTitlebarTheme(dark bool) error
}

// ServiceDeps captures optional dependencies for the core service.
type ServiceDeps struct {
	Commands   CommandSource
	ThemeStore ThemeStore
	Titlebar   TitlebarNotifier
	EventSink  EventSink
	Logger     pslog.Logger
}
