package schema

// TabID identifies a tab for the lifetime of the tab.
type TabID string

// SessionID identifies an out-of-process agent session.
type SessionID string

// EngineID identifies a command-line AI engine.
type EngineID string

// ThemeName identifies a UI theme.
type ThemeName string

// WindowLabel identifies a detached session window.
type WindowLabel string

// SessionRef identifies a session bound to a tab.
type SessionRef struct {
	ID          SessionID
	ProjectPath string
}
