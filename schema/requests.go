package schema

// Tab lifecycle.

// OpenTabRequest describes a request to open a tab.
type OpenTabRequest struct {
	Title       string
	Engine      EngineID
	ProjectPath string
	// Session optionally binds a resumed session to the new tab.
	Session *SessionRef
}

// OpenTabResponse reports the opened tab.
type OpenTabResponse struct {
	Tab TabSnapshot
}

// CloseTabRequest describes a request to close a tab.
type CloseTabRequest struct {
	TabID TabID
}

// CloseTabResponse reports the closed tab snapshot.
type CloseTabResponse struct {
	Tab TabSnapshot
}

// ListTabsRequest describes a request to list tabs.
type ListTabsRequest struct{}

// ListTabsResponse reports tabs in order plus the active context.
type ListTabsResponse struct {
	Tabs      []TabSnapshot
	ActiveTab TabID
	Theme     ThemeName
}

// ActivateTabRequest describes a request to activate a tab.
type ActivateTabRequest struct {
	TabID TabID
}

// ActivateTabResponse reports the activated tab snapshot.
type ActivateTabResponse struct {
	Tab TabSnapshot
}

// SetTabProjectRequest assigns a project path directly to a tab.
type SetTabProjectRequest struct {
	TabID       TabID
	ProjectPath string
}

// SetTabProjectResponse reports the updated tab snapshot.
type SetTabProjectResponse struct {
	Tab TabSnapshot
}

// Theme.

// SetThemeRequest describes a request to set the UI theme.
type SetThemeRequest struct {
	Theme ThemeName
}

// SetThemeResponse reports the applied theme.
type SetThemeResponse struct {
	Theme ThemeName
}

// GetThemeRequest describes a request to read the current theme.
type GetThemeRequest struct{}

// GetThemeResponse reports the current theme.
type GetThemeResponse struct {
	Theme ThemeName
}

// Slash commands.

// ListCommandsRequest describes a slash-command lookup for autocomplete.
type ListCommandsRequest struct {
	Engine EngineID
	// ProjectPath scopes custom commands; empty means user scope only.
	ProjectPath string
	// Prefix filters command names; empty returns the full catalog.
	Prefix string
}

// ListCommandsResponse reports matching slash commands.
type ListCommandsResponse struct {
	Commands []SlashCommand
}

// ReloadCommandsRequest forces a refresh of cached custom commands.
type ReloadCommandsRequest struct {
	Engine      EngineID
	ProjectPath string
}

// ReloadCommandsResponse reports the refreshed custom command count.
type ReloadCommandsResponse struct {
	Count int
}
