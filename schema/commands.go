package schema

// CommandScope describes where a slash command is defined.
type CommandScope string

const (
	// ScopeBuiltin marks a command compiled into a catalog.
	ScopeBuiltin CommandScope = "builtin"
	// ScopeProject marks a command defined by the open project.
	ScopeProject CommandScope = "project"
	// ScopeUser marks a command defined in the user's home config.
	ScopeUser CommandScope = "user"
)

// SlashCommand describes a slash command offered in autocomplete.
type SlashCommand struct {
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	ArgumentHint string       `json:"argument_hint,omitempty"`
	Scope        CommandScope `json:"scope"`
	Engine       EngineID     `json:"engine,omitempty"`
	FilePath     string       `json:"file_path,omitempty"`
	Content      string       `json:"content,omitempty"`
}
