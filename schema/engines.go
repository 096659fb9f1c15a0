package schema

// Known command-line AI engines.
const (
	// EngineClaude selects the Claude CLI.
	EngineClaude EngineID = "claude"
	// EngineGemini selects the Gemini CLI.
	EngineGemini EngineID = "gemini"
	// EngineCodex selects the Codex CLI.
	EngineCodex EngineID = "codex"
)

// DefaultEngine is used when a tab does not name an engine.
const DefaultEngine = EngineClaude

var engineIDs = []EngineID{EngineClaude, EngineGemini, EngineCodex}

// KnownEngines returns the supported engine identifiers.
func KnownEngines() []EngineID {
	out := make([]EngineID, len(engineIDs))
	copy(out, engineIDs)
	return out
}
