package schema

// TabStatus describes the current execution state of a tab.
type TabStatus string

const (
	// TabStatusIdle indicates a tab has no running session.
	TabStatusIdle TabStatus = "idle"
	// TabStatusStreaming indicates a tab's session is streaming output.
	TabStatusStreaming TabStatus = "streaming"
)

// TabSnapshot is a read-only view of tab state for transports.
type TabSnapshot struct {
	ID          TabID       `json:"id"`
	Title       string      `json:"title"`
	Engine      EngineID    `json:"engine"`
	Status      TabStatus   `json:"status"`
	Session     *SessionRef `json:"session,omitempty"`
	ProjectPath string      `json:"project_path,omitempty"`
	Active      bool        `json:"active"`
}

// SessionID returns the id of the tab's associated session, if any.
func (t TabSnapshot) SessionID() SessionID {
	if t.Session == nil {
		return ""
	}
	return t.Session.ID
}
