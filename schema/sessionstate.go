package schema

// TopicSessionState is the event bus topic carrying session lifecycle events.
const TopicSessionState = "claude-session-state"

// SessionStatus is the lifecycle status reported by the backend.
type SessionStatus string

const (
	// SessionStarted indicates an agent session began streaming.
	SessionStarted SessionStatus = "started"
	// SessionStopped indicates an agent session finished or was killed.
	SessionStopped SessionStatus = "stopped"
)

// SessionStateEvent is an immutable session lifecycle notification emitted
// by the backend agent supervisor. Consumed at most once per delivery.
type SessionStateEvent struct {
	SessionID   SessionID     `json:"session_id"`
	Status      SessionStatus `json:"status"`
	Success     *bool         `json:"success,omitempty"`
	Error       string        `json:"error,omitempty"`
	ProjectPath string        `json:"project_path,omitempty"`
	Model       string        `json:"model,omitempty"`
	PID         int           `json:"pid,omitempty"`
	RunID       int64         `json:"run_id,omitempty"`
}

// Validate rejects events missing required fields.
func (e SessionStateEvent) Validate() error {
	if e.SessionID == "" {
		return ErrInvalidSessionEvent
	}
	switch e.Status {
	case SessionStarted, SessionStopped:
		return nil
	default:
		return ErrInvalidSessionEvent
	}
}
