package schema

import "errors"

var (
	// ErrInvalidRequest indicates a malformed request payload.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTabNotFound indicates a requested tab could not be found.
	ErrTabNotFound = errors.New("tab not found")
	// ErrNoTabs indicates no tabs exist.
	ErrNoTabs = errors.New("no tabs")
	// ErrUnknownEngine indicates an engine identifier outside the known set.
	ErrUnknownEngine = errors.New("unknown engine")
	// ErrEngineUnsupported indicates a backend feature is not implemented
	// for the selected engine. Callers treat it as an empty result.
	ErrEngineUnsupported = errors.New("engine unsupported")
	// ErrInvalidTheme indicates an unsupported theme name.
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrInvalidSessionEvent indicates a session lifecycle event missing
	// required fields.
	ErrInvalidSessionEvent = errors.New("invalid session event")
	// ErrWindowNotFound indicates a session window could not be found.
	ErrWindowNotFound = errors.New("window not found")
)
