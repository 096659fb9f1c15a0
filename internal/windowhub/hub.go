// Package windowhub tracks detached session windows and delivers
// cross-window events to them. Rendering belongs to the UI shell; the hub
// only owns labels, focus, and event queues.
package windowhub

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/tabdeck/schema"
)

const labelPrefix = "session-window-"

const eventQueueDepth = 64

// CreateParams describes a session window to create.
type CreateParams struct {
	TabID       schema.TabID
	SessionID   schema.SessionID
	ProjectPath string
	Title       string
	Engine      schema.EngineID
}

// Event is a named payload delivered to a window.
type Event struct {
	Name    string
	Payload string
}

type window struct {
	label    schema.WindowLabel
	params   CreateParams
	events   chan Event
	titlebar uint32
}

// Hub is the registry of detached session windows.
type Hub struct {
	mu      sync.Mutex
	windows map[schema.WindowLabel]*window
	focused schema.WindowLabel
	color   uint32
	log     pslog.Logger
}

// New constructs an empty hub.
func New(logger pslog.Logger) *Hub {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Hub{
		windows: make(map[schema.WindowLabel]*window),
		color:   schema.DefaultTheme.TitlebarColor(),
		log:     logger,
	}
}

// Label returns the window label for a tab.
func Label(tabID schema.TabID) schema.WindowLabel {
	return schema.WindowLabel(labelPrefix + string(tabID))
}

// Create registers a session window for the tab. If the window already
// exists it is focused instead, and created reports false.
func (h *Hub) Create(params CreateParams) (schema.WindowLabel, bool) {
	label := Label(params.TabID)
	h.mu.Lock()
	if _, ok := h.windows[label]; ok {
		h.focused = label
		h.mu.Unlock()
		h.log.Debug("windowhub focus existing", "window", label)
		return label, false
	}
	h.windows[label] = &window{
		label:    label,
		params:   params,
		events:   make(chan Event, eventQueueDepth),
		titlebar: h.color,
	}
	h.focused = label
	h.mu.Unlock()
	h.log.Info("windowhub window created", "window", label, "tab", params.TabID, "engine", params.Engine)
	return label, true
}

// Close removes a session window.
func (h *Hub) Close(label schema.WindowLabel) error {
	h.mu.Lock()
	entry := h.windows[label]
	if entry == nil {
		h.mu.Unlock()
		return fmt.Errorf("%w: %s", schema.ErrWindowNotFound, label)
	}
	delete(h.windows, label)
	if h.focused == label {
		h.focused = ""
	}
	h.mu.Unlock()
	close(entry.events)
	h.log.Info("windowhub window closed", "window", label)
	return nil
}

// Focus marks a session window as focused.
func (h *Hub) Focus(label schema.WindowLabel) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.windows[label]; !ok {
		return fmt.Errorf("%w: %s", schema.ErrWindowNotFound, label)
	}
	h.focused = label
	return nil
}

// List returns the labels of all open session windows, sorted.
func (h *Hub) List() []schema.WindowLabel {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]schema.WindowLabel, 0, len(h.windows))
	for label := range h.windows {
		if strings.HasPrefix(string(label), labelPrefix) {
			out = append(out, label)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Events returns the event queue for a window.
func (h *Hub) Events(label schema.WindowLabel) (<-chan Event, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry := h.windows[label]
	if entry == nil {
		return nil, fmt.Errorf("%w: %s", schema.ErrWindowNotFound, label)
	}
	return entry.events, nil
}

// EmitTo delivers an event to one window. The send happens under the hub
// lock so a concurrent Close cannot close the queue mid-send; queues are
// buffered and the send never blocks.
func (h *Hub) EmitTo(label schema.WindowLabel, event Event) error {
	h.mu.Lock()
	entry := h.windows[label]
	if entry == nil {
		h.mu.Unlock()
		return fmt.Errorf("%w: %s", schema.ErrWindowNotFound, label)
	}
	delivered := false
	select {
	case entry.events <- event:
		delivered = true
	default:
	}
	h.mu.Unlock()
	if !delivered {
		h.log.Warn("windowhub event dropped", "window", label, "event", event.Name)
	}
	return nil
}

// Broadcast delivers an event to every session window and returns how many
// windows received it. Sends happen under the hub lock, same as EmitTo.
func (h *Hub) Broadcast(event Event) int {
	h.mu.Lock()
	count := 0
	var dropped []schema.WindowLabel
	for _, entry := range h.windows {
		select {
		case entry.events <- event:
			count++
		default:
			dropped = append(dropped, entry.label)
		}
	}
	h.mu.Unlock()
	for _, label := range dropped {
		h.log.Warn("windowhub event dropped", "window", label, "event", event.Name)
	}
	return count
}

// SetTitlebarTheme recolors the title bar of every window for the theme.
// Implements core.TitlebarNotifier.
func (h *Hub) SetTitlebarTheme(dark bool) error {
	color := schema.TitlebarColorLight
	if dark {
		color = schema.TitlebarColorDark
	}
	h.mu.Lock()
	h.color = color
	for _, entry := range h.windows {
		entry.titlebar = color
	}
	count := len(h.windows)
	h.mu.Unlock()
	h.log.Info("windowhub titlebar updated", "dark", dark, "windows", count)
	return nil
}

// TitlebarColor reports the current title bar color of a window.
func (h *Hub) TitlebarColor(label schema.WindowLabel) (uint32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry := h.windows[label]
	if entry == nil {
		return 0, fmt.Errorf("%w: %s", schema.ErrWindowNotFound, label)
	}
	return entry.titlebar, nil
}
