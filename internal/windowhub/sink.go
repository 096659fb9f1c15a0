package windowhub

import (
	"pkt.systems/tabdeck/schema"
)

// Sink mirrors tab lifecycle events onto session windows. It satisfies
// core.EventSink so the hub can be wired into the service event fan-out.
type Sink struct {
	hub *Hub
}

// NewSink wraps a hub in a tab event sink.
func NewSink(hub *Hub) *Sink {
	return &Sink{hub: hub}
}

// OnTabEvent applies a registry change to the window set.
func (s *Sink) OnTabEvent(event schema.TabEvent) {
	if s == nil || s.hub == nil {
		return
	}
	label := Label(event.Tab.ID)
	switch event.Type {
	case schema.TabEventOpened:
		s.hub.Create(CreateParams{
			TabID:       event.Tab.ID,
			SessionID:   event.Tab.SessionID(),
			ProjectPath: event.Tab.ProjectPath,
			Title:       event.Tab.Title,
			Engine:      event.Tab.Engine,
		})
	case schema.TabEventClosed:
		if err := s.hub.Close(label); err != nil {
			s.hub.log.Debug("windowhub close skipped", "window", label, "err", err)
		}
	case schema.TabEventActivated:
		if err := s.hub.Focus(label); err != nil {
			s.hub.log.Debug("windowhub focus skipped", "window", label, "err", err)
		}
	case schema.TabEventStatus:
		_ = s.hub.EmitTo(label, Event{
			Name:    "session-status",
			Payload: string(event.Tab.Status),
		})
	case schema.TabEventUpdated:
		if event.Theme != "" {
			s.hub.Broadcast(Event{Name: "theme-changed", Payload: string(event.Theme)})
		}
	}
}
