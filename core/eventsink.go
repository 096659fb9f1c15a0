package core

import "pkt.systems/tabdeck/schema"

// EventSink receives tab events from the registry and service.
type EventSink interface {
	OnTabEvent(event schema.TabEvent)
}
