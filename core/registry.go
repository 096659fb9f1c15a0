package core

import (
	"context"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/tabdeck/schema"
)

// Registry owns the ordered collection of tabs. All writes to tab state go
// through its mutation methods, which serialize under a single mutex; reads
// always reflect the collection as of the call, never a stale snapshot.
type Registry struct {
	mu     sync.Mutex
	tabs   map[schema.TabID]*tab
	order  []schema.TabID
	active schema.TabID
	sink   EventSink
	log    pslog.Logger
}

// NewRegistry constructs an empty tab registry.
func NewRegistry(sink EventSink, logger pslog.Logger) *Registry {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Registry{
		tabs: make(map[schema.TabID]*tab),
		sink: sink,
		log:  logger,
	}
}

// Open creates a tab and appends it to the collection. The first tab opened
// becomes active.
func (r *Registry) Open(req schema.OpenTabRequest) schema.TabSnapshot {
	entry := &tab{
		ID:          schema.TabID(newID()),
		Title:       req.Title,
		Engine:      req.Engine,
		Status:      schema.TabStatusIdle,
		ProjectPath: req.ProjectPath,
	}
	if req.Session != nil {
		ref := *req.Session
		entry.Session = &ref
	}

	r.mu.Lock()
	r.tabs[entry.ID] = entry
	r.order = append(r.order, entry.ID)
	if r.active == "" {
		r.active = entry.ID
	}
	snapshot := entry.Snapshot(r.active == entry.ID)
	active := r.active
	r.mu.Unlock()

	r.emit(schema.TabEvent{Type: schema.TabEventOpened, Tab: snapshot, ActiveTab: active})
	return snapshot
}

// Close removes the tab from the collection.
func (r *Registry) Close(tabID schema.TabID) (schema.TabSnapshot, error) {
	r.mu.Lock()
	entry := r.tabs[tabID]
	if entry == nil {
		r.mu.Unlock()
		return schema.TabSnapshot{}, schema.ErrTabNotFound
	}
	delete(r.tabs, tabID)
	r.order = removeTabID(r.order, tabID)
	if r.active == tabID {
		r.active = ""
		if len(r.order) > 0 {
			r.active = r.order[0]
		}
	}
	snapshot := entry.Snapshot(false)
	active := r.active
	r.mu.Unlock()

	r.emit(schema.TabEvent{Type: schema.TabEventClosed, Tab: snapshot, ActiveTab: active})
	return snapshot, nil
}

// Activate marks the tab as the active work surface.
func (r *Registry) Activate(tabID schema.TabID) (schema.TabSnapshot, error) {
	r.mu.Lock()
	entry := r.tabs[tabID]
	if entry == nil {
		r.mu.Unlock()
		return schema.TabSnapshot{}, schema.ErrTabNotFound
	}
	r.active = tabID
	snapshot := entry.Snapshot(true)
	r.mu.Unlock()

	r.emit(schema.TabEvent{Type: schema.TabEventActivated, Tab: snapshot, ActiveTab: tabID})
	return snapshot, nil
}

// SetProject assigns a project path directly to the tab.
func (r *Registry) SetProject(tabID schema.TabID, projectPath string) (schema.TabSnapshot, error) {
	r.mu.Lock()
	entry := r.tabs[tabID]
	if entry == nil {
		r.mu.Unlock()
		return schema.TabSnapshot{}, schema.ErrTabNotFound
	}
	entry.ProjectPath = projectPath
	snapshot := entry.Snapshot(r.active == tabID)
	active := r.active
	r.mu.Unlock()

	r.emit(schema.TabEvent{Type: schema.TabEventUpdated, Tab: snapshot, ActiveTab: active})
	return snapshot, nil
}

// SetStreaming atomically updates a tab's execution state and session
// association. A non-empty sessionID associates that session with the tab;
// an empty sessionID clears the association when streaming ends. The second
// return reports whether any state actually changed: redundant calls are
// no-ops and emit nothing.
func (r *Registry) SetStreaming(tabID schema.TabID, streaming bool, sessionID schema.SessionID) (schema.TabSnapshot, bool, error) {
	r.mu.Lock()
	entry := r.tabs[tabID]
	if entry == nil {
		r.mu.Unlock()
		return schema.TabSnapshot{}, false, schema.ErrTabNotFound
	}
	status := schema.TabStatusIdle
	if streaming {
		status = schema.TabStatusStreaming
	}
	changed := entry.Status != status
	entry.Status = status
	if streaming {
		if sessionID != "" {
			if entry.Session == nil {
				entry.Session = &schema.SessionRef{ID: sessionID}
				changed = true
			} else if entry.Session.ID != sessionID {
				entry.Session.ID = sessionID
				changed = true
			}
		}
	} else if entry.Session != nil && sessionID == "" {
		entry.Session = nil
		changed = true
	}
	snapshot := entry.Snapshot(r.active == tabID)
	active := r.active
	r.mu.Unlock()

	if changed {
		r.emit(schema.TabEvent{Type: schema.TabEventStatus, Tab: snapshot, ActiveTab: active})
	}
	return snapshot, changed, nil
}

// Snapshots returns the current ordered collection of tabs.
func (r *Registry) Snapshots() []schema.TabSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]schema.TabSnapshot, 0, len(r.order))
	for _, id := range r.order {
		entry := r.tabs[id]
		if entry == nil {
			continue
		}
		out = append(out, entry.Snapshot(id == r.active))
	}
	return out
}

// ActiveTab returns the id of the active tab, if any.
func (r *Registry) ActiveTab() schema.TabID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Len returns the number of open tabs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tabs)
}

func (r *Registry) emit(event schema.TabEvent) {
	if r.sink == nil {
		return
	}
	r.sink.OnTabEvent(event)
}

func removeTabID(order []schema.TabID, id schema.TabID) []schema.TabID {
	for i, current := range order {
		if current == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
