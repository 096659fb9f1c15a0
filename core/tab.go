package core

import "pkt.systems/tabdeck/schema"

// tab tracks the state of a single work surface.
type tab struct {
	ID          schema.TabID
	Title       string
	Engine      schema.EngineID
	Status      schema.TabStatus
	Session     *schema.SessionRef
	ProjectPath string
}

// Snapshot returns a transport-friendly view of the tab.
func (t *tab) Snapshot(active bool) schema.TabSnapshot {
	var session *schema.SessionRef
	if t.Session != nil {
		ref := *t.Session
		session = &ref
	}
	return schema.TabSnapshot{
		ID:          t.ID,
		Title:       t.Title,
		Engine:      t.Engine,
		Status:      t.Status,
		Session:     session,
		ProjectPath: t.ProjectPath,
		Active:      active,
	}
}
