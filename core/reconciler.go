package core

import (
	"context"

	"pkt.systems/pslog"
	"pkt.systems/tabdeck/internal/logx"
	"pkt.systems/tabdeck/schema"
)

// SessionStateBus is the subscription surface the reconciler needs from the
// event bus.
type SessionStateBus interface {
	Subscribe(topic string) (<-chan schema.SessionStateEvent, func())
}

// Reconciler keeps tab execution state consistent with session lifecycle
// events published by the backend agent supervisor. It subscribes to the
// session-state topic exactly once for its lifetime and applies each event
// against the live registry at delivery time.
type Reconciler struct {
	registry *Registry
	events   <-chan schema.SessionStateEvent
	cancel   func()
	log      pslog.Logger
}

// NewReconciler constructs a reconciler over the registry and bus. The
// subscription is taken here so events published before Run starts draining
// are queued rather than lost.
func NewReconciler(registry *Registry, bus SessionStateBus, logger pslog.Logger) *Reconciler {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	r := &Reconciler{registry: registry, log: logger}
	if bus != nil {
		r.events, r.cancel = bus.Subscribe(schema.TopicSessionState)
	}
	return r
}

// Run consumes session-state events until the context is canceled or the
// subscription channel closes. When no bus was available the reconciler logs
// the degradation and returns without error: the UI keeps working without
// real-time session sync.
func (r *Reconciler) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.events == nil {
		r.log.Error("reconciler subscribe failed", "topic", schema.TopicSessionState, "err", "event bus unavailable")
		return nil
	}
	if r.cancel != nil {
		defer r.cancel()
	}
	r.log.Info("reconciler started", "topic", schema.TopicSessionState)
	for {
		select {
		case <-ctx.Done():
			r.log.Info("reconciler stopped", "reason", ctx.Err())
			return nil
		case event, ok := <-r.events:
			if !ok {
				r.log.Info("reconciler stopped", "reason", "subscription closed")
				return nil
			}
			r.handle(event)
		}
	}
}

// handle matches one lifecycle event to a tab and applies the transition.
func (r *Reconciler) handle(event schema.SessionStateEvent) {
	log := logx.WithSession(r.log, event.SessionID).With("status", event.Status)
	if err := event.Validate(); err != nil {
		log.Warn("reconciler event rejected", "err", err)
		return
	}
	match, ok := r.match(event)
	if !ok {
		log.Warn("reconciler event unmatched", "project_path", event.ProjectPath)
		return
	}
	log = log.With("tab", match.ID)
	switch event.Status {
	case schema.SessionStarted:
		if match.Status == schema.TabStatusStreaming {
			log.Debug("reconciler start ignored", "reason", "already streaming")
			return
		}
		if _, changed, err := r.registry.SetStreaming(match.ID, true, event.SessionID); err != nil {
			log.Warn("reconciler transition failed", "err", err)
		} else if changed {
			log.Info("reconciler tab streaming", "model", event.Model, "pid", event.PID)
		}
	case schema.SessionStopped:
		if event.Error != "" {
			log.Warn("reconciler session error", "err", event.Error)
		}
		if match.Status != schema.TabStatusStreaming {
			log.Debug("reconciler stop ignored", "reason", "not streaming")
			return
		}
		if _, changed, err := r.registry.SetStreaming(match.ID, false, ""); err != nil {
			log.Warn("reconciler transition failed", "err", err)
		} else if changed {
			log.Info("reconciler tab idle", "success", event.Success != nil && *event.Success)
		}
	}
}

// match finds the tab for the event: first by exact session id, then by
// normalized project path. The path fallback covers brand-new sessions whose
// id has not yet been recorded on any tab.
func (r *Reconciler) match(event schema.SessionStateEvent) (schema.TabSnapshot, bool) {
	tabs := r.registry.Snapshots()
	for _, candidate := range tabs {
		if candidate.SessionID() == event.SessionID {
			return candidate, true
		}
	}
	if event.ProjectPath == "" {
		return schema.TabSnapshot{}, false
	}
	for _, candidate := range tabs {
		if schema.EqualProjectPaths(candidate.ProjectPath, event.ProjectPath) {
			return candidate, true
		}
		if candidate.Session != nil && schema.EqualProjectPaths(candidate.Session.ProjectPath, event.ProjectPath) {
			return candidate, true
		}
	}
	return schema.TabSnapshot{}, false
}
