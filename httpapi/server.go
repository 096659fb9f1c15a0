package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pkt.systems/tabdeck/core"
	"pkt.systems/tabdeck/internal/logx"
	"pkt.systems/tabdeck/schema"
)

// SessionStatePublisher accepts session lifecycle events for fan-out.
type SessionStatePublisher interface {
	Publish(topic string, event schema.SessionStateEvent)
}

// Server serves the HTTP API.
type Server struct {
	cfg     Config
	service core.Service
	bus     SessionStatePublisher
	hub     *Hub
}

// NewServer constructs an HTTP server.
func NewServer(cfg Config, service core.Service, bus SessionStatePublisher, hub *Hub) *Server {
	return &Server{
		cfg:     cfg,
		service: service,
		bus:     bus,
		hub:     hub,
	}
}

// Handler returns an http.Handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tabs", s.handleTabs)
	mux.HandleFunc("/api/tabs/close", s.handleCloseTab)
	mux.HandleFunc("/api/tabs/activate", s.handleActivate)
	mux.HandleFunc("/api/tabs/project", s.handleSetProject)
	mux.HandleFunc("/api/theme", s.handleTheme)
	mux.HandleFunc("/api/commands", s.handleCommands)
	mux.HandleFunc("/api/commands/reload", s.handleReloadCommands)
	mux.HandleFunc("/api/session-state", s.handleSessionState)
	mux.HandleFunc("/api/stream", s.handleStream)
	return withRequestLogging(mux)
}

func (s *Server) handleTabs(w http.ResponseWriter, r *http.Request) {
	log := logx.Ctx(r.Context())
	switch r.Method {
	case http.MethodGet:
		resp, err := s.service.ListTabs(r.Context(), schema.ListTabsRequest{})
		if err != nil {
			log.Warn("http tabs list failed", "err", err)
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		log.Info("http tabs list ok", "count", len(resp.Tabs))
	case http.MethodPost:
		var payload struct {
			Title       string `json:"title"`
			Engine      string `json:"engine"`
			ProjectPath string `json:"project_path"`
			SessionID   string `json:"session_id"`
		}
		if err := decodeJSON(r.Body, &payload); err != nil {
			log.Warn("http tabs decode failed", "err", err)
			writeError(w, http.StatusBadRequest, err)
			return
		}
		req := schema.OpenTabRequest{
			Title:       payload.Title,
			Engine:      schema.EngineID(payload.Engine),
			ProjectPath: payload.ProjectPath,
		}
		if payload.SessionID != "" {
			req.Session = &schema.SessionRef{
				ID:          schema.SessionID(payload.SessionID),
				ProjectPath: payload.ProjectPath,
			}
		}
		resp, err := s.service.OpenTab(r.Context(), req)
		if err != nil {
			log.Warn("http tabs open failed", "err", err)
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		log.Info("http tabs open ok", "tab", resp.Tab.ID, "engine", resp.Tab.Engine)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCloseTab(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.Ctx(r.Context())
	var payload struct {
		TabID string `json:"tab_id"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		log.Warn("http tabs close decode failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.service.CloseTab(r.Context(), schema.CloseTabRequest{
		TabID: schema.TabID(payload.TabID),
	})
	if err != nil {
		log.Warn("http tabs close failed", "err", err)
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	log.Info("http tabs close ok", "tab", resp.Tab.ID)
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.Ctx(r.Context())
	var payload struct {
		TabID string `json:"tab_id"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		log.Warn("http activate decode failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.service.ActivateTab(r.Context(), schema.ActivateTabRequest{
		TabID: schema.TabID(payload.TabID),
	})
	if err != nil {
		log.Warn("http activate failed", "err", err)
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	log.Info("http activate ok", "tab", resp.Tab.ID)
}

func (s *Server) handleSetProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.Ctx(r.Context())
	var payload struct {
		TabID       string `json:"tab_id"`
		ProjectPath string `json:"project_path"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		log.Warn("http project decode failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.service.SetTabProject(r.Context(), schema.SetTabProjectRequest{
		TabID:       schema.TabID(payload.TabID),
		ProjectPath: payload.ProjectPath,
	})
	if err != nil {
		log.Warn("http project failed", "err", err)
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	log.Info("http project ok", "tab", resp.Tab.ID)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	log := logx.Ctx(r.Context())
	switch r.Method {
	case http.MethodGet:
		resp, err := s.service.GetTheme(r.Context(), schema.GetThemeRequest{})
		if err != nil {
			log.Warn("http theme get failed", "err", err)
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	case http.MethodPost, http.MethodPut:
		var payload struct {
			Theme string `json:"theme"`
		}
		if err := decodeJSON(r.Body, &payload); err != nil {
			log.Warn("http theme decode failed", "err", err)
			writeError(w, http.StatusBadRequest, err)
			return
		}
		resp, err := s.service.SetTheme(r.Context(), schema.SetThemeRequest{
			Theme: schema.ThemeName(payload.Theme),
		})
		if err != nil {
			log.Warn("http theme set failed", "err", err)
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		log.Info("http theme set ok", "theme", resp.Theme)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.Ctx(r.Context())
	query := r.URL.Query()
	resp, err := s.service.ListCommands(r.Context(), schema.ListCommandsRequest{
		Engine:      schema.EngineID(query.Get("engine")),
		ProjectPath: query.Get("project_path"),
		Prefix:      query.Get("prefix"),
	})
	if err != nil {
		log.Warn("http commands failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	log.Debug("http commands ok", "count", len(resp.Commands))
}

func (s *Server) handleReloadCommands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.Ctx(r.Context())
	var payload struct {
		Engine      string `json:"engine"`
		ProjectPath string `json:"project_path"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		log.Warn("http commands reload decode failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.service.ReloadCommands(r.Context(), schema.ReloadCommandsRequest{
		Engine:      schema.EngineID(payload.Engine),
		ProjectPath: payload.ProjectPath,
	})
	if err != nil {
		log.Warn("http commands reload failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	log.Info("http commands reload ok", "count", resp.Count)
}

func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.Ctx(r.Context())
	var event schema.SessionStateEvent
	if err := decodeJSON(r.Body, &event); err != nil {
		log.Warn("http session-state decode failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := event.Validate(); err != nil {
		log.Warn("http session-state rejected", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.bus.Publish(schema.TopicSessionState, event)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	log.Info("http session-state ok", "session", event.SessionID, "status", event.Status)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("stream unsupported"))
		return
	}
	log := logx.Ctx(r.Context())

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	lastID := parseUint(r.Header.Get("Last-Event-ID"))

	snapshot := s.buildSnapshot(r)
	_ = writeSSEvent(w, StreamEvent{
		Type:      "snapshot",
		Snapshot:  &snapshot,
		Timestamp: time.Now(),
	})
	flusher.Flush()

	// Subscribe before replaying from its returned history so nothing
	// published in between is lost to a reconnecting client.
	ch, unsubscribe, _, history := s.hub.Subscribe()
	defer unsubscribe()

	replayCount := 0
	if lastID > 0 {
		for _, event := range history {
			if event.Seq <= lastID {
				continue
			}
			_ = writeSSEvent(w, event)
			replayCount++
		}
		flusher.Flush()
	}

	notify := r.Context().Done()
	log.Info("http stream opened", "last_id", lastID, "replay", replayCount, "tabs", len(snapshot.Tabs))
	for {
		select {
		case <-notify:
			log.Info("http stream closed")
			return
		case event := <-ch:
			_ = writeSSEvent(w, event)
			flusher.Flush()
		}
	}
}

func (s *Server) buildSnapshot(r *http.Request) SnapshotPayload {
	resp, err := s.service.ListTabs(r.Context(), schema.ListTabsRequest{})
	if err != nil {
		return SnapshotPayload{}
	}
	return SnapshotPayload{
		Tabs:      resp.Tabs,
		ActiveTab: resp.ActiveTab,
		Theme:     resp.Theme,
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, schema.ErrTabNotFound):
		return http.StatusNotFound
	case errors.Is(err, schema.ErrNoTabs):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func decodeJSON(body io.Reader, target any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func writeSSEvent(w http.ResponseWriter, event StreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if event.Seq > 0 {
		_, _ = fmt.Fprintf(w, "id: %d\n", event.Seq)
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", strings.TrimSpace(string(data)))
	return nil
}

func parseUint(value string) uint64 {
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}
