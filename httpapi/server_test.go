package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pkt.systems/tabdeck/core"
	"pkt.systems/tabdeck/internal/eventbus"
	"pkt.systems/tabdeck/schema"
)

func newTestServer(t *testing.T) (*Server, core.Service, *eventbus.Bus) {
	t.Helper()
	service, err := core.NewService(schema.ServiceConfig{}, core.ServiceDeps{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	bus := eventbus.New(nil)
	hub := NewHub(10, nil)
	srv := NewServer(Config{Addr: "127.0.0.1:0", HubHistory: 10}, service, bus, hub)
	return srv, service, bus
}

func TestTabLifecycleEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tabs", strings.NewReader(`{"title":"one","engine":"claude","project_path":"/home/x/proj"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("open tab: status %d: %s", rec.Code, rec.Body.String())
	}
	var opened schema.OpenTabResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &opened); err != nil {
		t.Fatalf("decode open: %v", err)
	}
	if opened.Tab.ID == "" || opened.Tab.Title != "one" {
		t.Fatalf("unexpected tab %+v", opened.Tab)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tabs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list tabs: status %d", rec.Code)
	}
	var listed schema.ListTabsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Tabs) != 1 || listed.ActiveTab != opened.Tab.ID {
		t.Fatalf("unexpected list %+v", listed)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tabs/close", strings.NewReader(`{"tab_id":"missing"}`)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("close missing tab: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tabs/close", strings.NewReader(`{"tab_id":"`+string(opened.Tab.ID)+`"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("close tab: status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestThemeEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/theme", strings.NewReader(`{"theme":"light"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("set theme: status %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/theme", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get theme: status %d", rec.Code)
	}
	var got schema.GetThemeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode theme: %v", err)
	}
	if got.Theme != schema.ThemeLight {
		t.Fatalf("expected light theme, got %q", got.Theme)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/theme", strings.NewReader(`{"theme":"sepia"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid theme: status %d", rec.Code)
	}
}

func TestCommandsEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/commands?engine=claude&prefix=/co", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("commands: status %d: %s", rec.Code, rec.Body.String())
	}
	var resp schema.ListCommandsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode commands: %v", err)
	}
	if len(resp.Commands) == 0 {
		t.Fatalf("expected command matches for prefix co")
	}
	for _, cmd := range resp.Commands {
		if !strings.HasPrefix(cmd.Name, "co") {
			t.Fatalf("unexpected command %q", cmd.Name)
		}
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/commands?engine=copilot", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown engine: status %d", rec.Code)
	}
}

func TestSessionStateIngressPublishes(t *testing.T) {
	srv, _, bus := newTestServer(t)
	handler := srv.Handler()

	events, cancel := bus.Subscribe(schema.TopicSessionState)
	defer cancel()

	rec := httptest.NewRecorder()
	body := `{"session_id":"s1","status":"started","project_path":"/home/x/proj","model":"opus"}`
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session-state", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("ingress: status %d: %s", rec.Code, rec.Body.String())
	}

	select {
	case event := <-events:
		if event.SessionID != "s1" || event.Status != schema.SessionStarted {
			t.Fatalf("unexpected event %+v", event)
		}
		if event.Model != "opus" {
			t.Fatalf("expected model preserved, got %q", event.Model)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("event never published")
	}
}

func TestStreamReplaysHistoryAfterLastEventID(t *testing.T) {
	service, err := core.NewService(schema.ServiceConfig{}, core.ServiceDeps{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	hub := NewHub(10, nil)
	srv := NewServer(Config{Addr: "127.0.0.1:0", HubHistory: 10}, service, eventbus.New(nil), hub)
	handler := srv.Handler()

	for _, id := range []schema.TabID{"t1", "t2", "t3"} {
		hub.OnTabEvent(schema.TabEvent{Type: schema.TabEventOpened, Tab: schema.TabSnapshot{ID: id}})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/stream", nil).WithContext(ctx)
	req.Header.Set("Last-Event-ID", "1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `"type":"snapshot"`) {
		t.Fatalf("expected snapshot event, got %q", body)
	}
	if !strings.Contains(body, "id: 2\n") || !strings.Contains(body, "id: 3\n") {
		t.Fatalf("expected events 2 and 3 replayed, got %q", body)
	}
	if strings.Contains(body, "id: 1\n") {
		t.Fatalf("event 1 should not be replayed: %q", body)
	}
}

func TestSessionStateIngressRejectsInvalidEvent(t *testing.T) {
	srv, _, _ := newTestServer(t)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session-state", strings.NewReader(`{"status":"started"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing session id: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session-state", strings.NewReader(`{"session_id":"s1","status":"paused"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session-state", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("wrong method: status %d", rec.Code)
	}
}
