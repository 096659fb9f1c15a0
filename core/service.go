package core

import (
	"context"
	"errors"
	"path"
	"strings"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/tabdeck/internal/commandcat"
	"pkt.systems/tabdeck/internal/logx"
	"pkt.systems/tabdeck/schema"
)

// service implements the core service behavior.
type service struct {
	cfg      schema.ServiceConfig
	registry *Registry
	commands CommandSource
	themes   ThemeStore
	titlebar TitlebarNotifier
	sink     EventSink
	logger   pslog.Logger

	mu    sync.Mutex
	theme schema.ThemeName
}

// NewService constructs the core service implementation.
func NewService(cfg schema.ServiceConfig, deps ServiceDeps) (Service, error) {
	normalized, err := schema.NormalizeServiceConfig(cfg)
	if err != nil {
		return nil, err
	}
	cfg = normalized
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	svc := &service{
		cfg:      cfg,
		registry: NewRegistry(deps.EventSink, logger),
		commands: deps.Commands,
		themes:   deps.ThemeStore,
		titlebar: deps.Titlebar,
		sink:     deps.EventSink,
		logger:   logger,
		theme:    cfg.DefaultTheme,
	}
	if deps.ThemeStore != nil {
		stored, err := deps.ThemeStore.Load()
		if err != nil {
			logger.Warn("service theme load failed", "err", err)
		} else if stored != "" {
			svc.theme = stored
		}
	}
	return svc, nil
}

func (s *service) Tabs() *Registry {
	return s.registry
}

func (s *service) OpenTab(ctx context.Context, req schema.OpenTabRequest) (schema.OpenTabResponse, error) {
	log := logx.Ctx(ctx)
	engine := req.Engine
	if engine == "" {
		engine = s.cfg.DefaultEngine
	}
	normalized, err := schema.NormalizeEngine(string(engine))
	if err != nil {
		log.Warn("service tab open failed", "engine", req.Engine, "err", err)
		return schema.OpenTabResponse{}, err
	}
	req.Engine = normalized
	if strings.TrimSpace(req.Title) == "" {
		req.Title = defaultTabTitle(req)
	}
	req.Title = formatTabTitle(req.Title, s.cfg.TabTitleMax, s.cfg.TabTitleSuffix)

	snapshot := s.registry.Open(req)
	logx.WithEngine(log.With("tab", snapshot.ID, "title", snapshot.Title), normalized).Info("service tab opened", "project_path", req.ProjectPath)
	return schema.OpenTabResponse{Tab: snapshot}, nil
}

func (s *service) CloseTab(ctx context.Context, req schema.CloseTabRequest) (schema.CloseTabResponse, error) {
	log := logx.WithTab(ctx, req.TabID)
	snapshot, err := s.registry.Close(req.TabID)
	if err != nil {
		log.Warn("service tab close failed", "err", err)
		return schema.CloseTabResponse{}, err
	}
	log.Info("service tab closed")
	return schema.CloseTabResponse{Tab: snapshot}, nil
}

func (s *service) ListTabs(ctx context.Context, req schema.ListTabsRequest) (schema.ListTabsResponse, error) {
	_ = req
	log := logx.Ctx(ctx)
	tabs := s.registry.Snapshots()
	s.mu.Lock()
	theme := s.theme
	s.mu.Unlock()
	resp := schema.ListTabsResponse{
		Tabs:      tabs,
		ActiveTab: s.registry.ActiveTab(),
		Theme:     theme,
	}
	log.Trace("service tabs listed", "count", len(tabs), "active", resp.ActiveTab)
	return resp, nil
}

func (s *service) ActivateTab(ctx context.Context, req schema.ActivateTabRequest) (schema.ActivateTabResponse, error) {
	log := logx.WithTab(ctx, req.TabID)
	snapshot, err := s.registry.Activate(req.TabID)
	if err != nil {
		log.Warn("service tab activate failed", "err", err)
		return schema.ActivateTabResponse{}, err
	}
	log.Info("service tab activated")
	return schema.ActivateTabResponse{Tab: snapshot}, nil
}

func (s *service) SetTabProject(ctx context.Context, req schema.SetTabProjectRequest) (schema.SetTabProjectResponse, error) {
	log := logx.WithTab(ctx, req.TabID)
	snapshot, err := s.registry.SetProject(req.TabID, req.ProjectPath)
	if err != nil {
		log.Warn("service tab project failed", "err", err)
		return schema.SetTabProjectResponse{}, err
	}
	log.Info("service tab project set", "project_path", req.ProjectPath)
	return schema.SetTabProjectResponse{Tab: snapshot}, nil
}

func (s *service) SetTheme(ctx context.Context, req schema.SetThemeRequest) (schema.SetThemeResponse, error) {
	log := logx.Ctx(ctx)
	theme, ok := schema.NormalizeThemeName(string(req.Theme))
	if !ok {
		log.Warn("service theme rejected", "theme", req.Theme)
		return schema.SetThemeResponse{}, schema.ErrInvalidTheme
	}

	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()

	if s.themes != nil {
		if err := s.themes.Save(theme); err != nil {
			log.Warn("service theme persist failed", "theme", theme, "err", err)
		}
	}
	if s.titlebar != nil {
		if err := s.titlebar.SetTitlebarTheme(theme.IsDark()); err != nil {
			log.Warn("service titlebar notify failed", "theme", theme, "err", err)
		}
	}
	s.emitThemeEvent(theme)
	log.Info("service theme updated", "theme", theme)
	return schema.SetThemeResponse{Theme: theme}, nil
}

func (s *service) GetTheme(ctx context.Context, req schema.GetThemeRequest) (schema.GetThemeResponse, error) {
	_ = ctx
	_ = req
	s.mu.Lock()
	defer s.mu.Unlock()
	return schema.GetThemeResponse{Theme: s.theme}, nil
}

func (s *service) ListCommands(ctx context.Context, req schema.ListCommandsRequest) (schema.ListCommandsResponse, error) {
	log := logx.Ctx(ctx)
	engine := req.Engine
	if engine == "" {
		engine = s.cfg.DefaultEngine
	}
	normalized, err := schema.NormalizeEngine(string(engine))
	if err != nil {
		log.Warn("service commands failed", "engine", req.Engine, "err", err)
		return schema.ListCommandsResponse{}, err
	}
	builtin := commandcat.Builtins(normalized)
	custom := s.customCommands(ctx, log, normalized, req.ProjectPath)
	merged := commandcat.Filter(commandcat.Merge(builtin, custom), req.Prefix)
	log.Debug("service commands listed", "engine", normalized, "builtin", len(builtin), "custom", len(custom), "matched", len(merged))
	return schema.ListCommandsResponse{Commands: merged}, nil
}

func (s *service) ReloadCommands(ctx context.Context, req schema.ReloadCommandsRequest) (schema.ReloadCommandsResponse, error) {
	log := logx.Ctx(ctx)
	engine := req.Engine
	if engine == "" {
		engine = s.cfg.DefaultEngine
	}
	normalized, err := schema.NormalizeEngine(string(engine))
	if err != nil {
		return schema.ReloadCommandsResponse{}, err
	}
	if reloader, ok := s.commands.(CommandReloader); ok {
		reloader.Reload(normalized, req.ProjectPath)
	}
	custom := s.customCommands(ctx, log, normalized, req.ProjectPath)
	log.Info("service commands reloaded", "engine", normalized, "count", len(custom))
	return schema.ReloadCommandsResponse{Count: len(custom)}, nil
}

// customCommands fetches custom commands and converts expected boundary
// failures into empty results. Unsupported engines and missing backends are
// normal conditions, not errors.
func (s *service) customCommands(ctx context.Context, log pslog.Logger, engine schema.EngineID, projectPath string) []schema.SlashCommand {
	if s.commands == nil {
		return nil
	}
	custom, err := s.commands.List(ctx, engine, projectPath)
	if err != nil {
		if errors.Is(err, schema.ErrEngineUnsupported) {
			log.Debug("service custom commands unsupported", "engine", engine)
			return nil
		}
		log.Warn("service custom commands failed", "engine", engine, "err", err)
		return nil
	}
	return custom
}

func (s *service) emitThemeEvent(theme schema.ThemeName) {
	if s.sink == nil {
		return
	}
	active := s.registry.ActiveTab()
	event := schema.TabEvent{Type: schema.TabEventUpdated, ActiveTab: active, Theme: theme}
	for _, snapshot := range s.registry.Snapshots() {
		if snapshot.ID == active {
			event.Tab = snapshot
			break
		}
	}
	s.sink.OnTabEvent(event)
}

func defaultTabTitle(req schema.OpenTabRequest) string {
	if strings.TrimSpace(req.ProjectPath) != "" {
		normalized := schema.NormalizeProjectPath(req.ProjectPath)
		if base := path.Base(normalized); base != "" && base != "." && base != "/" {
			return base
		}
	}
	return string(req.Engine)
}

func formatTabTitle(title string, max int, suffix string) string {
	if max <= 0 || len(title) <= max {
		return title
	}
	cut := max - len(suffix)
	if cut < 1 {
		return title[:max]
	}
	return title[:cut] + suffix
}
