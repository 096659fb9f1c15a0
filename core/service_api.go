package core

import (
	"context"

	"pkt.systems/tabdeck/schema"
)

// Service is the transport-agnostic API for managing tabs, themes, and
// slash-command catalogs.
type Service interface {
	OpenTab(ctx context.Context, req schema.OpenTabRequest) (schema.OpenTabResponse, error)
	CloseTab(ctx context.Context, req schema.CloseTabRequest) (schema.CloseTabResponse, error)
	ListTabs(ctx context.Context, req schema.ListTabsRequest) (schema.ListTabsResponse, error)
	ActivateTab(ctx context.Context, req schema.ActivateTabRequest) (schema.ActivateTabResponse, error)
	SetTabProject(ctx context.Context, req schema.SetTabProjectRequest) (schema.SetTabProjectResponse, error)
	SetTheme(ctx context.Context, req schema.SetThemeRequest) (schema.SetThemeResponse, error)
	GetTheme(ctx context.Context, req schema.GetThemeRequest) (schema.GetThemeResponse, error)
	ListCommands(ctx context.Context, req schema.ListCommandsRequest) (schema.ListCommandsResponse, error)
	ReloadCommands(ctx context.Context, req schema.ReloadCommandsRequest) (schema.ReloadCommandsResponse, error)

	// Tabs exposes the registry so the reconciler can be wired to it.
	Tabs() *Registry
}
