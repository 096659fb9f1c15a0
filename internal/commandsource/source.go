// Package commandsource provides custom slash-command sources for the core
// service. Actual discovery of command files belongs to the backend; this
// package implements the request/response boundary in front of it.
package commandsource

import (
	"context"

	"pkt.systems/tabdeck/schema"
)

// Static serves a fixed command set per engine. Engines without an entry are
// reported as unsupported, which callers treat as an empty result.
type Static struct {
	Commands map[schema.EngineID][]schema.SlashCommand
}

// List implements core.CommandSource.
func (s Static) List(ctx context.Context, engine schema.EngineID, projectPath string) ([]schema.SlashCommand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	commands, ok := s.Commands[engine]
	if !ok {
		return nil, schema.ErrEngineUnsupported
	}
	if projectPath == "" {
		filtered := make([]schema.SlashCommand, 0, len(commands))
		for _, cmd := range commands {
			if cmd.Scope == schema.ScopeProject {
				continue
			}
			filtered = append(filtered, cmd)
		}
		return filtered, nil
	}
	out := make([]schema.SlashCommand, len(commands))
	copy(out, commands)
	return out, nil
}
