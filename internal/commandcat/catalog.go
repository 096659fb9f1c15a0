package commandcat

import (
	"sort"
	"strings"

	"pkt.systems/tabdeck/schema"
)

// Builtin slash-command catalogs per engine. These mirror the commands the
// wrapped CLIs accept; custom commands from the backend are merged on top.

var claudeCommands = []schema.SlashCommand{
	{Name: "clear", Description: "Clear conversation history"},
	{Name: "compact", Description: "Compact conversation history", ArgumentHint: "[instructions]"},
	{Name: "config", Description: "Open configuration"},
	{Name: "cost", Description: "Show token usage and cost"},
	{Name: "doctor", Description: "Check installation health"},
	{Name: "init", Description: "Initialize project memory file"},
	{Name: "memory", Description: "Edit memory files"},
	{Name: "model", Description: "Switch model", ArgumentHint: "[model]"},
	{Name: "resume", Description: "Resume a previous session", ArgumentHint: "[session]"},
	{Name: "review", Description: "Request a code review"},
	{Name: "status", Description: "Show session status"},
	{Name: "help", Description: "Show available commands"},
}

var geminiCommands = []schema.SlashCommand{
	{Name: "about", Description: "Show version info"},
	{Name: "chat", Description: "Manage conversation state", ArgumentHint: "save|resume|list"},
	{Name: "clear", Description: "Clear the screen"},
	{Name: "compress", Description: "Replace context with a summary"},
	{Name: "memory", Description: "Manage memory", ArgumentHint: "show|add|refresh"},
	{Name: "stats", Description: "Show session statistics"},
	{Name: "theme", Description: "Change the visual theme"},
	{Name: "tools", Description: "List available tools"},
	{Name: "help", Description: "Show available commands"},
}

var codexCommands = []schema.SlashCommand{
	{Name: "approvals", Description: "Choose what runs without approval"},
	{Name: "compact", Description: "Summarize conversation to free context"},
	{Name: "diff", Description: "Show git diff including untracked files"},
	{Name: "init", Description: "Create an AGENTS.md file"},
	{Name: "mention", Description: "Mention a file", ArgumentHint: "[path]"},
	{Name: "model", Description: "Switch model and reasoning effort"},
	{Name: "status", Description: "Show session configuration and usage"},
	{Name: "help", Description: "Show available commands"},
}

// Builtins returns the static catalog for the engine. Unknown engines get an
// empty catalog.
func Builtins(engine schema.EngineID) []schema.SlashCommand {
	var src []schema.SlashCommand
	switch engine {
	case schema.EngineClaude:
		src = claudeCommands
	case schema.EngineGemini:
		src = geminiCommands
	case schema.EngineCodex:
		src = codexCommands
	default:
		return nil
	}
	out := make([]schema.SlashCommand, len(src))
	copy(out, src)
	for i := range out {
		out[i].Scope = schema.ScopeBuiltin
		out[i].Engine = engine
	}
	return out
}

// Merge combines builtin and custom commands for autocomplete: builtins
// first, then project-scoped customs, then user-scoped customs, each group
// sorted by name.
func Merge(builtin, custom []schema.SlashCommand) []schema.SlashCommand {
	out := make([]schema.SlashCommand, 0, len(builtin)+len(custom))
	out = append(out, builtin...)
	project := make([]schema.SlashCommand, 0, len(custom))
	user := make([]schema.SlashCommand, 0, len(custom))
	for _, cmd := range custom {
		if cmd.Scope == schema.ScopeUser {
			user = append(user, cmd)
			continue
		}
		project = append(project, cmd)
	}
	sortByName(project)
	sortByName(user)
	out = append(out, project...)
	out = append(out, user...)
	return out
}

// Filter returns commands whose name starts with prefix. A leading slash on
// the prefix is ignored so raw input box contents can be passed through.
func Filter(commands []schema.SlashCommand, prefix string) []schema.SlashCommand {
	prefix = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(prefix), "/"))
	if prefix == "" {
		return commands
	}
	out := make([]schema.SlashCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			out = append(out, cmd)
		}
	}
	return out
}

func sortByName(commands []schema.SlashCommand) {
	sort.SliceStable(commands, func(i, j int) bool {
		return commands[i].Name < commands[j].Name
	})
}
