package commandcat

import (
	"testing"

	"pkt.systems/tabdeck/schema"
)

func TestBuiltinsStampScopeAndEngine(t *testing.T) {
	commands := Builtins(schema.EngineClaude)
	if len(commands) == 0 {
		t.Fatalf("expected claude builtins")
	}
	for _, cmd := range commands {
		if cmd.Scope != schema.ScopeBuiltin {
			t.Fatalf("expected builtin scope on %q, got %q", cmd.Name, cmd.Scope)
		}
		if cmd.Engine != schema.EngineClaude {
			t.Fatalf("expected claude engine on %q, got %q", cmd.Name, cmd.Engine)
		}
	}
	if Builtins("copilot") != nil {
		t.Fatalf("expected nil catalog for unknown engine")
	}
}

func TestBuiltinsReturnsCopies(t *testing.T) {
	first := Builtins(schema.EngineCodex)
	first[0].Name = "mutated"
	second := Builtins(schema.EngineCodex)
	if second[0].Name == "mutated" {
		t.Fatalf("expected catalog mutation to be isolated")
	}
}

func TestMergeOrdersGroups(t *testing.T) {
	builtin := Builtins(schema.EngineClaude)
	custom := []schema.SlashCommand{
		{Name: "zeta", Scope: schema.ScopeUser},
		{Name: "alpha", Scope: schema.ScopeUser},
		{Name: "release", Scope: schema.ScopeProject},
		{Name: "deploy", Scope: schema.ScopeProject},
	}
	merged := Merge(builtin, custom)
	if len(merged) != len(builtin)+len(custom) {
		t.Fatalf("expected %d commands, got %d", len(builtin)+len(custom), len(merged))
	}
	tail := merged[len(builtin):]
	wantNames := []string{"deploy", "release", "alpha", "zeta"}
	for i, want := range wantNames {
		if tail[i].Name != want {
			t.Fatalf("position %d: got %q, want %q", i, tail[i].Name, want)
		}
	}
}

func TestFilterTrimsLeadingSlash(t *testing.T) {
	commands := []schema.SlashCommand{
		{Name: "compact"},
		{Name: "config"},
		{Name: "model"},
	}
	filtered := Filter(commands, "/co")
	if len(filtered) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(filtered))
	}
	if len(Filter(commands, "")) != len(commands) {
		t.Fatalf("expected empty prefix to match everything")
	}
	if got := Filter(commands, "MOD"); len(got) != 1 || got[0].Name != "model" {
		t.Fatalf("expected case-insensitive match, got %+v", got)
	}
	if len(Filter(commands, "xyz")) != 0 {
		t.Fatalf("expected no matches for xyz")
	}
}
