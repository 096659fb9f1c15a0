package commandsource

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"pkt.systems/tabdeck/schema"
)

type countingLister struct {
	mu       sync.Mutex
	calls    int
	commands []schema.SlashCommand
	err      error
}

func (l *countingLister) List(ctx context.Context, engine schema.EngineID, projectPath string) ([]schema.SlashCommand, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.commands, nil
}

func (l *countingLister) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func TestCachedListMemoizes(t *testing.T) {
	upstream := &countingLister{commands: []schema.SlashCommand{{Name: "deploy"}}}
	cached := NewCached(upstream, time.Minute, nil)

	for i := 0; i < 3; i++ {
		commands, err := cached.List(context.Background(), schema.EngineClaude, "/home/x/proj")
		if err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
		if len(commands) != 1 || commands[0].Name != "deploy" {
			t.Fatalf("list %d: unexpected commands %+v", i, commands)
		}
	}
	if upstream.callCount() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", upstream.callCount())
	}
}

func TestCachedListKeyNormalizesProjectPath(t *testing.T) {
	upstream := &countingLister{commands: []schema.SlashCommand{{Name: "deploy"}}}
	cached := NewCached(upstream, time.Minute, nil)

	if _, err := cached.List(context.Background(), schema.EngineClaude, `C:\Users\X\Proj`); err != nil {
		t.Fatalf("list windows path: %v", err)
	}
	if _, err := cached.List(context.Background(), schema.EngineClaude, "c:/users/x/proj/"); err != nil {
		t.Fatalf("list posix path: %v", err)
	}
	if upstream.callCount() != 1 {
		t.Fatalf("expected path variants to share a cache entry, got %d calls", upstream.callCount())
	}
}

func TestCachedListCachesUnsupportedEngine(t *testing.T) {
	upstream := &countingLister{err: schema.ErrEngineUnsupported}
	cached := NewCached(upstream, time.Minute, nil)

	for i := 0; i < 2; i++ {
		if _, err := cached.List(context.Background(), schema.EngineGemini, ""); !errors.Is(err, schema.ErrEngineUnsupported) {
			t.Fatalf("list %d: expected ErrEngineUnsupported, got %v", i, err)
		}
	}
	if upstream.callCount() != 1 {
		t.Fatalf("expected unsupported outcome to be cached, got %d calls", upstream.callCount())
	}
}

func TestCachedListCachesWrappedUnsupportedEngine(t *testing.T) {
	upstream := &countingLister{err: fmt.Errorf("engine %q: %w", "gemini", schema.ErrEngineUnsupported)}
	cached := NewCached(upstream, time.Minute, nil)

	for i := 0; i < 2; i++ {
		if _, err := cached.List(context.Background(), schema.EngineGemini, ""); !errors.Is(err, schema.ErrEngineUnsupported) {
			t.Fatalf("list %d: expected ErrEngineUnsupported, got %v", i, err)
		}
	}
	if upstream.callCount() != 1 {
		t.Fatalf("expected wrapped unsupported outcome to be cached, got %d calls", upstream.callCount())
	}
}

func TestCachedListDoesNotCacheTransientFailures(t *testing.T) {
	upstream := &countingLister{err: errors.New("backend down")}
	cached := NewCached(upstream, time.Minute, nil)

	for i := 0; i < 2; i++ {
		if _, err := cached.List(context.Background(), schema.EngineClaude, ""); err == nil {
			t.Fatalf("list %d: expected error", i)
		}
	}
	if upstream.callCount() != 2 {
		t.Fatalf("expected transient failures to retry, got %d calls", upstream.callCount())
	}
}

func TestCachedReloadDropsEntry(t *testing.T) {
	upstream := &countingLister{commands: []schema.SlashCommand{{Name: "deploy"}}}
	cached := NewCached(upstream, time.Minute, nil)

	if _, err := cached.List(context.Background(), schema.EngineClaude, "/home/x/proj"); err != nil {
		t.Fatalf("list: %v", err)
	}
	cached.Reload(schema.EngineClaude, `\home\x\proj`)
	if _, err := cached.List(context.Background(), schema.EngineClaude, "/home/x/proj"); err != nil {
		t.Fatalf("list after reload: %v", err)
	}
	if upstream.callCount() != 2 {
		t.Fatalf("expected reload to force a fresh listing, got %d calls", upstream.callCount())
	}
}

func TestStaticScopesProjectCommands(t *testing.T) {
	source := Static{Commands: map[schema.EngineID][]schema.SlashCommand{
		schema.EngineClaude: {
			{Name: "deploy", Scope: schema.ScopeProject},
			{Name: "commit", Scope: schema.ScopeUser},
		},
	}}

	commands, err := source.List(context.Background(), schema.EngineClaude, "")
	if err != nil {
		t.Fatalf("list without project: %v", err)
	}
	if len(commands) != 1 || commands[0].Name != "commit" {
		t.Fatalf("expected project commands filtered, got %+v", commands)
	}

	commands, err = source.List(context.Background(), schema.EngineClaude, "/home/x/proj")
	if err != nil {
		t.Fatalf("list with project: %v", err)
	}
	if len(commands) != 2 {
		t.Fatalf("expected full set with project path, got %+v", commands)
	}

	if _, err := source.List(context.Background(), schema.EngineCodex, ""); !errors.Is(err, schema.ErrEngineUnsupported) {
		t.Fatalf("expected ErrEngineUnsupported, got %v", err)
	}
}
