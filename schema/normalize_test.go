package schema

import (
	"errors"
	"testing"
)

func TestNormalizeEngine(t *testing.T) {
	cases := []struct {
		in   string
		want EngineID
	}{
		{"claude", EngineClaude},
		{"  Claude  ", EngineClaude},
		{"GEMINI", EngineGemini},
		{"codex", EngineCodex},
	}
	for _, tc := range cases {
		got, err := NormalizeEngine(tc.in)
		if err != nil {
			t.Fatalf("normalize %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("normalize %q: got %q, want %q", tc.in, got, tc.want)
		}
	}
	if _, err := NormalizeEngine(""); !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("expected ErrUnknownEngine for empty engine, got %v", err)
	}
	if _, err := NormalizeEngine("copilot"); !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("expected ErrUnknownEngine for unknown engine, got %v", err)
	}
}

func TestNormalizeProjectPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`C:\Users\X\Proj`, "c:/users/x/proj"},
		{"c:/Users/x/proj/", "c:/users/x/proj"},
		{"C:/USERS/X/PROJ", "c:/users/x/proj"},
		{"/home/x/proj///", "/home/x/proj"},
		{"  /home/x/proj  ", "/home/x/proj"},
		{"/", "/"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeProjectPath(tc.in); got != tc.want {
			t.Fatalf("normalize %q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEqualProjectPaths(t *testing.T) {
	if !EqualProjectPaths(`C:\Users\X\Proj`, "c:/Users/x/proj/") {
		t.Fatalf("expected windows and posix forms to match")
	}
	if !EqualProjectPaths("/home/x/proj", "/home/X/PROJ") {
		t.Fatalf("expected case-insensitive match")
	}
	if EqualProjectPaths("", "") {
		t.Fatalf("empty paths must never match")
	}
	if EqualProjectPaths("/home/x/proj", "/home/x/other") {
		t.Fatalf("distinct paths must not match")
	}
}
