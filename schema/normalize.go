package schema

import "strings"

// NormalizeEngine validates and normalizes an engine identifier.
func NormalizeEngine(engine string) (EngineID, error) {
	trimmed := strings.ToLower(strings.TrimSpace(engine))
	if trimmed == "" {
		return "", ErrUnknownEngine
	}
	for _, id := range engineIDs {
		if EngineID(trimmed) == id {
			return id, nil
		}
	}
	return "", ErrUnknownEngine
}

// NormalizeProjectPath canonicalizes a project path for comparison:
// backslashes become forward slashes, the path is lower-cased, and
// trailing separators are stripped.
func NormalizeProjectPath(path string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(path), "\\", "/")
	normalized = strings.ToLower(normalized)
	for len(normalized) > 1 && strings.HasSuffix(normalized, "/") {
		normalized = strings.TrimSuffix(normalized, "/")
	}
	return normalized
}

// EqualProjectPaths reports whether two project paths are equal after
// normalization. Empty paths never match.
func EqualProjectPaths(a, b string) bool {
	na := NormalizeProjectPath(a)
	nb := NormalizeProjectPath(b)
	return na != "" && na == nb
}
