package schema

import "strings"

// DefaultTheme is the default UI theme name.
const DefaultTheme ThemeName = "dark"

const (
	// ThemeLight is the light UI theme.
	ThemeLight ThemeName = "light"
	// ThemeDark is the dark UI theme.
	ThemeDark ThemeName = "dark"
)

// Title bar colors in COLORREF format (0x00BBGGRR).
const (
	// TitlebarColorDark is medium gray rgb(48, 48, 52).
	TitlebarColorDark uint32 = 0x00343030
	// TitlebarColorLight is near white rgb(250, 250, 252).
	TitlebarColorLight uint32 = 0x00FCFAFA
)

// AvailableThemes returns the supported theme names.
func AvailableThemes() []ThemeName {
	return []ThemeName{ThemeLight, ThemeDark}
}

// NormalizeThemeName returns a canonical theme name if supported.
func NormalizeThemeName(name string) (ThemeName, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return ThemeLight, true
	case "dark":
		return ThemeDark, true
	default:
		return "", false
	}
}

// IsDark reports whether the theme uses the dark palette.
func (t ThemeName) IsDark() bool {
	return t != ThemeLight
}

// TitlebarColor returns the COLORREF title bar color for the theme.
func (t ThemeName) TitlebarColor() uint32 {
	if t.IsDark() {
		return TitlebarColorDark
	}
	return TitlebarColorLight
}
