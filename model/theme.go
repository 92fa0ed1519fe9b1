package model

// ThemeMode is the persisted display preference.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ParseThemeMode maps the dark literal to ThemeDark and everything else,
// including empty or corrupted values, to ThemeLight.
func ParseThemeMode(value string) ThemeMode {
	if value == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite mode.
func (t ThemeMode) Toggle() ThemeMode {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t ThemeMode) IsDark() bool {
	return t == ThemeDark
}

func (t ThemeMode) String() string {
	return string(ParseThemeMode(string(t)))
}
