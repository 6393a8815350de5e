package viz

// Theme defines the particle colors and the backdrop they are blended onto.
type Theme struct {
	Name       string
	Background string
	Snow       string
	Confetti   []string
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:       "classic",
		Background: "#000000",
		Snow:       "#ffffff",
		Confetti:   []string{"#f94144", "#f8961e", "#f9c74f", "#90be6d", "#43aa8b", "#577590"},
	}

	ThemeWinter = Theme{
		Name:       "winter",
		Background: "#0b1a2a",
		Snow:       "#e0f0ff", // Ice white
		Confetti:   []string{"#a8dadc", "#e0f0ff", "#457b9d", "#f1faee"},
	}

	ThemeNeon = Theme{
		Name:       "neon",
		Background: "#0a0a0a",
		Snow:       "#00ffff",
		Confetti:   []string{"#ff00ff", "#00ffff", "#ffff00", "#00ff00", "#ff8800"},
	}

	ThemePastel = Theme{
		Name:       "pastel",
		Background: "#1e1e2e",
		Snow:       "#f5e0dc",
		Confetti:   []string{"#f5c2e7", "#cba6f7", "#89dceb", "#a6e3a1", "#f9e2af", "#fab387"},
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Background: "#2d1b2e",
		Snow:       "#fff5f5",
		Confetti:   []string{"#ff6b6b", "#feca57", "#ff9ff3", "#5fd068"},
	}

	// Default theme
	DefaultTheme = ThemeClassic

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeWinter,
		ThemeNeon,
		ThemePastel,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	if t, ok := LookupTheme(name); ok {
		return t
	}
	return DefaultTheme
}

// LookupTheme reports whether a theme with that name exists.
func LookupTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
