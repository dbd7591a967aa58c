package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a color scheme for the panel and the vector scene. Each drawn
// vector kind has its own color; primed vectors reuse it with Faint.
type Theme struct {
	Name     string
	Title    lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Accent   lipgloss.Color
	Warning  lipgloss.Color
	Error    lipgloss.Color
	Border   lipgloss.Color
	E        lipgloss.Color
	B        lipgloss.Color
	Poynting lipgloss.Color
	Velocity lipgloss.Color
	Force    lipgloss.Color
	Accel    lipgloss.Color
	Boost    lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Title:    lipgloss.Color("#00ffff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666688"),
		Accent:   lipgloss.Color("#ff00ff"),
		Warning:  lipgloss.Color("#ff8800"),
		Error:    lipgloss.Color("#ff0000"),
		Border:   lipgloss.Color("#444466"),
		E:        lipgloss.Color("#ffff00"),
		B:        lipgloss.Color("#00ffff"),
		Poynting: lipgloss.Color("#ff00ff"),
		Velocity: lipgloss.Color("#00ff88"),
		Force:    lipgloss.Color("#ff4444"),
		Accel:    lipgloss.Color("#ffaa00"),
		Boost:    lipgloss.Color("#8888ff"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Title:    lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Accent:   lipgloss.Color("#88ff88"),
		Warning:  lipgloss.Color("#ffff00"),
		Error:    lipgloss.Color("#ff0000"),
		Border:   lipgloss.Color("#003300"),
		E:        lipgloss.Color("#ccff00"),
		B:        lipgloss.Color("#00cc66"),
		Poynting: lipgloss.Color("#88ff88"),
		Velocity: lipgloss.Color("#00ff00"),
		Force:    lipgloss.Color("#ffff00"),
		Accel:    lipgloss.Color("#66aa00"),
		Boost:    lipgloss.Color("#00aa00"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Title:    lipgloss.Color("#ffffff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Accent:   lipgloss.Color("#0088ff"),
		Warning:  lipgloss.Color("#ffaa00"),
		Error:    lipgloss.Color("#ff0000"),
		Border:   lipgloss.Color("#444444"),
		E:        lipgloss.Color("#ff5555"),
		B:        lipgloss.Color("#5555ff"),
		Poynting: lipgloss.Color("#cccccc"),
		Velocity: lipgloss.Color("#55ff55"),
		Force:    lipgloss.Color("#ffaa00"),
		Accel:    lipgloss.Color("#aa55ff"),
		Boost:    lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Title:    lipgloss.Color("#00a8cc"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Accent:   lipgloss.Color("#ffd700"),
		Warning:  lipgloss.Color("#ffcc00"),
		Error:    lipgloss.Color("#ff4444"),
		Border:   lipgloss.Color("#0077be"),
		E:        lipgloss.Color("#ffd700"),
		B:        lipgloss.Color("#00a8cc"),
		Poynting: lipgloss.Color("#e0f0ff"),
		Velocity: lipgloss.Color("#00ff88"),
		Force:    lipgloss.Color("#ff7f50"),
		Accel:    lipgloss.Color("#ff69b4"),
		Boost:    lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Title:    lipgloss.Color("#feca57"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Accent:   lipgloss.Color("#ff9ff3"),
		Warning:  lipgloss.Color("#ffc048"),
		Error:    lipgloss.Color("#ff4757"),
		Border:   lipgloss.Color("#8b6b8c"),
		E:        lipgloss.Color("#ff6b6b"),
		B:        lipgloss.Color("#48dbfb"),
		Poynting: lipgloss.Color("#feca57"),
		Velocity: lipgloss.Color("#5fd068"),
		Force:    lipgloss.Color("#ff9ff3"),
		Accel:    lipgloss.Color("#ffc048"),
		Boost:    lipgloss.Color("#c8a2c8"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	if t, ok := LookupTheme(name); ok {
		return t
	}
	return ThemeCyberpunk
}

// LookupTheme reports whether a theme with the given name exists.
func LookupTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Color returns the theme color used for arrows of kind k.
func (t Theme) Color(k Kind) lipgloss.Color {
	switch k {
	case KindE:
		return t.E
	case KindB:
		return t.B
	case KindPoynting:
		return t.Poynting
	case KindVelocity:
		return t.Velocity
	case KindForce:
		return t.Force
	case KindAccel:
		return t.Accel
	}
	return t.Boost
}
