// Package styles provides the lipgloss palettes and styles for the light and
// dark themes.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/tasklist/internal/core/theme"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
}

var palettes = map[theme.Name]Palette{
	theme.Light: {
		Primary:    lipgloss.Color("#2e7de9"),
		Secondary:  lipgloss.Color("#007197"),
		Foreground: lipgloss.Color("#3760bf"),
		Muted:      lipgloss.Color("#848cb5"),
		Background: lipgloss.Color("#e1e2e7"),
		Surface:    lipgloss.Color("#c4c8da"),
		Success:    lipgloss.Color("#587539"),
		Error:      lipgloss.Color("#f52a65"),
	},
	theme.Dark: {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Error:      lipgloss.Color("#f7768e"),
	},
}

// GetPalette returns the palette for a theme. Unknown names get the light palette.
func GetPalette(name theme.Name) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[theme.Light]
}
