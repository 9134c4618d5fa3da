package styles

import (
	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/tasklist/internal/core/theme"
)

// Styles is the set of rendered styles for one theme.
type Styles struct {
	Theme   theme.Name
	Palette Palette

	Title     lipgloss.Style
	Text      lipgloss.Style
	Done      lipgloss.Style
	Timestamp lipgloss.Style
	DoneStamp lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Input     lipgloss.Style
	Counter   lipgloss.Style
	Modal     lipgloss.Style
}

// New builds the styles for a theme.
func New(name theme.Name) Styles {
	p := GetPalette(name)
	return Styles{
		Theme:     name,
		Palette:   p,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Text:      lipgloss.NewStyle().Foreground(p.Foreground),
		Done:      lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Timestamp: lipgloss.NewStyle().Foreground(p.Secondary),
		DoneStamp: lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Selected:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(p.Muted),
		Help:      lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		Error:     lipgloss.NewStyle().Foreground(p.Error),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Surface).Padding(0, 1),
		Counter:   lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		Modal:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary).Padding(1, 2),
	}
}

// GlamourStyle returns a glamour style config derived from the theme palette.
func GlamourStyle(name theme.Name) glamouransi.StyleConfig {
	cfg := glamourstyles.LightStyleConfig
	if name == theme.Dark {
		cfg = glamourstyles.DarkStyleConfig
	}

	p := GetPalette(name)
	fg := hexPtr(p.Foreground)
	primary := hexPtr(p.Primary)
	muted := hexPtr(p.Muted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg
	cfg.Heading.Color = primary
	cfg.H1.Color = primary
	cfg.H2.Color = primary
	cfg.Item.Color = fg
	cfg.Strikethrough.Color = muted
	cfg.HorizontalRule.Color = muted

	return cfg
}

// RenderMarkdown renders markdown for the terminal in the theme's colours.
func RenderMarkdown(md string, name theme.Name, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(GlamourStyle(name)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func hexPtr(c lipgloss.Color) *string {
	s := string(c)
	return &s
}
