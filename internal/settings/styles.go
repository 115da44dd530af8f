package settings

import "github.com/charmbracelet/lipgloss"

// palette is one color theme for the settings screen.
type palette struct {
	primary lipgloss.Color
	failure lipgloss.Color
	muted   lipgloss.Color
	text    lipgloss.Color
	border  lipgloss.Color
}

// paletteByName resolves a configured theme name. Unknown names fall
// back to the default palette.
func paletteByName(name string) palette {
	switch name {
	case "dark":
		return palette{
			primary: lipgloss.Color("#60A5FA"), // Blue
			failure: lipgloss.Color("#F87171"), // Red
			muted:   lipgloss.Color("#6B7280"), // Gray
			text:    lipgloss.Color("#E5E7EB"), // Light text
			border:  lipgloss.Color("#374151"), // Dark gray
		}
	case "light":
		return palette{
			primary: lipgloss.Color("#7C3AED"), // Purple
			failure: lipgloss.Color("#DC2626"), // Red
			muted:   lipgloss.Color("#6B7280"), // Gray
			text:    lipgloss.Color("#111827"), // Dark text
			border:  lipgloss.Color("#9CA3AF"), // Gray
		}
	default:
		return palette{
			primary: lipgloss.Color("#A78BFA"), // Purple
			failure: lipgloss.Color("#F87171"), // Red
			muted:   lipgloss.Color("#9CA3AF"), // Gray
			text:    lipgloss.Color("#F9FAFB"), // Light text
			border:  lipgloss.Color("#6B7280"), // Gray
		}
	}
}

// styles are the lipgloss styles the view renders with, derived from a
// palette.
type styles struct {
	title    lipgloss.Style
	selected lipgloss.Style
	item     lipgloss.Style
	active   lipgloss.Style
	muted    lipgloss.Style
	failure  lipgloss.Style
	box      lipgloss.Style
}

func newStyles(theme string) styles {
	p := paletteByName(theme)
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			MarginBottom(1),

		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.text).
			Background(p.primary).
			Padding(0, 1),

		item: lipgloss.NewStyle().
			Foreground(p.text).
			Padding(0, 1),

		active: lipgloss.NewStyle().
			Foreground(p.primary),

		muted: lipgloss.NewStyle().
			Foreground(p.muted),

		failure: lipgloss.NewStyle().
			Foreground(p.failure),

		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 2),
	}
}
