package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(22)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2)
)

// namedColors maps catalog color names to terminal colors.
var namedColors = map[string]string{
	"blue":   "33",
	"green":  "42",
	"purple": "135",
	"orange": "208",
	"yellow": "220",
	"red":    "196",
	"cyan":   "51",
	"pink":   "211",
	"gold":   "178",
	"silver": "250",
	"gray":   "244",
}

// Colored renders s in a catalog color name, falling back to plain text.
func Colored(name, s string) string {
	c, ok := namedColors[name]
	if !ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(s)
}

// Row renders an aligned label/value line.
func Row(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}

// Section joins a title and its lines into one block.
func Section(title string, lines ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, TitleStyle.Render(title), strings.Join(lines, "\n"))
}

// Bar renders a progress bar of width cells filled to fraction.
func Bar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	return HighlightStyle.Render(strings.Repeat("█", filled)) + MutedStyle.Render(strings.Repeat("░", width-filled))
}
