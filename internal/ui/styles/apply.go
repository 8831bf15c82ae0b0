package styles

import "github.com/charmbracelet/lipgloss"

// Theme carries the user-overridable colors. Empty fields keep the
// built-in default.
type Theme struct {
	Highlight string
	Subtle    string
	Error     string
	Success   string
}

// Apply overrides the package color variables from a theme. Styles derived
// from the overridden colors are rebuilt.
func Apply(t Theme) {
	if t.Highlight != "" {
		HighlightColor = solid(t.Highlight)
	}
	if t.Subtle != "" {
		TextMutedColor = solid(t.Subtle)
		MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	}
	if t.Error != "" {
		StatusErrorColor = solid(t.Error)
		ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	}
	if t.Success != "" {
		StatusSuccessColor = solid(t.Success)
		SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	}
}

func solid(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
}
