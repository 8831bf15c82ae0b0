// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"} // Document text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // File names, secondary info
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Empty buffer placeholder

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	HighlightColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Mode badge colors (Catppuccin Mocha accents)
	ModeNormalColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // blue
	ModeInsertColor = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"} // green
	ModeVisualColor = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve

	// LaTeX syntax highlighting colors (Catppuccin Mocha)
	TexMacroColor   = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve
	TexEnvColor     = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"} // teal
	TexMathColor    = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"} // yellow
	TexBraceColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // blue
	TexCommentColor = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"} // overlay0

	// Statusbar
	StatusBarBgColor   = lipgloss.AdaptiveColor{Light: "#E6E9EF", Dark: "#1E1E2E"}
	StatusBarTextColor = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#CDD6F4"}

	// Line numbers
	LineNumberColor = lipgloss.AdaptiveColor{Light: "#BCC0CC", Dark: "#45475A"}

	PlaceholderStyle = lipgloss.NewStyle().Foreground(TextPlaceholderColor)
	LineNumberStyle  = lipgloss.NewStyle().Foreground(LineNumberColor)

	TexMacroStyle   = lipgloss.NewStyle().Foreground(TexMacroColor)
	TexEnvStyle     = lipgloss.NewStyle().Foreground(TexEnvColor).Bold(true)
	TexMathStyle    = lipgloss.NewStyle().Foreground(TexMathColor)
	TexBraceStyle   = lipgloss.NewStyle().Foreground(TexBraceColor)
	TexCommentStyle = lipgloss.NewStyle().Foreground(TexCommentColor).Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Background(StatusBarBgColor).
			Foreground(StatusBarTextColor)

	modeBadgeBase = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#11111B"})

	ModeNormalStyle = modeBadgeBase.Background(ModeNormalColor)
	ModeInsertStyle = modeBadgeBase.Background(ModeInsertColor)
	ModeVisualStyle = modeBadgeBase.Background(ModeVisualColor)

	ErrorStyle   = lipgloss.NewStyle().Foreground(StatusErrorColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	MutedStyle   = lipgloss.NewStyle().Foreground(TextMutedColor)
)
