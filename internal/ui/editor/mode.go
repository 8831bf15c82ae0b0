// Package editor provides the vim-style LaTeX editing component.
package editor

// Mode represents the current vim editing mode.
type Mode int

const (
	// ModeNormal is the default mode for navigation and commands.
	ModeNormal Mode = iota
	// ModeInsert is the mode for inserting text.
	ModeInsert
	// ModeVisual is the mode for character-wise visual selection.
	ModeVisual
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	default:
		return "UNKNOWN"
	}
}
