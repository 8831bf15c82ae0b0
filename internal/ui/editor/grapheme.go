package editor

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cursor columns are grapheme indices, not byte offsets. A grapheme cluster
// is what the user perceives as one character; it may span several bytes.
// These helpers convert between the two units.

// Character classes for word motion.
const (
	classWhitespace = iota
	classWord
	classPunct
)

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// GraphemeToByteOffset converts a grapheme index to a byte offset.
// Indexes past the end clamp to len(s).
func GraphemeToByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	n := 0
	state := -1
	orig := s
	for len(s) > 0 {
		_, rest, _, newState := uniseg.StepString(s, state)
		n++
		if n == idx {
			return len(orig) - len(rest)
		}
		s = rest
		state = newState
	}
	return len(orig)
}

// ByteToGraphemeOffset converts a byte offset to the index of the grapheme
// it falls within. Offsets past the end map to the grapheme count.
func ByteToGraphemeOffset(s string, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(s) {
		return GraphemeCount(s)
	}
	idx := 0
	pos := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if off < pos+len(cluster) {
			return idx
		}
		idx++
		pos += len(cluster)
		s = rest
		state = newState
	}
	return idx
}

// GraphemeAt returns the grapheme cluster at idx, or "" out of bounds.
func GraphemeAt(s string, idx int) string {
	if idx < 0 {
		return ""
	}
	n := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if n == idx {
			return cluster
		}
		n++
		s = rest
		state = newState
	}
	return ""
}

// SliceByGraphemes returns the substring from grapheme index start to end
// (exclusive), like s[start:end] but grapheme-aware.
func SliceByGraphemes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}
	a := GraphemeToByteOffset(s, start)
	b := GraphemeToByteOffset(s, end)
	if a >= len(s) {
		return ""
	}
	if b > len(s) {
		b = len(s)
	}
	return s[a:b]
}

// StringDisplayWidth returns the terminal cell width of s.
func StringDisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// graphemeClass classifies a cluster for word boundary detection, keyed off
// its base character.
func graphemeClass(cluster string) int {
	for _, r := range cluster {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return classWhitespace
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_':
			return classWord
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			return classWord
		default:
			return classPunct
		}
	}
	return classWhitespace
}

// graphemes splits s into its grapheme clusters.
func graphemes(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		out = append(out, cluster)
		s = rest
		state = newState
	}
	return out
}
