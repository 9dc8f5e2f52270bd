// Package grapheme splits text into grid cells.
//
// A cell is one extended grapheme cluster. Emoji sequences, combining marks
// and flags therefore occupy exactly one column, and layout never splits a
// visual character across cells.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Clean strips terminal escape sequences and normalizes s to NFC.
// Tabs become single spaces; other control characters are dropped.
func Clean(s string) string {
	s = ansi.Strip(s)
	s = norm.NFC.String(s)
	if !strings.ContainsFunc(s, isControl) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t':
			b.WriteByte(' ')
		case r == '\n':
			b.WriteByte('\n')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isControl(r rune) bool {
	return r != '\n' && unicode.IsControl(r)
}

// Segment returns the grapheme clusters of s in order. The input is not
// cleaned; callers that accept untrusted text should run Clean first.
func Segment(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}

// Count returns the number of cells s occupies.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// IsBlank reports whether a cluster renders as empty space.
func IsBlank(cluster string) bool {
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Index maps a byte offset in s to the index of the cell containing it.
// Offsets past the end map to the cell count.
func Index(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	n, pos := 0, 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
		if pos > byteOffset {
			return n
		}
		n++
	}
	return n
}
