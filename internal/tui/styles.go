package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/xonecas/glyphgrid/internal/constants"
	"github.com/xonecas/glyphgrid/internal/synth"
)

var (
	ColorField  = lipgloss.Color("#5f5f87") // background field
	ColorBlob   = lipgloss.Color("#8787af") // blob outline
	ColorText   = lipgloss.Color("#e4e4e4")
	ColorStatus = lipgloss.Color("#8a8a8a")
	ColorBg     = lipgloss.Color("#1c1c1c")
)

// Styles holds every style the view uses.
type Styles struct {
	Field lipgloss.Style
	Blob  lipgloss.Style
	Text  lipgloss.Style
	Red   lipgloss.Style
	Link  lipgloss.Style

	StatusText lipgloss.Style
	StatusURL  lipgloss.Style
	BgFill     lipgloss.Style
}

// NewStyles builds the styles with the given link color.
func NewStyles(linkColor string) Styles {
	if linkColor == "" {
		linkColor = constants.LinkColor
	}
	return Styles{
		Field:      lipgloss.NewStyle().Foreground(ColorField),
		Blob:       lipgloss.NewStyle().Foreground(ColorBlob),
		Text:       lipgloss.NewStyle().Foreground(ColorText),
		Red:        lipgloss.NewStyle().Foreground(lipgloss.Color(constants.RedColor)),
		Link:       lipgloss.NewStyle().Foreground(lipgloss.Color(linkColor)).Underline(true),
		StatusText: lipgloss.NewStyle().Background(ColorBg).Foreground(ColorStatus),
		StatusURL:  lipgloss.NewStyle().Background(ColorBg).Foreground(lipgloss.Color(linkColor)),
		BgFill:     lipgloss.NewStyle().Background(ColorBg),
	}
}

// glyph returns the style for a run of cells sharing layer and flags.
func (s Styles) glyph(layer synth.Layer, style synth.Style) lipgloss.Style {
	switch layer {
	case synth.LayerField:
		return s.Field
	case synth.LayerBlob:
		return s.Blob
	case synth.LayerText:
	default:
		return lipgloss.NewStyle()
	}
	st := s.Text
	switch {
	case style&synth.Link != 0:
		st = s.Link
	case style&synth.Red != 0:
		st = s.Red
	}
	if style&synth.Bold != 0 {
		st = st.Bold(true)
	}
	if style&synth.Italic != 0 {
		st = st.Italic(true)
	}
	return st
}
