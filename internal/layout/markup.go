package layout

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Style is a set of inline style flags.
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleItalic
	StyleRed
)

// Run is one grapheme cluster with its inline style and link id. Link ids
// index into the url table returned by ParseMarkup, offset by one; zero
// means no link.
type Run struct {
	Char  string
	Style Style
	Link  int
}

func (r Run) blank() bool {
	return r.Char == " " || r.Char == ""
}

// toggles are the symmetric style markers.
var toggles = []struct {
	marker string
	style  Style
}{
	{"**", StyleBold},
	{"//", StyleItalic},
	{"&&", StyleRed},
}

type markupParser struct {
	urls []string
}

// ParseMarkup converts one line of inline markup into cell runs.
//
// Supported forms are **bold**, //italic//, &&red&&, [label](url) and
// [[label]](url). The double-bracket form keeps the brackets visible but
// only the label is clickable. Anything unbalanced renders literally.
func ParseMarkup(line string) ([]Run, []string) {
	p := &markupParser{}
	runs := p.parse(line, 0, 0, nil)
	return runs, p.urls
}

func (p *markupParser) parse(s string, style Style, link int, out []Run) []Run {
	state := -1
	for len(s) > 0 {
		if n, ok := p.toggle(s, style, link, &out); ok {
			s = s[n:]
			state = -1
			continue
		}
		if link == 0 && s[0] == '[' {
			if n, ok := p.link(s, style, &out); ok {
				s = s[n:]
				state = -1
				continue
			}
		}
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, Run{Char: cluster, Style: style, Link: link})
	}
	return out
}

func (p *markupParser) toggle(s string, style Style, link int, out *[]Run) (int, bool) {
	for _, t := range toggles {
		if !strings.HasPrefix(s, t.marker) {
			continue
		}
		end := strings.Index(s[len(t.marker):], t.marker)
		if end < 0 {
			return 0, false
		}
		inner := s[len(t.marker) : len(t.marker)+end]
		*out = p.parse(inner, style|t.style, link, *out)
		return len(t.marker)*2 + end, true
	}
	return 0, false
}

func (p *markupParser) link(s string, style Style, out *[]Run) (int, bool) {
	double := strings.HasPrefix(s, "[[")
	open, sep := "[", "]("
	if double {
		open, sep = "[[", "]]("
	}
	mid := strings.Index(s[len(open):], sep)
	if mid < 0 {
		return 0, false
	}
	label := s[len(open) : len(open)+mid]
	rest := s[len(open)+mid+len(sep):]
	end := strings.IndexByte(rest, ')')
	if end < 0 || label == "" {
		return 0, false
	}
	url := strings.TrimSpace(rest[:end])
	if url == "" {
		return 0, false
	}
	p.urls = append(p.urls, url)
	id := len(p.urls)
	if double {
		*out = append(*out, Run{Char: "[", Style: style})
	}
	*out = p.parse(label, style, id, *out)
	if double {
		*out = append(*out, Run{Char: "]", Style: style})
	}
	return len(open) + mid + len(sep) + end + 1, true
}

// Plain returns the rendered text of runs.
func Plain(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Char)
	}
	return b.String()
}
