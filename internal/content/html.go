package content

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromHTML converts a fragment of inline HTML to grid markup. Bold, italic,
// red spans, links and line breaks map onto their markup forms; other tags
// contribute their text only and scripts are dropped.
func FromHTML(s string) (string, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), ctx)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	var c converter
	for _, n := range nodes {
		c.node(n)
	}
	lines := strings.Split(strings.Trim(c.b.String(), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, "\n"), nil
}

type converter struct {
	b strings.Builder
	// inLink suppresses nested anchors; markup has no nested links.
	inLink bool
}

func (c *converter) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		c.text(n.Data)
		return
	case html.ElementNode:
	default:
		c.children(n)
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head:
	case atom.Br:
		c.b.WriteByte('\n')
	case atom.B, atom.Strong, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		block := n.DataAtom != atom.B && n.DataAtom != atom.Strong
		if block {
			c.breakLine()
		}
		c.wrap("**", n)
		if block {
			c.breakLine()
		}
	case atom.I, atom.Em:
		c.wrap("//", n)
	case atom.Span:
		if hasClass(n, "red") {
			c.wrap("&&", n)
		} else {
			c.children(n)
		}
	case atom.A:
		href := attr(n, "href")
		if href == "" || c.inLink {
			c.children(n)
			return
		}
		c.inLink = true
		c.b.WriteByte('[')
		c.children(n)
		c.b.WriteString("](" + href + ")")
		c.inLink = false
	case atom.P, atom.Div, atom.Li, atom.Ul, atom.Ol, atom.Blockquote:
		c.breakLine()
		c.children(n)
		c.breakLine()
	default:
		c.children(n)
	}
}

func (c *converter) children(n *html.Node) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.node(ch)
	}
}

func (c *converter) wrap(marker string, n *html.Node) {
	c.b.WriteString(marker)
	c.children(n)
	c.b.WriteString(marker)
}

// text writes s with whitespace runs collapsed to one space.
func (c *converter) text(s string) {
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			space = true
			continue
		}
		if space && c.b.Len() > 0 && !strings.HasSuffix(c.b.String(), "\n") {
			c.b.WriteByte(' ')
		}
		space = false
		c.b.WriteRune(r)
	}
	if space && c.b.Len() > 0 {
		c.b.WriteByte(' ')
	}
}

func (c *converter) breakLine() {
	if c.b.Len() == 0 || strings.HasSuffix(c.b.String(), "\n") {
		return
	}
	c.b.WriteByte('\n')
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}
