// Package content loads grid documents: a title plus an ordered list of
// text blocks, stored as TOML.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/glyphgrid/internal/layout"
)

// Block is a layout block whose text may be given as inline HTML instead
// of grid markup.
type Block struct {
	layout.TextBlock
	HTML string `toml:"html,omitempty"`
}

// Document is one page of content.
type Document struct {
	Title  string  `toml:"title"`
	Blocks []Block `toml:"blocks"`
}

// Parse decodes and validates a TOML document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	for _, k := range md.Undecoded() {
		log.Warn().Str("key", k.String()).Msg("unknown content key")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Validate reports every problem in the document at once.
func (d *Document) Validate() error {
	var errs []error
	for i, b := range d.Blocks {
		if b.Text != "" && b.HTML != "" {
			errs = append(errs, fmt.Errorf("blocks[%d]: text and html are mutually exclusive", i))
		}
		switch b.Alignment {
		case "", layout.AlignLeft, layout.AlignCenter, layout.AlignRight:
		default:
			errs = append(errs, fmt.Errorf("blocks[%d]: alignment=%q must be left, center or right", i, b.Alignment))
		}
		if b.MaxWidthPercent < 0 || b.MaxWidthPercent > 100 {
			errs = append(errs, fmt.Errorf("blocks[%d]: max_width_percent=%v must be within 0-100", i, b.MaxWidthPercent))
		}
	}
	return errors.Join(errs...)
}

// TextBlocks returns the layout input, converting HTML blocks to markup.
func (d *Document) TextBlocks() ([]layout.TextBlock, error) {
	out := make([]layout.TextBlock, 0, len(d.Blocks))
	for i, b := range d.Blocks {
		tb := b.TextBlock
		if b.HTML != "" {
			text, err := FromHTML(b.HTML)
			if err != nil {
				return nil, fmt.Errorf("blocks[%d]: %w", i, err)
			}
			tb.Text = text
		}
		out = append(out, tb)
	}
	return out, nil
}

// Encode writes the document as TOML.
func Encode(w io.Writer, d *Document) error {
	if err := toml.NewEncoder(w).Encode(d); err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	return nil
}

// Marshal is Encode into a string.
func Marshal(d *Document) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
