// Package font provides glyph-art fonts: each text cluster is drawn as a
// small block of grid cells several rows tall. Fonts are TOML documents.
package font

import (
	"embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/xonecas/glyphgrid/internal/grapheme"
)

//go:embed fonts/*.toml
var builtinFS embed.FS

// Font is a fixed-height glyph-art font.
type Font struct {
	Name    string              `toml:"name"`
	Height  int                 `toml:"height"`
	Spacing int                 `toml:"spacing"`
	Glyphs  map[string][]string `toml:"glyphs"`

	// cells caches the segmented rows of each glyph.
	cells map[string][][]string
}

// Parse decodes and validates a TOML font definition.
func Parse(data []byte) (*Font, error) {
	var f Font
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("decode font: %w", err)
	}
	if err := f.prepare(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Font) prepare() error {
	var errs []error
	if f.Name == "" {
		errs = append(errs, errors.New("font: name is required"))
	}
	if f.Height <= 0 {
		errs = append(errs, fmt.Errorf("font %q: height=%d must be positive", f.Name, f.Height))
	}
	if f.Spacing < 0 {
		errs = append(errs, fmt.Errorf("font %q: spacing=%d must not be negative", f.Name, f.Spacing))
	}
	f.cells = make(map[string][][]string, len(f.Glyphs))
	for key, rows := range f.Glyphs {
		if len(rows) != f.Height {
			errs = append(errs, fmt.Errorf("font %q: glyph %q has %d rows, want %d", f.Name, key, len(rows), f.Height))
			continue
		}
		seg := make([][]string, len(rows))
		for i, row := range rows {
			seg[i] = grapheme.Segment(row)
			if len(seg[i]) != len(seg[0]) {
				errs = append(errs, fmt.Errorf("font %q: glyph %q row %d is %d wide, want %d", f.Name, key, i, len(seg[i]), len(seg[0])))
			}
		}
		f.cells[key] = seg
	}
	return errors.Join(errs...)
}

// Glyph returns the art rows for a cluster as cells. Lowercase letters fall
// back to uppercase and anything else unknown to "?". A cluster the font
// cannot draw at all is placed as-is on the bottom row.
func (f *Font) Glyph(cluster string) [][]string {
	if g, ok := f.cells[cluster]; ok {
		return g
	}
	if g, ok := f.cells[strings.ToUpper(cluster)]; ok {
		return g
	}
	if grapheme.IsBlank(cluster) {
		if g, ok := f.cells[" "]; ok {
			return g
		}
	}
	if g, ok := f.cells["?"]; ok {
		return g
	}
	rows := make([][]string, f.Height)
	for i := range rows {
		rows[i] = []string{" "}
	}
	rows[f.Height-1] = []string{cluster}
	return rows
}

// Registry maps font names to fonts.
type Registry struct {
	mu    sync.RWMutex
	fonts map[string]*Font
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fonts: make(map[string]*Font)}
}

// Register adds or replaces a font.
func (r *Registry) Register(f *Font) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fonts[f.Name] = f
}

// Lookup returns the named font.
func (r *Registry) Lookup(name string) (*Font, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.fonts[name]
	return f, ok
}

// Names lists registered fonts, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.fonts))
	for name := range r.fonts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var (
	builtinOnce sync.Once
	builtin     *Registry
)

// Builtin returns the registry holding the embedded fonts.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		builtin = NewRegistry()
		entries, err := builtinFS.ReadDir("fonts")
		if err != nil {
			panic(err)
		}
		for _, e := range entries {
			data, err := builtinFS.ReadFile("fonts/" + e.Name())
			if err != nil {
				panic(err)
			}
			f, err := Parse(data)
			if err != nil {
				panic(fmt.Sprintf("builtin font %s: %v", e.Name(), err))
			}
			builtin.Register(f)
		}
	})
	return builtin
}
