// Package tui hosts the renderer in a bubbletea program: it forwards
// terminal input to the engine and paints its frames.
package tui

import (
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/glyphgrid/internal/engine"
	"github.com/xonecas/glyphgrid/internal/layout"
)

// statusRows is the height of the status line when shown.
const statusRows = 1

// wheelRows is how far one wheel notch scrolls.
const wheelRows = 3

// ViewStore remembers the scroll position of a page.
type ViewStore interface {
	View(page string) (float64, bool)
	SaveView(page string, offset float64)
}

// Navigator resolves a clicked link to another page. ok is false for links
// that leave the application; those stay whited out with the URL shown.
type Navigator interface {
	Navigate(url string) (page, title string, blocks []layout.TextBlock, ok bool)
}

// Options configures a Model.
type Options struct {
	Title string
	Page  string
	// Offset is the scroll position to restore once the size is known.
	Offset    float64
	LinkColor string
	Views     ViewStore
	Navigator Navigator
	// Clock stamps input events; defaults to time.Now.
	Clock func() time.Time
}

type keyMap struct {
	Quit     key.Binding
	WhiteOut key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Status   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		WhiteOut: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "whiteout")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "back")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "space", "f"), key.WithHelp("pgdn", "page")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Status:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
	}
}

// ShortHelp is the status line's key summary.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.WhiteOut, k.PageDown, k.Status}
}

// Model is the application model.
type Model struct {
	eng    *engine.Engine
	styles Styles
	keys   keyMap
	help   help.Model
	clock  func() time.Time

	width, height int
	resizeSeq     int
	sized         bool

	title      string
	page       string
	restore    float64
	showStatus bool
	// link is the URL being followed; navigation runs when the whiteout
	// completes.
	link      string
	views     ViewStore
	nav       Navigator
	savedRow  int
	surface   string
}

// New creates a model driving eng.
func New(eng *engine.Engine, opts Options) Model {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return Model{
		eng:        eng,
		styles:     NewStyles(opts.LinkColor),
		keys:       defaultKeys(),
		help:       help.New(),
		clock:      clock,
		title:      opts.Title,
		page:       opts.Page,
		restore:    opts.Offset,
		showStatus: true,
		views:      opts.Views,
		nav:        opts.Navigator,
		savedRow:   -1,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameTick(m.eng.Interval())
}

// surfaceRows is the height handed to the engine.
func (m Model) surfaceRows() int {
	if m.showStatus {
		return max(m.height-statusRows, 0)
	}
	return m.height
}
