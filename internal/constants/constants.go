// Package constants holds application-wide names and defaults shared by the
// CLI, configuration and hosts.
package constants

// AppName is used for the data directory, the log file and env prefixes.
const AppName = "glyphgrid"

// Files inside the data directory.
const (
	LogFile   = "glyphgrid.log"
	StoreFile = "pages.db"
)

// DefaultPage is the store page shown when none is named.
const DefaultPage = "home"

// Backends selectable with ui.backend or -backend.
const (
	BackendBubbletea = "bubbletea"
	BackendTcell     = "tcell"
)

// LinkColor is the default foreground for link runs.
//
// Any lipgloss color works: ANSI index ("4"), or hex ("#5f87ff").
const LinkColor = "#5f87ff"

// RedColor is the foreground for &&red&& runs.
const RedColor = "#d75f5f"

// ViewTTLHours is how long remembered scroll positions survive.
const ViewTTLHours = 24 * 30
