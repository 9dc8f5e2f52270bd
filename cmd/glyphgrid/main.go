package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/glyphgrid/internal/config"
	"github.com/xonecas/glyphgrid/internal/constants"
	"github.com/xonecas/glyphgrid/internal/engine"
	"github.com/xonecas/glyphgrid/internal/store"
	"github.com/xonecas/glyphgrid/internal/tcellhost"
	"github.com/xonecas/glyphgrid/internal/tui"
)

const usage = `usage: glyphgrid [flags] [command]

commands:
  (none)               show a page
  import <file.toml>   store a document under -page
  pages                list stored pages
  rm <name>            delete a stored page

flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "glyphgrid: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	config  string
	content string
	db      string
	page    string
	backend string
	fps     int
}

func parseFlags(args []string) (*flags, []string, error) {
	f := &flags{}
	fs := flag.NewFlagSet(constants.AppName, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&f.config, "config", "", "config file (default <data dir>/config.toml when present)")
	fs.StringVar(&f.content, "content", "", "TOML document to show instead of a stored page")
	fs.StringVar(&f.db, "db", "", "page store (default <data dir>/"+constants.StoreFile+")")
	fs.StringVar(&f.page, "page", "", "page name (default "+constants.DefaultPage+")")
	fs.StringVar(&f.backend, "backend", "", "terminal host: bubbletea or tcell")
	fs.IntVar(&f.fps, "fps", 0, "frame rate")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// loadConfig reads the config file and lets flags win over it.
func loadConfig(f *flags, dataDir string) (*config.Config, error) {
	path := f.config
	if path == "" {
		if p := filepath.Join(dataDir, "config.toml"); fileExists(p) {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if f.content != "" {
		cfg.Content.Path = f.content
	}
	if f.db != "" {
		cfg.Content.DB = f.db
	}
	if f.page != "" {
		cfg.Content.Page = f.page
	}
	if f.backend != "" {
		cfg.UI.Backend = f.backend
	}
	if f.fps != 0 {
		cfg.Render.FPS = f.fps
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// setupLogging sends the global logger to a file; the terminal belongs to
// the host. The returned func restores the previous logger.
func setupLogging(cfg *config.Config, dataDir string) (func(), error) {
	path := cfg.Log.FileOrDefault(dataDir)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	prev := log.Logger
	zerolog.SetGlobalLevel(cfg.Log.LevelOrDefault())
	log.Logger = zerolog.New(file).With().Timestamp().Logger()
	return func() {
		log.Logger = prev
		file.Close()
	}, nil
}

func run(args []string, stdout io.Writer) error {
	f, rest, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	cfg, err := loadConfig(f, dataDir)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, dataDir)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := store.Open(cfg.Content.DBOrDefault(dataDir), constants.ViewTTLHours*time.Hour)
	if err != nil {
		return err
	}
	defer st.Close()

	page := cfg.Content.PageOrDefault()
	if len(rest) > 0 {
		return command(st, page, rest, stdout)
	}
	return show(cfg, st, page)
}

// show opens the requested page in the configured host.
func show(cfg *config.Config, st *store.Store, page string) error {
	lib := &library{store: st}
	doc, viewKey, err := lib.initial(cfg.Content.Path, page)
	if err != nil {
		return err
	}
	blocks, err := doc.TextBlocks()
	if err != nil {
		return err
	}

	eng := engine.New(cfg.EngineOptions())
	defer eng.Stop()
	eng.SetBlocks(blocks)

	offset, _ := st.View(viewKey)
	log.Info().
		Str("page", viewKey).
		Str("backend", cfg.UI.BackendOrDefault()).
		Int("fps", cfg.EngineOptions().FPS).
		Msg("starting")

	switch cfg.UI.BackendOrDefault() {
	case constants.BackendTcell:
		return runTcell(eng, tcellhost.Options{
			Page:      viewKey,
			Offset:    offset,
			LinkColor: cfg.UI.LinkColorOrDefault(),
			Views:     st,
			Navigator: lib,
		})
	default:
		model := tui.New(eng, tui.Options{
			Title:     doc.Title,
			Page:      viewKey,
			Offset:    offset,
			LinkColor: cfg.UI.LinkColorOrDefault(),
			Views:     st,
			Navigator: lib,
		})
		p := tea.NewProgram(model, tea.WithFilter(tui.MouseEventFilter))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run: %w", err)
		}
		return nil
	}
}

func runTcell(eng *engine.Engine, opts tcellhost.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tcellhost.New(screen, eng, opts).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
