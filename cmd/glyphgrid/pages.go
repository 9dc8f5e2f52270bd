package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/glyphgrid/internal/content"
	"github.com/xonecas/glyphgrid/internal/layout"
	"github.com/xonecas/glyphgrid/internal/store"
)

// pageScheme prefixes links that open another page in place.
const pageScheme = "page:"

// library resolves page names against the store, then the built-in pages.
type library struct {
	store *store.Store
}

func (l *library) document(name string) (*content.Document, error) {
	doc, err := l.store.Page(name)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if doc, ok := content.Demo(name); ok {
		return doc, nil
	}
	return nil, fmt.Errorf("page %q: %w", name, store.ErrNotFound)
}

// initial returns the first document to show and the key its scroll
// position is stored under. A content file wins over the store.
func (l *library) initial(path, page string) (*content.Document, string, error) {
	if path != "" {
		doc, err := content.Load(path)
		if err != nil {
			return nil, "", err
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		return doc, "file:" + path, nil
	}
	doc, err := l.document(page)
	if err != nil {
		return nil, "", err
	}
	return doc, page, nil
}

// Navigate opens page: links. Anything else leaves the application.
func (l *library) Navigate(url string) (string, string, []layout.TextBlock, bool) {
	name, ok := strings.CutPrefix(url, pageScheme)
	if !ok || name == "" {
		return "", "", nil, false
	}
	doc, err := l.document(name)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("link target missing")
		return "", "", nil, false
	}
	blocks, err := doc.TextBlocks()
	if err != nil {
		log.Warn().Err(err).Str("page", name).Msg("bad page")
		return "", "", nil, false
	}
	return name, doc.Title, blocks, true
}

// command runs a store subcommand.
func command(st *store.Store, page string, args []string, stdout io.Writer) error {
	switch args[0] {
	case "import":
		if len(args) != 2 {
			return errors.New("usage: glyphgrid [-page name] import <file.toml>")
		}
		doc, err := content.Load(args[1])
		if err != nil {
			return err
		}
		if _, err := doc.TextBlocks(); err != nil {
			return err
		}
		if err := st.PutPage(page, doc); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "stored %s as %q\n", args[1], page)
		return nil
	case "pages":
		pages, err := st.Pages()
		if err != nil {
			return err
		}
		for _, p := range pages {
			fmt.Fprintf(stdout, "%-16s %-24s %s\n", p.Name, p.Title, p.Updated.Format("2006-01-02 15:04"))
		}
		return nil
	case "rm":
		if len(args) != 2 {
			return errors.New("usage: glyphgrid rm <name>")
		}
		return st.DeletePage(args[1])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
