package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xonecas/glyphgrid/internal/content"
)

// ErrNotFound is returned for a page that does not exist.
var ErrNotFound = errors.New("page not found")

// PageInfo describes a stored page without its body.
type PageInfo struct {
	Name    string
	Title   string
	Updated time.Time
}

// PutPage stores doc under name, replacing any previous version.
func (s *Store) PutPage(name string, doc *content.Document) error {
	if s == nil {
		return nil
	}
	if name == "" {
		return errors.New("put page: name is required")
	}
	src, err := content.Marshal(doc)
	if err != nil {
		return fmt.Errorf("put page %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO pages (name, title, source, updated) VALUES (?, ?, ?, ?)",
		name, doc.Title, src, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("put page %q: %w", name, err)
	}
	return nil
}

// Page loads the page stored under name. A nil store has no pages.
func (s *Store) Page(name string) (*content.Document, error) {
	if s == nil {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	var src string
	err := s.db.QueryRow("SELECT source FROM pages WHERE name = ?", name).Scan(&src)
	s.mu.Unlock()
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load page %q: %w", name, err)
	}
	doc, err := content.Parse([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("load page %q: %w", name, err)
	}
	return doc, nil
}

// Pages lists stored pages ordered by name.
func (s *Store) Pages() ([]PageInfo, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT name, title, updated FROM pages ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var out []PageInfo
	for rows.Next() {
		var p PageInfo
		var updated int64
		if err := rows.Scan(&p.Name, &p.Title, &updated); err != nil {
			return nil, fmt.Errorf("list pages: %w", err)
		}
		p.Updated = time.Unix(updated, 0)
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePage removes a page and its remembered view.
func (s *Store) DeletePage(name string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM pages WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete page %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	s.db.Exec("DELETE FROM views WHERE page = ?", name) //nolint:errcheck // best-effort
	return nil
}
