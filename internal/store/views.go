package store

import (
	"time"

	"github.com/rs/zerolog/log"
)

type saveReq struct {
	page   string
	offset float64
	flush  chan struct{}
}

// SaveView queues the scroll offset for page for async persistence.
// Non-blocking; the UI loop calls it on every settled scroll.
func (s *Store) SaveView(page string, offset float64) {
	if s == nil || page == "" {
		return
	}
	select {
	case s.saveCh <- saveReq{page: page, offset: offset}:
	default:
		log.Warn().Str("page", page).Msg("save channel full, dropping view")
	}
}

// saveLoop drains saveCh and writes views to the DB.
func (s *Store) saveLoop() {
	defer close(s.done)
	for req := range s.saveCh {
		if req.flush != nil {
			close(req.flush)
			continue
		}
		s.writeView(req.page, req.offset)
	}
}

func (s *Store) writeView(page string, offset float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO views (page, scroll, updated) VALUES (?, ?, ?)",
		page, offset, time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Str("page", page).Msg("failed to save view")
	}
}

// Flush blocks until all queued view saves have been written.
// Times out after 5 seconds to avoid deadlocking the caller.
func (s *Store) Flush() {
	if s == nil {
		return
	}
	done := make(chan struct{})
	select {
	case s.saveCh <- saveReq{flush: done}:
		<-done
	case <-time.After(5 * time.Second):
		log.Warn().Msg("flush timed out waiting to enqueue")
	}
}

// View returns the remembered scroll offset for page.
// Safe to call on a nil receiver (returns miss).
func (s *Store) View(page string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var offset float64
	if err := s.db.QueryRow("SELECT scroll FROM views WHERE page = ?", page).Scan(&offset); err != nil {
		return 0, false
	}
	return offset, true
}
