package catalog

import (
	"sync"
)

// Store holds the current catalog and swaps it atomically on reload.
type Store struct {
	mu   sync.RWMutex
	cat  *Catalog
	opts Options
}

// NewStore loads path and wraps it in a Store.
func NewStore(path string, opts Options) (*Store, error) {
	cat, err := Load(path, opts)
	if err != nil {
		return nil, err
	}
	return &Store{cat: cat, opts: opts}, nil
}

// Snapshot returns the current catalog. Callers must not modify it.
func (s *Store) Snapshot() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// Reload re-reads the catalog file. On failure the previous catalog stays
// in place and the error is returned.
func (s *Store) Reload() (*Catalog, error) {
	s.mu.RLock()
	path := s.cat.Path
	s.mu.RUnlock()

	cat, err := Load(path, s.opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cat = cat
	s.mu.Unlock()
	return cat, nil
}
