package store

import (
	"path/filepath"
	"sync"

	"finder/internal/domain"
)

const (
	historyFile = "history.json"

	// DefaultHistoryCap bounds the number of entries kept on disk.
	DefaultHistoryCap = 500
)

// HistoryFileStore keeps the CLI's submission log, oldest entry first.
type HistoryFileStore struct {
	dir string
	cap int
	mu  sync.Mutex
}

// NewHistoryFileStore returns a HistoryFileStore rooted at dir.
func NewHistoryFileStore(dir string) *HistoryFileStore {
	return &HistoryFileStore{dir: dir, cap: DefaultHistoryCap}
}

// AppendHistory adds entry, dropping the oldest entries beyond the cap.
func (s *HistoryFileStore) AppendHistory(entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, historyFile)
	var entries []domain.HistoryEntry
	if _, err := readJSON(path, &entries); err != nil {
		return err
	}
	entries = append(entries, entry)
	if len(entries) > s.cap {
		entries = entries[len(entries)-s.cap:]
	}
	return writeJSON(path, entries, 0o600)
}

// LoadHistory returns up to limit entries, newest first. limit <= 0 means all.
func (s *HistoryFileStore) LoadHistory(limit int) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []domain.HistoryEntry
	if _, err := readJSON(filepath.Join(s.dir, historyFile), &entries); err != nil {
		return nil, err
	}
	n := len(entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.HistoryEntry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

// Compile-time assertion that HistoryFileStore implements domain.HistoryStore.
var _ domain.HistoryStore = (*HistoryFileStore)(nil)
