package store

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"

	"finder/internal/domain"
)

const recordsDir = "records"

// RecordFileStore caches enumeration results, one file per domain. File
// names are the BLAKE2b-256 digest of the domain, so any input string maps to
// a safe, fixed-length name.
type RecordFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewRecordFileStore returns a RecordFileStore rooted at dir.
func NewRecordFileStore(dir string) *RecordFileStore {
	return &RecordFileStore{dir: filepath.Join(dir, recordsDir)}
}

// SaveRecord stores or replaces the record for record.Domain.
func (s *RecordFileStore) SaveRecord(record domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(s.path(record.Domain), record, 0o600)
}

// LoadRecord returns the record for d and whether it was present.
func (s *RecordFileStore) LoadRecord(d string) (domain.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec domain.Record
	found, err := readJSON(s.path(d), &rec)
	if err != nil {
		return domain.Record{}, false, err
	}
	if !found || rec.Domain != d {
		return domain.Record{}, false, nil
	}
	return rec, true, nil
}

// ListRecords returns every stored record, newest first.
func (s *RecordFileStore) ListRecords() ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []domain.Record{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]domain.Record, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		var rec domain.Record
		if _, err := readJSON(filepath.Join(s.dir, e.Name()), &rec); err != nil {
			continue // skip unreadable records
		}
		if rec.Domain == "" {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *RecordFileStore) path(d string) string {
	sum := blake2b.Sum256([]byte(d))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".json")
}

// Compile-time assertion that RecordFileStore implements domain.RecordStore.
var _ domain.RecordStore = (*RecordFileStore)(nil)
