package interfaces

import domaintypes "finder/internal/domain/types"

// HistoryStore keeps the local log of submissions.
type HistoryStore interface {
	AppendHistory(entry domaintypes.HistoryEntry) error
	LoadHistory(limit int) ([]domaintypes.HistoryEntry, error)
}

// RecordStore caches enumeration results by domain.
type RecordStore interface {
	SaveRecord(record domaintypes.Record) error
	LoadRecord(domain string) (domaintypes.Record, bool, error)
	ListRecords() ([]domaintypes.Record, error)
}
