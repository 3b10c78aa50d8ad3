package types

import "time"

// HistoryEntry records one settled submission made from the CLI.
type HistoryEntry struct {
	Domain string    `json:"domain"`
	Count  int       `json:"count"`
	Error  string    `json:"error,omitempty"`
	At     time.Time `json:"at"`
}

// Failed reports whether the submission ended in the failure state.
func (e HistoryEntry) Failed() bool { return e.Error != "" }
