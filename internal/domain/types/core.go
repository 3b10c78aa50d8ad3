package types

import "time"

// Record is the stored outcome of one enumeration run for a domain.
type Record struct {
	Domain     string    `json:"domain"`
	Subdomains []string  `json:"subdomains"`
	Timestamp  time.Time `json:"timestamp"`
}

// Count returns the number of subdomains in the record.
func (r Record) Count() int { return len(r.Subdomains) }
