package domain

import (
	interfaces "finder/internal/domain/interfaces"
	types "finder/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Record       = types.Record
	HistoryEntry = types.HistoryEntry
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SubdomainFinder = interfaces.SubdomainFinder
	RecordClient    = interfaces.RecordClient
	HistoryStore    = interfaces.HistoryStore
	RecordStore     = interfaces.RecordStore
	Source          = interfaces.Source
	Enumerator      = interfaces.Enumerator
)
