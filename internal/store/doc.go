// Package store provides file-based persistence for finder.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk. All methods are concurrency-safe via
// internal locking, and every write goes through a temp file and a rename so
// a crash never leaves a half-written file behind.
//
// The package includes stores for:
//   - The CLI's local submission log (HistoryFileStore)
//   - The service's per-domain enumeration cache (RecordFileStore)
package store
