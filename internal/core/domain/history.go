package domain

import "time"

// NoParameters is the parameter summary of operations that take no arguments.
const NoParameters = "{}"

// HistoryEntry records one curation operation run on a corpus.
// Entries are append-only and never modified.
type HistoryEntry struct {
	id         string
	operation  string
	parameters string
	recordedAt time.Time
}

// NewHistoryEntry creates an entry.
func NewHistoryEntry(id, operation, parameters string, recordedAt time.Time) HistoryEntry {
	return HistoryEntry{
		id:         id,
		operation:  operation,
		parameters: parameters,
		recordedAt: recordedAt,
	}
}

// ID returns the unique identifier of the entry.
func (h HistoryEntry) ID() string { return h.id }

// Operation returns the operation name, e.g. "drop_duplicate_chants".
func (h HistoryEntry) Operation() string { return h.operation }

// Parameters returns the human-readable argument summary.
func (h HistoryEntry) Parameters() string { return h.parameters }

// RecordedAt returns when the operation ran.
func (h HistoryEntry) RecordedAt() time.Time { return h.recordedAt }

func (h HistoryEntry) String() string {
	return h.operation + "\n" + h.parameters
}
