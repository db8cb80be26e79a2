// Package audit keeps the append-only change log. Every accepted cell write
// produces exactly one entry; nothing in the system updates or deletes
// entries once appended.
package audit

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the in-memory append-only audit log. Entries are held newest
// first, matching how the audit console presents them.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewStore creates an empty audit store
func NewStore() *Store {
	return &Store{}
}

// Append records one field change and returns the stored entry. The ID and,
// when unset, the timestamp are filled in here.
func (s *Store) Append(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]Entry{e}, s.entries...)
	return e
}

// List returns all entries, newest first
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Entry(nil), s.entries...)
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Search returns the entries matching the filter, newest first
func (s *Store) Search(f Filter) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if !matches(e, f) {
			continue
		}
		matched = append(matched, e)
	}

	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			return nil
		}
		matched = matched[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched
}

// GetStats aggregates the log by workspace, operator, and field
func (s *Store) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		TotalEntries: len(s.entries),
		ByWorkspace:  make(map[string]int),
		ByOperator:   make(map[string]int),
		ByField:      make(map[string]int),
	}
	for _, e := range s.entries {
		stats.ByWorkspace[e.WorkspaceID]++
		stats.ByOperator[e.OperatorName]++
		stats.ByField[e.Field]++
		if stats.FirstEntry.IsZero() || e.Timestamp.Before(stats.FirstEntry) {
			stats.FirstEntry = e.Timestamp
		}
		if e.Timestamp.After(stats.LastEntry) {
			stats.LastEntry = e.Timestamp
		}
	}
	return stats
}

// Export serializes the entries matching the filter. Unknown formats fall
// back to JSON.
func (s *Store) Export(f Filter, format ExportFormat) ([]byte, error) {
	entries := s.Search(f)

	switch format {
	case ExportFormatCSV:
		return exportCSV(entries)
	case ExportFormatNDJSON:
		return exportNDJSON(entries)
	default:
		return exportJSON(entries)
	}
}

func matches(e Entry, f Filter) bool {
	if f.RowID != "" && e.RowID != f.RowID {
		return false
	}
	if f.WorkspaceID != "" && e.WorkspaceID != f.WorkspaceID {
		return false
	}
	if f.OperatorName != "" && !strings.EqualFold(e.OperatorName, f.OperatorName) {
		return false
	}
	if f.Field != "" && e.Field != f.Field {
		return false
	}
	if !f.Since.IsZero() && e.Timestamp.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && e.Timestamp.After(f.Until) {
		return false
	}
	return true
}
