package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rmsp-tools/registry/internal/domain"
)

// MemoryStore is an in-memory registry store with the same semantics as
// the Postgres implementation. It backs isolated test runs and dry runs
// against an explicitly passed store handle.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.RegistryRecord
}

var _ RegistryStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]domain.RegistryRecord)}
}

// UpsertMany replaces any prior entry per INN entirely.
func (s *MemoryStore) UpsertMany(ctx context.Context, records []domain.RegistryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		s.records[record.INN] = record
	}
	return nil
}

// Get returns the record for one INN, or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, inn string) (domain.RegistryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[inn]
	if !ok {
		return domain.RegistryRecord{}, ErrNotFound
	}
	return record, nil
}

// GetMany returns the records present for the given INNs.
func (s *MemoryStore) GetMany(ctx context.Context, inns []string) (map[string]domain.RegistryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := make(map[string]domain.RegistryRecord, len(inns))
	for _, inn := range inns {
		if record, ok := s.records[inn]; ok {
			found[inn] = record
		}
	}
	return found, nil
}

// Len reports the number of committed records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// MemoryLoadLog collects load rejections in memory.
type MemoryLoadLog struct {
	mu      sync.Mutex
	entries []domain.LoadLogEntry
}

var _ LoadLogRepository = (*MemoryLoadLog)(nil)

// NewMemoryLoadLog creates an empty in-memory load log.
func NewMemoryLoadLog() *MemoryLoadLog {
	return &MemoryLoadLog{}
}

func (l *MemoryLoadLog) Record(ctx context.Context, entry domain.LoadLogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	l.entries = append(l.entries, entry)
	return nil
}

func (l *MemoryLoadLog) List(ctx context.Context, batchID uuid.UUID, limit, offset int) ([]domain.LoadLogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var matched []domain.LoadLogEntry
	for _, entry := range l.entries {
		if batchID == uuid.Nil || entry.BatchID == batchID {
			matched = append(matched, entry)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}
