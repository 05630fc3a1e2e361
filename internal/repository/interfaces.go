package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rmsp-tools/registry/internal/domain"
)

// ErrNotFound is returned by point lookups that miss.
var ErrNotFound = errors.New("registry record not found")

// ErrStoreUnavailable marks a store connectivity failure. It is fatal to
// the operation that hit it and is never retried by the engine.
var ErrStoreUnavailable = errors.New("registry store unavailable")

// RegistryStore is the indexed-by-INN collection of canonical records. It
// owns committed records exclusively; readers never mutate through it.
type RegistryStore interface {
	// UpsertMany commits records with replace-by-key semantics: a record
	// fully overwrites any prior entry for the same INN.
	UpsertMany(ctx context.Context, records []domain.RegistryRecord) error
	// Get returns the record for one INN, or ErrNotFound.
	Get(ctx context.Context, inn string) (domain.RegistryRecord, error)
	// GetMany returns the records present for the given INNs, keyed by INN.
	// Absent INNs are simply missing from the result.
	GetMany(ctx context.Context, inns []string) (map[string]domain.RegistryRecord, error)
}

// LoadLogRepository stores row level load rejections for auditing.
type LoadLogRepository interface {
	Record(ctx context.Context, entry domain.LoadLogEntry) error
	List(ctx context.Context, batchID uuid.UUID, limit, offset int) ([]domain.LoadLogEntry, error)
}
