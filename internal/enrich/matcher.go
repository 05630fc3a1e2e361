package enrich

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rmsp-tools/registry/internal/domain"
	"github.com/rmsp-tools/registry/internal/repository"
)

const defaultMatchBatchSize = 10000

// Matcher joins an input INN sequence against the registry store. It only
// reads; the store owns the records.
type Matcher struct {
	store     repository.RegistryStore
	logger    *zap.Logger
	batchSize int
}

// Option customizes a Matcher.
type Option func(*Matcher)

// WithBatchSize sets the bulk lookup chunk size.
func WithBatchSize(size int) Option {
	return func(m *Matcher) {
		if size > 0 {
			m.batchSize = size
		}
	}
}

// NewMatcher creates an enrichment matcher.
func NewMatcher(store repository.RegistryStore, logger *zap.Logger, opts ...Option) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	matcher := &Matcher{
		store:     store,
		logger:    logger,
		batchSize: defaultMatchBatchSize,
	}
	for _, opt := range opts {
		opt(matcher)
	}
	return matcher
}

// Enrich produces one result per input INN, preserving input order and
// multiplicity. Structurally invalid INNs never reach the store. Any store
// failure aborts the whole batch; there are no partial results.
func (m *Matcher) Enrich(ctx context.Context, inns []string) ([]domain.EnrichmentResult, error) {
	results := make([]domain.EnrichmentResult, len(inns))

	seen := make(map[string]struct{})
	var lookup []string
	for i, raw := range inns {
		inn := strings.TrimSpace(raw)
		results[i] = domain.EnrichmentResult{INN: inn}
		if !domain.ValidINN(inn) {
			continue
		}
		results[i].Valid = true
		if _, dup := seen[inn]; !dup {
			seen[inn] = struct{}{}
			lookup = append(lookup, inn)
		}
	}

	found := make(map[string]domain.RegistryRecord, len(lookup))
	for start := 0; start < len(lookup); start += m.batchSize {
		end := min(start+m.batchSize, len(lookup))
		chunk, err := m.store.GetMany(ctx, lookup[start:end])
		if err != nil {
			return nil, fmt.Errorf("enrichment lookup failed: %w", err)
		}
		for inn, record := range chunk {
			found[inn] = record
		}
	}

	for i := range results {
		if !results[i].Valid {
			continue
		}
		if record, ok := found[results[i].INN]; ok {
			results[i] = domain.EnrichmentFromRecord(results[i].INN, record)
		}
	}

	m.logger.Info("enrichment batch complete",
		zap.Int("input", len(inns)),
		zap.Int("looked_up", len(lookup)),
		zap.Int("found", len(found)))
	return results, nil
}
