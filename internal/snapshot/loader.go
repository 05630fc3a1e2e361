package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rmsp-tools/registry/internal/domain"
	"github.com/rmsp-tools/registry/internal/registry"
	"github.com/rmsp-tools/registry/internal/repository"
)

// ErrEmptySnapshot is returned when a scanned snapshot yields no loadable
// records. The caller reports it; the loader never retries.
var ErrEmptySnapshot = errors.New("snapshot contains no loadable records")

const defaultLoadBatchSize = 20000

// LoadSummary is the auditable outcome of one snapshot load.
type LoadSummary struct {
	BatchID      uuid.UUID
	FilesScanned int
	RowsRead     int
	Loaded       int
	Rejected     int
	Conflicts    int
	SnapshotDate time.Time
	Elapsed      time.Duration
}

// Loader walks a snapshot directory, drives the normalizer, resolves
// within-snapshot INN conflicts and commits records to the registry store.
type Loader struct {
	store      repository.RegistryStore
	normalizer *registry.Normalizer
	loadLog    repository.LoadLogRepository
	logger     *zap.Logger
	batchSize  int
}

// Option customizes a Loader.
type Option func(*Loader)

// WithBatchSize sets the commit batch size.
func WithBatchSize(size int) Option {
	return func(l *Loader) {
		if size > 0 {
			l.batchSize = size
		}
	}
}

// WithLoadLog enables persistent auditing of row level rejections.
func WithLoadLog(loadLog repository.LoadLogRepository) Option {
	return func(l *Loader) {
		l.loadLog = loadLog
	}
}

// NewLoader creates a snapshot loader.
func NewLoader(store repository.RegistryStore, normalizer *registry.Normalizer, logger *zap.Logger, opts ...Option) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	loader := &Loader{
		store:      store,
		normalizer: normalizer,
		logger:     logger,
		batchSize:  defaultLoadBatchSize,
	}
	for _, opt := range opts {
		opt(loader)
	}
	return loader
}

// LoadSnapshot ingests every XML shard of the snapshot directory. Rows
// failing normalization are counted and skipped; file read failures and
// store failures abort the load. Shard order is undefined by the source,
// so the conflict rule never depends on it.
func (l *Loader) LoadSnapshot(ctx context.Context, dir string) (LoadSummary, error) {
	started := time.Now()
	summary := LoadSummary{BatchID: uuid.New()}

	shards, err := listShards(dir)
	if err != nil {
		return summary, err
	}

	pending := make(map[string]domain.RegistryRecord)
	var order []string

	for _, shard := range shards {
		summary.FilesScanned++
		fileDate, hasFileDate := shardDate(filepath.Base(shard))
		rowsBefore := summary.RowsRead

		err := readShard(shard, func(row *registry.RawRow) {
			summary.RowsRead++

			profile, ok := registry.DetectProfile(row)
			if !ok {
				summary.Rejected++
				l.recordRejection(ctx, summary.BatchID, row, errors.New("no schema profile matches document"))
				return
			}

			record, err := l.normalizer.Normalize(row, profile)
			if err != nil {
				summary.Rejected++
				l.recordRejection(ctx, summary.BatchID, row, err)
				return
			}

			if record.SnapshotDate.IsZero() && hasFileDate {
				record.SnapshotDate = fileDate
			}
			if record.SnapshotDate.After(summary.SnapshotDate) {
				summary.SnapshotDate = record.SnapshotDate
			}

			previous, exists := pending[record.INN]
			if !exists {
				pending[record.INN] = record
				order = append(order, record.INN)
				return
			}
			merged, conflict := resolveConflict(previous, record)
			if conflict {
				summary.Conflicts++
			}
			pending[record.INN] = merged
		})
		if err != nil {
			return summary, err
		}

		l.logger.Info("snapshot shard read",
			zap.String("file", filepath.Base(shard)),
			zap.Int("rows", summary.RowsRead-rowsBefore))
	}

	if len(pending) == 0 {
		summary.Elapsed = time.Since(started)
		return summary, fmt.Errorf("%w: %s", ErrEmptySnapshot, dir)
	}

	for start := 0; start < len(order); start += l.batchSize {
		end := min(start+l.batchSize, len(order))
		batch := make([]domain.RegistryRecord, 0, end-start)
		for _, inn := range order[start:end] {
			batch = append(batch, pending[inn])
		}
		if err := l.store.UpsertMany(ctx, batch); err != nil {
			return summary, fmt.Errorf("failed to commit snapshot batch: %w", err)
		}
		summary.Loaded += len(batch)
		l.logger.Info("records committed", zap.Int("loaded", summary.Loaded), zap.Int("total", len(order)))
	}

	summary.Elapsed = time.Since(started)
	l.logger.Info("snapshot load complete",
		zap.Int("files", summary.FilesScanned),
		zap.Int("rows", summary.RowsRead),
		zap.Int("loaded", summary.Loaded),
		zap.Int("rejected", summary.Rejected),
		zap.Int("conflicts", summary.Conflicts),
		zap.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

// resolveConflict applies the within-snapshot rule for two valid rows with
// the same INN: prefer the row with a populated region code; when both are
// populated and differ, the later row wins and the clash is reported.
func resolveConflict(previous, next domain.RegistryRecord) (domain.RegistryRecord, bool) {
	switch {
	case previous.HasRegion() && !next.HasRegion():
		return previous, false
	case !previous.HasRegion() && next.HasRegion():
		return next, false
	case previous.HasRegion() && next.HasRegion() && previous.RegionCode != next.RegionCode:
		return next, true
	default:
		return next, false
	}
}

func listShards(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &SnapshotReadError{File: dir, Err: err}
	}
	var shards []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			shards = append(shards, filepath.Join(dir, entry.Name()))
		}
	}
	return shards, nil
}

func (l *Loader) recordRejection(ctx context.Context, batchID uuid.UUID, row *registry.RawRow, cause error) {
	if l.loadLog == nil {
		return
	}
	rowNumber := row.Index
	entry := domain.LoadLogEntry{
		BatchID:      batchID,
		FileName:     row.File,
		RowNumber:    &rowNumber,
		ErrorMessage: cause.Error(),
	}
	if err := l.loadLog.Record(ctx, entry); err != nil {
		l.logger.Warn("failed to record load rejection", zap.Error(err))
	}
}
