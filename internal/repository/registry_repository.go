package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rmsp-tools/registry/internal/db"
	"github.com/rmsp-tools/registry/internal/domain"
)

const upsertRecordSQL = `
	INSERT INTO msp_registry (
		inn, entity_kind, category, region_code, region_name,
		snapshot_date, source_file, raw_fields, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	ON CONFLICT (inn) DO UPDATE SET
		entity_kind   = EXCLUDED.entity_kind,
		category      = EXCLUDED.category,
		region_code   = EXCLUDED.region_code,
		region_name   = EXCLUDED.region_name,
		snapshot_date = EXCLUDED.snapshot_date,
		source_file   = EXCLUDED.source_file,
		raw_fields    = EXCLUDED.raw_fields,
		updated_at    = now()`

const selectRecordColumns = `
	inn, entity_kind, category, region_code, region_name, snapshot_date, source_file, raw_fields`

// PostgresStore is the registry store backed by Postgres. Point lookups go
// through the primary key index on inn.
type PostgresStore struct {
	conn *db.Connection
}

var _ RegistryStore = (*PostgresStore)(nil)

// NewPostgresStore creates a Postgres backed registry store.
func NewPostgresStore(conn *db.Connection) *PostgresStore {
	return &PostgresStore{conn: conn}
}

// UpsertMany commits a batch of records in one transaction, replacing any
// prior entry per INN entirely.
func (s *PostgresStore) UpsertMany(ctx context.Context, records []domain.RegistryRecord) error {
	if len(records) == 0 {
		return nil
	}

	err := s.conn.WithTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, record := range records {
			rawFields, err := json.Marshal(record.RawFields)
			if err != nil {
				return fmt.Errorf("failed to marshal raw fields for %s: %w", record.INN, err)
			}
			batch.Queue(upsertRecordSQL,
				record.INN,
				string(record.Kind),
				string(record.Category),
				nullableText(record.RegionCode),
				nullableText(record.RegionName),
				nullableDate(record.SnapshotDate),
				record.SourceFile,
				rawFields,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for range records {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return fmt.Errorf("failed to upsert registry record: %w", err)
			}
		}
		return results.Close()
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// Get returns the record committed for one INN.
func (s *PostgresStore) Get(ctx context.Context, inn string) (domain.RegistryRecord, error) {
	row := s.conn.Pool.QueryRow(ctx,
		`SELECT `+selectRecordColumns+` FROM msp_registry WHERE inn = $1`, inn)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RegistryRecord{}, ErrNotFound
		}
		return domain.RegistryRecord{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return record, nil
}

// GetMany returns the records present for the given INNs.
func (s *PostgresStore) GetMany(ctx context.Context, inns []string) (map[string]domain.RegistryRecord, error) {
	found := make(map[string]domain.RegistryRecord, len(inns))
	if len(inns) == 0 {
		return found, nil
	}

	rows, err := s.conn.Pool.Query(ctx,
		`SELECT `+selectRecordColumns+` FROM msp_registry WHERE inn = ANY($1)`, inns)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		found[record.INN] = record
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return found, nil
}

// EnsureInnIndex creates the (inn) lookup index after a bulk load.
// CONCURRENTLY cannot run inside a transaction, so this goes straight to
// the pool.
func (s *PostgresStore) EnsureInnIndex(ctx context.Context) error {
	_, err := s.conn.Pool.Exec(ctx,
		`CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_msp_registry_inn ON msp_registry (inn)`)
	if err != nil {
		return fmt.Errorf("failed to create inn index: %w", err)
	}
	return nil
}

func scanRecord(row pgx.Row) (domain.RegistryRecord, error) {
	var (
		record       domain.RegistryRecord
		kind         string
		category     string
		regionCode   pgtype.Text
		regionName   pgtype.Text
		snapshotDate pgtype.Date
		rawFields    []byte
	)

	err := row.Scan(&record.INN, &kind, &category, &regionCode, &regionName,
		&snapshotDate, &record.SourceFile, &rawFields)
	if err != nil {
		return domain.RegistryRecord{}, err
	}

	record.Kind = domain.EntityKind(kind)
	record.Category = domain.Category(category)
	record.RegionCode = regionCode.String
	record.RegionName = regionName.String
	if snapshotDate.Valid {
		record.SnapshotDate = snapshotDate.Time
	}
	if len(rawFields) > 0 {
		if err := json.Unmarshal(rawFields, &record.RawFields); err != nil {
			return domain.RegistryRecord{}, fmt.Errorf("failed to decode raw fields: %w", err)
		}
	}
	return record, nil
}

func nullableText(value string) pgtype.Text {
	return pgtype.Text{String: value, Valid: value != ""}
}

func nullableDate(value time.Time) pgtype.Date {
	return pgtype.Date{Time: value, Valid: !value.IsZero()}
}
