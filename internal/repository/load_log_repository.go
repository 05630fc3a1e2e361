package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rmsp-tools/registry/internal/db"
	"github.com/rmsp-tools/registry/internal/domain"
)

type postgresLoadLog struct {
	conn *db.Connection
}

// NewLoadLogRepository wires a load log backed by Postgres.
func NewLoadLogRepository(conn *db.Connection) LoadLogRepository {
	return &postgresLoadLog{conn: conn}
}

func (r *postgresLoadLog) Record(ctx context.Context, entry domain.LoadLogEntry) error {
	if r.conn == nil {
		return fmt.Errorf("load log repository not initialized")
	}

	id := entry.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	var rowNumber any
	if entry.RowNumber != nil {
		rowNumber = *entry.RowNumber
	}

	_, err := r.conn.Pool.Exec(ctx, `
		INSERT INTO msp_load_log (id, batch_id, file_name, row_number, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, now())`,
		id, entry.BatchID, entry.FileName, rowNumber, entry.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to record load log entry: %w", err)
	}
	return nil
}

func (r *postgresLoadLog) List(ctx context.Context, batchID uuid.UUID, limit, offset int) ([]domain.LoadLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.conn.Pool.Query(ctx, `
		SELECT id, batch_id, file_name, row_number, error_message, created_at
		FROM msp_load_log
		WHERE ($1::uuid IS NULL OR batch_id = $1)
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`,
		nullableUUID(batchID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list load log entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LoadLogEntry
	for rows.Next() {
		var (
			entry     domain.LoadLogEntry
			rowNumber pgtype.Int4
		)
		if err := rows.Scan(&entry.ID, &entry.BatchID, &entry.FileName, &rowNumber, &entry.ErrorMessage, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan load log entry: %w", err)
		}
		if rowNumber.Valid {
			value := int(rowNumber.Int32)
			entry.RowNumber = &value
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func nullableUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}
