package domain

import (
	"time"

	"github.com/google/uuid"
)

// LoadLogEntry captures a row level rejection that occurred while loading a
// snapshot. Entries make data completeness auditable after a partial load.
type LoadLogEntry struct {
	ID           uuid.UUID `json:"id"`
	BatchID      uuid.UUID `json:"batch_id"`
	FileName     string    `json:"file_name"`
	RowNumber    *int      `json:"row_number,omitempty"`
	ErrorMessage string    `json:"error_message"`
	CreatedAt    time.Time `json:"created_at"`
}
