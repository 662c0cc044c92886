package postgres

import (
	"encoding/json"
	"fmt"

	v1 "github.com/perfcube-lab/perfcube/internal/api/v1"
)

// marshalMeta marshals a record's metadata bag to JSON.
// Empty metadata produces nil (SQL NULL) rather than JSON "null".
func marshalMeta(rec *v1.Record) ([]byte, error) {
	if len(rec.Meta) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(rec.Meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal meta: %w", err)
	}
	return data, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRecordRow scans a database row into a Record.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanRecordRow(row scanner) (*v1.Record, error) {
	var rec v1.Record
	var metaJSON []byte

	err := row.Scan(
		&rec.ID,
		&rec.Test,
		&rec.Site,
		&rec.Platform,
		&rec.Browser,
		&rec.Value,
		&rec.PushTimestamp,
		&metaJSON,
		&rec.IngestedAt,
		&rec.IngestSeq,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan record row: %w", err)
	}

	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &rec.Meta); err != nil {
			return nil, fmt.Errorf("failed to unmarshal meta: %w", err)
		}
	}

	return &rec, nil
}
