package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/perfcube-lab/perfcube/internal/core/storage"
)

// ReferenceAdapter implements storage.ReferenceSource over the reference_values table.
type ReferenceAdapter struct {
	db    *sql.DB
	nowFn func() time.Time
}

// NewReferenceAdapter creates a ReferenceAdapter sharing the given connection.
func NewReferenceAdapter(db *sql.DB) *ReferenceAdapter {
	return &ReferenceAdapter{db: db, nowFn: time.Now}
}

// QueryReferences returns baseline values for the given tests and platforms.
// Empty slices select everything.
func (a *ReferenceAdapter) QueryReferences(ctx context.Context, tests, platforms []string) ([]storage.ReferenceValue, error) {
	if tests == nil {
		tests = []string{}
	}
	if platforms == nil {
		platforms = []string{}
	}

	rows, err := a.db.QueryContext(ctx, queryReferences, pq.Array(tests), pq.Array(platforms))
	if err != nil {
		return nil, fmt.Errorf("reference_values query: %w", err)
	}
	defer rows.Close()

	var out []storage.ReferenceValue
	for rows.Next() {
		var v storage.ReferenceValue
		if err := rows.Scan(&v.Test, &v.Platform, &v.Site, &v.Value); err != nil {
			return nil, fmt.Errorf("reference_values scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reference_values rows: %w", err)
	}
	return out, nil
}

// UpsertReferences writes baseline values in one transaction: either all of
// them land or none do.
func (a *ReferenceAdapter) UpsertReferences(ctx context.Context, values []storage.ReferenceValue) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reference upsert: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, queryUpsertReference)
	if err != nil {
		return fmt.Errorf("reference upsert: prepare: %w", err)
	}
	defer stmt.Close()

	now := a.nowFn().UTC()
	for _, v := range values {
		if _, err := stmt.ExecContext(ctx, v.Test, v.Platform, v.Site, v.Value, now); err != nil {
			return fmt.Errorf("reference upsert %s/%s/%s: %w", v.Test, v.Platform, v.Site, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reference upsert: commit: %w", err)
	}

	slog.Info("[Postgres] Upserted reference values", "count", len(values))
	return nil
}
