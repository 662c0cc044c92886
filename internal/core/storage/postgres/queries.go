package postgres

// SQL queries for record and reference storage.

const (
	// querySaveRecord inserts a record idempotently on id.
	// RETURNING retrieves the generated ingest_seq.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
	querySaveRecord = `
		INSERT INTO records (
			id, test, site, platform, browser,
			value, push_timestamp, meta, ingested_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
		RETURNING ingest_seq
	`

	// querySelectRecords is completed with a compiled WHERE clause and queryRecordsOrder.
	querySelectRecords = `
		SELECT
			id, test, site, platform, browser,
			value, push_timestamp, meta, ingested_at, ingest_seq
		FROM records
		WHERE `

	queryRecordsOrder = `
		ORDER BY push_timestamp ASC, ingest_seq ASC`

	// queryReferences reads baseline values; empty arrays mean "all".
	queryReferences = `
		SELECT test, platform, site, value
		FROM reference_values
		WHERE (cardinality($1::text[]) = 0 OR test = ANY($1))
		  AND (cardinality($2::text[]) = 0 OR platform = ANY($2))
		ORDER BY test ASC, platform ASC, site ASC
	`

	queryUpsertReference = `
		INSERT INTO reference_values (test, platform, site, value, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (test, platform, site)
		DO UPDATE SET
			value      = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
)
