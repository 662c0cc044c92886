package storage

import (
	"context"
	"errors"

	v1 "github.com/perfcube-lab/perfcube/internal/api/v1"
	"github.com/perfcube-lab/perfcube/internal/core/filter"
)

// ErrDuplicate is returned when a record with the same id already exists.
var ErrDuplicate = errors.New("record already exists")

// RecordSource returns every record matching a condition, regardless of date.
// Date restriction is the caller's job.
type RecordSource interface {
	Fetch(ctx context.Context, condition filter.Predicate) ([]*v1.Record, error)
}

// RecordStore is a RecordSource that also accepts new records.
type RecordStore interface {
	RecordSource

	// SaveRecord persists rec and populates rec.IngestSeq.
	// Returns ErrDuplicate when rec.ID is already stored.
	SaveRecord(ctx context.Context, rec *v1.Record) error
}

// ReferenceValue is one baseline value for a (test, platform, site) address.
type ReferenceValue struct {
	Test     string  `json:"test" yaml:"test"`
	Platform string  `json:"platform" yaml:"platform"`
	Site     string  `json:"site" yaml:"site"`
	Value    float64 `json:"value" yaml:"value"`
}

// ReferenceSource supplies baseline values. Empty tests or platforms mean "all".
type ReferenceSource interface {
	QueryReferences(ctx context.Context, tests, platforms []string) ([]ReferenceValue, error)
}

// ReferenceWriter replaces baseline values. Implementations apply a batch atomically.
type ReferenceWriter interface {
	UpsertReferences(ctx context.Context, values []ReferenceValue) error
}
