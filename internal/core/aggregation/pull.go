package aggregation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/perfcube-lab/perfcube/internal/core/cube"
	"github.com/perfcube-lab/perfcube/internal/core/filter"
	"github.com/perfcube-lab/perfcube/internal/core/storage"
)

// ErrFetch marks failures of the record source. The pipeline never retries.
var ErrFetch = errors.New("record fetch failed")

// FetchError reports a failed fetch together with the condition that triggered it.
type FetchError struct {
	RequestID string
	Condition string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("request %s: fetching records for %s: %v", e.RequestID, e.Condition, e.Err)
}

// Unwrap exposes both ErrFetch and the underlying cause.
func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

// Request is one aggregation request.
type Request struct {
	// ID tags log lines and errors. Generated when empty.
	ID         string
	Condition  filter.Predicate
	Dimensions Dimensions
	Reference  *cube.Cube
	Options    Options
}

// Pull fetches the records matching req.Condition with a single call to source
// and runs the pipeline over them. The only suspension point is the fetch.
func Pull(ctx context.Context, source storage.RecordSource, req Request) (*cube.HyperCube, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Condition == nil {
		req.Condition = filter.All()
	}
	if err := req.Dimensions.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	records, err := source.Fetch(ctx, req.Condition)
	readTime := time.Since(start)
	observePhase("read data", readTime.Seconds())
	if err != nil {
		incFetchFailures()
		fetchErr := &FetchError{RequestID: req.ID, Condition: filter.String(req.Condition), Err: err}
		slog.Error("[Pipeline] Problem loading records",
			"request_id", req.ID,
			"condition", fetchErr.Condition,
			"error", err)
		return nil, fetchErr
	}
	addRecordsRead(len(records))
	slog.Info("[Pipeline] read data",
		"request_id", req.ID,
		"records", len(records),
		"duration", readTime)

	start = time.Now()
	hc, err := Compute(records, req.Dimensions, req.Reference, req.Options)
	processTime := time.Since(start)
	observePhase("process data", processTime.Seconds())
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", req.ID, err)
	}
	slog.Info("[Pipeline] process data",
		"request_id", req.ID,
		"records", len(records),
		"duration", processTime)

	return hc, nil
}
