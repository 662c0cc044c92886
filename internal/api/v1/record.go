package v1

import (
	"fmt"
	"math"
	"time"
)

// Record is one raw performance-test observation.
// Records are immutable once ingested: the aggregation pipeline partitions them, never mutates them.
type Record struct {
	// ID is the client-provided identifier. Ingestion assigns a UUID when it is empty.
	ID string `json:"id"`

	// Test, Site, Platform and Browser are the categorical attributes records are
	// partitioned and filtered on.
	Test     string `json:"test"`
	Site     string `json:"site"`
	Platform string `json:"platform"`
	Browser  string `json:"browser,omitempty"`

	// Value is the measured number (e.g. a load time in ms).
	Value float64 `json:"value"`

	// PushTimestamp is the date of the push that produced this measurement.
	PushTimestamp time.Time `json:"push_timestamp"`

	// Meta is the flattened metadata bag. Keys are addressable by filters just like
	// the named attributes above.
	Meta map[string]string `json:"meta,omitempty"`

	// IngestedAt is set by the ingestion service, not the client.
	IngestedAt time.Time `json:"ingested_at"`

	// IngestSeq is assigned by the database (BIGSERIAL), not exposed in the public API.
	IngestSeq int64 `json:"-"`
}

// Attr resolves an attribute by name. Named attributes win over metadata keys of the
// same name. The second return value reports whether the attribute is set at all.
func (r *Record) Attr(name string) (string, bool) {
	switch name {
	case "test":
		return r.Test, r.Test != ""
	case "site":
		return r.Site, r.Site != ""
	case "platform":
		return r.Platform, r.Platform != ""
	case "browser":
		return r.Browser, r.Browser != ""
	}
	v, ok := r.Meta[name]
	return v, ok
}

// Validate ensures the record carries everything the pipeline partitions on.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	if r.Test == "" {
		return fmt.Errorf("test is required")
	}
	if r.Site == "" {
		return fmt.Errorf("site is required")
	}
	if r.Platform == "" {
		return fmt.Errorf("platform is required")
	}
	if r.PushTimestamp.IsZero() {
		return fmt.Errorf("push_timestamp is required")
	}
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return fmt.Errorf("value must be a finite number")
	}
	return nil
}
