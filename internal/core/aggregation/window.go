package aggregation

import (
	"fmt"
	"time"

	"github.com/perfcube-lab/perfcube/internal/core/cube"
)

// WindowSpec represents a parsed and validated time granularity.
type WindowSpec struct {
	Size time.Duration
}

// ParseWindowSize parses a duration string into a WindowSpec.
// Supports Go duration syntax (e.g., "10s", "1m", "1h") plus "Xd" for days.
func ParseWindowSize(s string) (WindowSpec, error) {
	if s == "" {
		return WindowSpec{}, fmt.Errorf("window size must not be empty")
	}

	// time.ParseDuration has no day unit.
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err != nil {
			return WindowSpec{}, fmt.Errorf("invalid window size %q: %w", s, err)
		}
		if days <= 0 {
			return WindowSpec{}, fmt.Errorf("window size must be positive, got %q", s)
		}
		return WindowSpec{Size: time.Duration(days) * 24 * time.Hour}, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return WindowSpec{}, fmt.Errorf("invalid window size %q: %w", s, err)
	}
	if d <= 0 {
		return WindowSpec{}, fmt.Errorf("window size must be positive, got %q", s)
	}
	return WindowSpec{Size: d}, nil
}

// BucketFor truncates a timestamp to the granularity boundary in UTC.
// Example: BucketFor(2024-03-02T17:35Z, 24h) → 2024-03-02T00:00Z
func BucketFor(t time.Time, granularity time.Duration) time.Time {
	return t.UTC().Truncate(granularity)
}

// DailyDomain builds the ordered push-date domain covering [start, end], both
// bucketed to granularity. Empty buckets are kept: the domain is the caller's
// range, not the dates that happen to have data.
func DailyDomain(start, end time.Time, granularity time.Duration) (*cube.RangeDomain, error) {
	if granularity <= 0 {
		return nil, fmt.Errorf("granularity must be positive, got %s", granularity)
	}
	first := BucketFor(start, granularity)
	last := BucketFor(end, granularity)
	if last.Before(first) {
		return nil, fmt.Errorf("date range end %s is before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	var keys []time.Time
	for t := first; !t.After(last); t = t.Add(granularity) {
		keys = append(keys, t)
	}
	return cube.NewRangeDomain(keys, granularity)
}
