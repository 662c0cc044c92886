package aggregation

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	v1 "github.com/perfcube-lab/perfcube/internal/api/v1"
)

func TestParseWindowSize_PushDateGranularities(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr string
	}{
		{input: "1d", want: 24 * time.Hour},
		{input: "7d", want: 7 * 24 * time.Hour},
		{input: "24h", want: 24 * time.Hour},
		{input: "12h", want: 12 * time.Hour},
		{input: "", wantErr: "must not be empty"},
		{input: "0d", wantErr: "must be positive"},
		{input: "-24h", wantErr: "must be positive"},
		{input: "weekly", wantErr: "invalid window size"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			spec, err := ParseWindowSize(tc.input)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, spec.Size)
		})
	}
}

func TestParseWindowSize_DayGranularityKeepsEmptyBuckets(t *testing.T) {
	spec, err := ParseWindowSize("1d")
	require.NoError(t, err)

	// records only on the first and last day; the three days between still get positions
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 22, 0, 0, 0, time.UTC)
	dates, err := DailyDomain(start, end, spec.Size)
	require.NoError(t, err)
	require.Equal(t, 5, dates.Len())

	dims := testDims(t, 5, "a")
	dims.Dates = dates
	records := []*v1.Record{rec("a", 1, 10), rec("a", 5, 30)}
	s, err := Evaluate(records, dims, nil, Options{})
	require.NoError(t, err)

	// the gap is inside the active region, so daily carries day one forward
	require.Empty(t, cmp.Diff([]float64{10, 10, 10, 10, 30}, dailySeries(t, s, dims, "a"), nanEqual))
}

func TestBucketFor(t *testing.T) {
	ts := time.Date(2026, 2, 11, 10, 35, 42, 123456789, time.UTC)

	require.Equal(t,
		time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC),
		BucketFor(ts.In(time.FixedZone("UTC+9", 9*3600)), 24*time.Hour),
		"buckets are computed in UTC",
	)

	require.Equal(t,
		time.Date(2026, 2, 11, 10, 35, 0, 0, time.UTC),
		BucketFor(ts, time.Minute),
	)
	require.Equal(t,
		time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC),
		BucketFor(ts, time.Hour),
	)
	require.Equal(t,
		time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC),
		BucketFor(ts, 24*time.Hour),
	)
}

func TestDailyDomain(t *testing.T) {
	start := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 4, 1, 0, 0, 0, time.UTC)

	d, err := DailyDomain(start, end, 24*time.Hour)
	require.NoError(t, err)
	require.Equal(t, 4, d.Len())
	require.Equal(t, "2024-03-01", d.Label(0))
	require.Equal(t, "2024-03-04", d.Label(3))

	d, err = DailyDomain(start, start, 24*time.Hour)
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())

	_, err = DailyDomain(end, start, 24*time.Hour)
	require.Error(t, err)

	_, err = DailyDomain(start, end, 0)
	require.Error(t, err)
}
