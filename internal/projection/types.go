package projection

import (
	"time"
)

// SummaryRequest selects the combos and date range of one summary.
// Empty Tests or Platforms select the whole catalog. Zero Start/End fall back
// to the configured default range ending today.
type SummaryRequest struct {
	Browser   string
	Tests     []string
	Platforms []string
	Start     time.Time
	End       time.Time
}

// SeriesPoint is one push date of a platform's score line. Score is null for
// dates with no usable data.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Score *float64  `json:"score"`
}

// PlatformSummary is the presentation view of one (test, platform) pair.
type PlatformSummary struct {
	Platform string `json:"platform"`
	Label    string `json:"label"`

	// Count is the number of sites that reported recently, out of Total.
	Count int `json:"count"`
	Total int `json:"total"`

	// Reference is the baseline score line. Null when no reporting site has a baseline.
	Reference *float64 `json:"reference"`

	Series []SeriesPoint `json:"series"`
}

// TestSummary groups the platforms of one test.
type TestSummary struct {
	Test      string            `json:"test"`
	Label     string            `json:"label"`
	Platforms []PlatformSummary `json:"platforms"`
}

// SummaryResponse is the response of GET /v1/summary.
type SummaryResponse struct {
	RequestID string        `json:"request_id"`
	Browser   string        `json:"browser"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Tests     []TestSummary `json:"tests"`
}

// DashboardResponse is the response of GET /v1/dashboard: one summary per
// configured test, each computed by its own aggregation request.
type DashboardResponse struct {
	Start     time.Time          `json:"start"`
	End       time.Time          `json:"end"`
	Summaries []*SummaryResponse `json:"summaries"`
}
