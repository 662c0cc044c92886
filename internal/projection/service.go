package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/perfcube-lab/perfcube/internal/catalog"
	"github.com/perfcube-lab/perfcube/internal/core/aggregation"
	"github.com/perfcube-lab/perfcube/internal/core/cube"
	"github.com/perfcube-lab/perfcube/internal/core/filter"
	"github.com/perfcube-lab/perfcube/internal/core/storage"
)

const defaultMaxDays = 731

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid summary query")

// Catalog is the part of the combo catalog the projection reads.
type Catalog interface {
	Condition(browser string, tests, platforms []string) filter.Predicate
	Dimensions(tests, platforms []string, dates cube.Domain) (aggregation.Dimensions, error)
	Tests() []catalog.Entry
	Test(key string) (catalog.Entry, bool)
	Platform(key string) (catalog.Entry, bool)
}

// Settings carries the projection's share of the application config.
type Settings struct {
	Granularity time.Duration
	DefaultDays int
	MaxDays     int // push-date positions a single request may span
	Options     aggregation.Options

	// Dashboard selection. Empty DashboardTests renders every catalogued test.
	DashboardBrowser   string
	DashboardTests     []string
	DashboardPlatforms []string
}

// Service implements the summary read path: one record fetch and one pipeline
// evaluation per summary, never cached.
type Service struct {
	catalog    Catalog
	records    storage.RecordSource
	references storage.ReferenceSource
	settings   Settings
	nowFn      func() time.Time
}

// NewService creates a new projection service.
func NewService(
	cat Catalog,
	records storage.RecordSource,
	references storage.ReferenceSource,
	settings Settings,
) *Service {
	if settings.Granularity <= 0 {
		settings.Granularity = 24 * time.Hour
	}
	if settings.MaxDays <= 0 {
		settings.MaxDays = defaultMaxDays
	}
	if settings.DefaultDays <= 0 {
		settings.DefaultDays = 90
	}
	return &Service{
		catalog:    cat,
		records:    records,
		references: references,
		settings:   settings,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Summary computes the score, reference and coverage of every requested
// (test, platform) pair.
func (s *Service) Summary(ctx context.Context, req SummaryRequest) (*SummaryResponse, error) {
	req, err := s.normalizeAndValidate(req)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()

	dates, err := aggregation.DailyDomain(req.Start, req.End, s.settings.Granularity)
	if err != nil {
		return nil, invalidQueryf("%v", err)
	}

	dims, err := s.catalog.Dimensions(req.Tests, req.Platforms, dates)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownEntry) {
			return nil, invalidQueryf("%v", err)
		}
		return nil, fmt.Errorf("build dimensions: %w", err)
	}

	refValues, err := s.references.QueryReferences(ctx, req.Tests, req.Platforms)
	if err != nil {
		return nil, fmt.Errorf("load reference values: %w", err)
	}
	reference, err := aggregation.ReferenceCube(refValues, dims)
	if err != nil {
		return nil, fmt.Errorf("build reference cube: %w", err)
	}

	hc, err := aggregation.Pull(ctx, s.records, aggregation.Request{
		ID:         requestID,
		Condition:  s.catalog.Condition(req.Browser, req.Tests, req.Platforms),
		Dimensions: dims,
		Reference:  reference,
		Options:    s.settings.Options,
	})
	if err != nil {
		return nil, err
	}

	tests, err := s.present(hc)
	if err != nil {
		return nil, fmt.Errorf("request %s: present summary: %w", requestID, err)
	}

	slog.Debug("[Summary] Computed summary",
		"request_id", requestID,
		"browser", req.Browser,
		"tests", len(tests),
		"start", req.Start,
		"end", req.End)

	return &SummaryResponse{
		RequestID: requestID,
		Browser:   req.Browser,
		Start:     req.Start,
		End:       req.End,
		Tests:     tests,
	}, nil
}

// Dashboard runs one independent summary per dashboard test concurrently.
// Any failure cancels the others.
func (s *Service) Dashboard(ctx context.Context, start, end time.Time) (*DashboardResponse, error) {
	tests := s.settings.DashboardTests
	if len(tests) == 0 {
		for _, e := range s.catalog.Tests() {
			tests = append(tests, e.Key)
		}
	}

	summaries := make([]*SummaryResponse, len(tests))
	g, gctx := errgroup.WithContext(ctx)
	for i, test := range tests {
		i, test := i, test
		g.Go(func() error {
			resp, err := s.Summary(gctx, SummaryRequest{
				Browser:   s.settings.DashboardBrowser,
				Tests:     []string{test},
				Platforms: s.settings.DashboardPlatforms,
				Start:     start,
				End:       end,
			})
			if err != nil {
				return fmt.Errorf("dashboard test %q: %w", test, err)
			}
			summaries[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &DashboardResponse{Summaries: summaries}
	if len(summaries) > 0 {
		resp.Start, resp.End = summaries[0].Start, summaries[0].End
	}
	return resp, nil
}

func (s *Service) normalizeAndValidate(req SummaryRequest) (SummaryRequest, error) {
	if req.Browser == "" {
		req.Browser = s.settings.DashboardBrowser
	}
	if req.End.IsZero() {
		req.End = s.nowFn()
	}
	if req.Start.IsZero() {
		req.Start = req.End.Add(-time.Duration(s.settings.DefaultDays-1) * 24 * time.Hour)
	}
	req.Start = aggregation.BucketFor(req.Start, s.settings.Granularity)
	req.End = aggregation.BucketFor(req.End, s.settings.Granularity)

	if req.End.Before(req.Start) {
		return req, invalidQueryf("end date must not be before start date")
	}
	if positions := int64(req.End.Sub(req.Start)/s.settings.Granularity) + 1; positions > int64(s.settings.MaxDays) {
		return req, invalidQueryf("date range spans %d positions, at most %d allowed", positions, s.settings.MaxDays)
	}
	return req, nil
}

// present reads the summary cubes test by test, then platform by platform,
// then along the push dates.
func (s *Service) present(hc *cube.HyperCube) ([]TestSummary, error) {
	total := intValue(hc.Value(aggregation.CubeTotal))

	testPositions, err := hc.Along(aggregation.EdgeTest)
	if err != nil {
		return nil, err
	}

	out := make([]TestSummary, 0, len(testPositions))
	for _, tp := range testPositions {
		ts := TestSummary{Test: tp.Label, Label: tp.Label}
		if e, ok := s.catalog.Test(tp.Label); ok && e.Label != "" {
			ts.Label = e.Label
		}

		platformPositions, err := tp.View.Along(aggregation.EdgePlatform)
		if err != nil {
			return nil, err
		}
		for _, pp := range platformPositions {
			ps := PlatformSummary{
				Platform:  pp.Label,
				Label:     pp.Label,
				Count:     intValue(pp.View.Value(aggregation.CubeCount)),
				Total:     total,
				Reference: floatPtr(pp.View.Value(aggregation.CubeRef)),
			}
			if e, ok := s.catalog.Platform(pp.Label); ok && e.Label != "" {
				ps.Label = e.Label
			}

			datePositions, err := pp.View.Along(aggregation.EdgePushDate)
			if err != nil {
				return nil, err
			}
			ps.Series = make([]SeriesPoint, len(datePositions))
			for i, dp := range datePositions {
				date, _ := dp.Key.(time.Time)
				ps.Series[i] = SeriesPoint{
					Date:  date,
					Score: floatPtr(dp.View.Value(aggregation.CubeResult)),
				}
			}
			ts.Platforms = append(ts.Platforms, ps)
		}
		out = append(out, ts)
	}
	return out, nil
}

func floatPtr(c cube.Cell) *float64 {
	v, ok := c.Float()
	if !ok {
		return nil
	}
	return &v
}

func intValue(c cube.Cell) int {
	v, _ := c.Float()
	return int(v)
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
