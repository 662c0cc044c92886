package catalog

import (
	"fmt"

	"github.com/perfcube-lab/perfcube/internal/core/aggregation"
	"github.com/perfcube-lab/perfcube/internal/core/cube"
)

// Dimensions builds the pipeline dimensions for the requested tests and
// platforms over every catalogued site. Empty tests or platforms select the
// whole catalog. Requested keys keep the caller's order; repeats are dropped.
func (c *Catalog) Dimensions(tests, platforms []string, dates cube.Domain) (aggregation.Dimensions, error) {
	testDomain, err := domain(aggregation.EdgeTest, c.tests, tests)
	if err != nil {
		return aggregation.Dimensions{}, err
	}
	platformDomain, err := domain(aggregation.EdgePlatform, c.platforms, platforms)
	if err != nil {
		return aggregation.Dimensions{}, err
	}
	siteDomain, err := domain(aggregation.EdgeSite, c.sites, nil)
	if err != nil {
		return aggregation.Dimensions{}, err
	}

	dims := aggregation.Dimensions{
		Tests:     testDomain,
		Sites:     siteDomain,
		Platforms: platformDomain,
		Dates:     dates,
	}
	return dims, dims.Validate()
}

func domain(field string, entries []Entry, keys []string) (*cube.SetDomain, error) {
	selected := entries
	if len(keys) > 0 {
		selected = make([]Entry, 0, len(keys))
		seen := make(map[string]bool, len(keys))
		for _, k := range keys {
			if seen[k] {
				continue
			}
			seen[k] = true
			e, ok := find(entries, k)
			if !ok {
				return nil, fmt.Errorf("%w: %s %q", ErrUnknownEntry, field, k)
			}
			selected = append(selected, e)
		}
	}

	buckets := make([]cube.Bucket, len(selected))
	for i, e := range selected {
		buckets[i] = cube.Bucket{Label: e.Key, Value: e.Key, Where: e.Filter}
	}
	d, err := cube.NewSetDomain(field, buckets...)
	if err != nil {
		return nil, fmt.Errorf("catalog %s domain: %w", field, err)
	}
	return d, nil
}
