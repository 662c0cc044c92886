package aggregation

import (
	"fmt"

	"github.com/perfcube-lab/perfcube/internal/core/cube"
)

// Registered reducers.
const (
	OpMean    = "mean"
	OpGeomean = "geomean"
	OpCount   = "count"
)

// Edge names of the base cube.
const (
	EdgeTest     = "test"
	EdgeSite     = "site"
	EdgePlatform = "platform"
	EdgePushDate = "pushDate"
)

// Names of the cubes in the computed HyperCube.
const (
	CubeResult = "result"
	CubeRef    = "ref"
	CubeCount  = "count"
	CubeTotal  = "total"
)

const (
	DefaultRecentPositions = 8
	DefaultRoundPlaces     = 4
)

// Dimensions are the caller-supplied domains the base cube is partitioned over.
// Tests, Sites and Platforms are categorical; Dates is the ordered push-date
// domain and is never inferred from the data.
type Dimensions struct {
	Tests     cube.Domain
	Sites     cube.Domain
	Platforms cube.Domain
	Dates     cube.Domain
}

// Validate checks every domain is present and Dates is ordered.
func (d Dimensions) Validate() error {
	switch {
	case d.Tests == nil:
		return fmt.Errorf("dimensions: tests domain is required")
	case d.Sites == nil:
		return fmt.Errorf("dimensions: sites domain is required")
	case d.Platforms == nil:
		return fmt.Errorf("dimensions: platforms domain is required")
	case d.Dates == nil:
		return fmt.Errorf("dimensions: dates domain is required")
	case d.Dates.Type() != cube.DomainRange:
		return fmt.Errorf("dimensions: dates must be a range domain, got %s", d.Dates.Type())
	}
	return nil
}

func (d Dimensions) test() cube.Edge     { return cube.Edge{Name: EdgeTest, Domain: d.Tests} }
func (d Dimensions) site() cube.Edge     { return cube.Edge{Name: EdgeSite, Domain: d.Sites} }
func (d Dimensions) platform() cube.Edge { return cube.Edge{Name: EdgePlatform, Domain: d.Platforms} }
func (d Dimensions) date() cube.Edge     { return cube.Edge{Name: EdgePushDate, Domain: d.Dates} }

// Options tune the pipeline. Zero values take the defaults.
type Options struct {
	// RecentPositions is how many trailing push-date positions the mask looks at.
	RecentPositions int

	// RoundPlaces is the number of decimal places the result is rounded to.
	// Nil takes DefaultRoundPlaces; zero rounds to whole numbers.
	RoundPlaces *int32
}

// Places returns n as an Options.RoundPlaces value.
func Places(n int32) *int32 { return &n }

func (o Options) places() int32 {
	if o.RoundPlaces == nil {
		return DefaultRoundPlaces
	}
	return *o.RoundPlaces
}

func (o Options) withDefaults() Options {
	if o.RecentPositions <= 0 {
		o.RecentPositions = DefaultRecentPositions
	}
	if o.RoundPlaces == nil || *o.RoundPlaces < 0 {
		o.RoundPlaces = Places(DefaultRoundPlaces)
	}
	return o
}

// Stages holds every cube the pipeline materializes, in dependency order.
type Stages struct {
	Raw               *cube.Cube // test, site, platform, pushDate -> records
	Reference         *cube.Cube // caller supplied
	AfterLastGoodDate *cube.Cube // test, site, platform
	Daily             *cube.Cube // test, site, platform, pushDate
	Result            *cube.Cube // test, platform, pushDate
	Mask              *cube.Cube // test, platform, site
	Count             *cube.Cube // test, platform
	Total             *cube.Cube // no edges
	Ref               *cube.Cube // test, platform
}

// HyperCube bundles the cubes the presentation layer reads.
func (s *Stages) HyperCube() (*cube.HyperCube, error) {
	return cube.NewHyperCube(map[string]*cube.Cube{
		CubeResult: s.Result,
		CubeRef:    s.Ref,
		CubeCount:  s.Count,
		CubeTotal:  s.Total,
	})
}
