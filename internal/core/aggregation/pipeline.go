package aggregation

import (
	"fmt"

	v1 "github.com/perfcube-lab/perfcube/internal/api/v1"
	"github.com/perfcube-lab/perfcube/internal/core/cube"
)

// Compute runs the pipeline over an in-memory record set and returns the
// result, ref, count and total cubes.
func Compute(records []*v1.Record, dims Dimensions, reference *cube.Cube, opts Options) (*cube.HyperCube, error) {
	stages, err := Evaluate(records, dims, reference, opts)
	if err != nil {
		return nil, err
	}
	return stages.HyperCube()
}

// Evaluate partitions records and derives every stage cube in dependency order.
// A nil reference means no site has a baseline.
func Evaluate(records []*v1.Record, dims Dimensions, reference *cube.Cube, opts Options) (*Stages, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if reference == nil {
		reference = cube.Constant(cube.Absent())
	}

	s := &Stages{Reference: reference}
	var err error

	s.Raw, err = cube.Partition(records, []cube.Edge{dims.test(), dims.site(), dims.platform(), dims.date()})
	if err != nil {
		return nil, fmt.Errorf("partitioning records: %w", err)
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"afterLastGoodDate", func() (err error) { s.AfterLastGoodDate, err = afterLastGoodDate(s.Raw); return }},
		{"daily", func() (err error) { s.Daily, err = daily(s.Raw, s.AfterLastGoodDate); return }},
		{"result", func() (err error) { s.Result, err = result(s.Daily, s.Reference, opts.places()); return }},
		{"mask", func() (err error) { s.Mask, err = mask(s.Daily, opts.RecentPositions); return }},
		{"count", func() (err error) { s.Count, err = count(s.Mask); return }},
		{"total", func() error { s.Total = cube.Constant(cube.Number(float64(dims.Sites.Len()))); return nil }},
		{"ref", func() (err error) { s.Ref, err = ref(s.Mask, s.Reference); return }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return nil, fmt.Errorf("stage %s: %w", step.name, err)
		}
	}
	return s, nil
}

// afterLastGoodDate marks where trailing "not yet collected" emptiness begins
// along push date: positions minus the distance from the end to the last
// non-empty position. A series with no records at all yields positions+1.
func afterLastGoodDate(raw *cube.Cube) (*cube.Cube, error) {
	return cube.Window(cube.Sources{"raw": raw}, cube.Spec{
		Edges: []string{EdgeTest, EdgeSite, EdgePlatform},
		Reduce: func(g cube.Group) cube.Cell {
			col := g.Column("raw")
			n := len(col)
			for i := n - 1; i >= 0; i-- {
				if col[i].Exists() {
					return cube.Number(float64(i + 1))
				}
			}
			return cube.Number(float64(n + 1))
		},
	})
}

// daily is the mean of each cell's record values, carrying the previous
// position forward over empty cells inside the active region.
func daily(raw, boundary *cube.Cube) (*cube.Cube, error) {
	mean := reducer(OpMean)
	return cube.Window(cube.Sources{"raw": raw, "afterLastGoodDate": boundary}, cube.Spec{
		Edges: []string{EdgeTest, EdgeSite, EdgePlatform},
		Along: EdgePushDate,
		Step: func(row cube.Row, num int, prior []cube.Cell) cube.Cell {
			if !row["raw"].Exists() {
				last, _ := row["afterLastGoodDate"].Float()
				if num > 0 && float64(num) < last {
					return prior[num-1]
				}
			}
			return mean(cube.RecordValues(row["raw"]))
		},
	})
}

// result is the geometric mean across sites of daily values, counting only
// sites that have a reference value, rounded to places.
func result(daily, reference *cube.Cube, places int32) (*cube.Cube, error) {
	geomean := reducer(OpGeomean)
	return cube.Window(cube.Sources{"daily": daily, "ref": reference}, cube.Spec{
		Edges: []string{EdgeTest, EdgePlatform, EdgePushDate},
		Reduce: func(g cube.Group) cube.Cell {
			included := make([]cube.Cell, 0, g.Len())
			refs, values := g.Column("ref"), g.Column("daily")
			for i := range values {
				if refs[i].IsAbsent() {
					continue
				}
				included = append(included, values[i])
			}
			return cube.RoundCell(geomean(included), places)
		},
	})
}

// mask flags sites with at least one daily value among the last recent positions.
func mask(daily *cube.Cube, recent int) (*cube.Cube, error) {
	return cube.Window(cube.Sources{"daily": daily}, cube.Spec{
		Edges: []string{EdgeTest, EdgePlatform, EdgeSite},
		Reduce: func(g cube.Group) cube.Cell {
			col := g.Column("daily")
			from := len(col) - recent
			if from < 0 {
				from = 0
			}
			return cube.Bool(cube.AnyExists(col[from:]))
		},
	})
}

// count is the number of reporting sites.
func count(mask *cube.Cube) (*cube.Cube, error) {
	countTrue := reducer(OpCount)
	return cube.Window(cube.Sources{"mask": mask}, cube.Spec{
		Edges:  []string{EdgeTest, EdgePlatform},
		Reduce: func(g cube.Group) cube.Cell { return countTrue(g.Column("mask")) },
	})
}

// ref is the geometric mean of reference values across reporting sites.
func ref(mask, reference *cube.Cube) (*cube.Cube, error) {
	geomean := reducer(OpGeomean)
	return cube.Window(cube.Sources{"mask": mask, "ref": reference}, cube.Spec{
		Edges: []string{EdgeTest, EdgePlatform},
		Reduce: func(g cube.Group) cube.Cell {
			flags, refs := g.Column("mask"), g.Column("ref")
			included := make([]cube.Cell, 0, g.Len())
			for i := range refs {
				if on, _ := flags[i].Flag(); on {
					included = append(included, refs[i])
				}
			}
			return geomean(included)
		},
	})
}
