package aggregation

import (
	"github.com/perfcube-lab/perfcube/internal/core/cube"
)

// Reducer folds a column of cells into one cell. Absent inputs are skipped, and
// a reducer with nothing eligible to fold returns Absent rather than zero.
type Reducer func(cells []cube.Cell) cube.Cell

// Reducers is the registry of the reductions the pipeline stages are built from.
var Reducers = map[string]Reducer{
	OpMean:    cube.Mean,
	OpGeomean: cube.Geomean,
	OpCount:   cube.CountTrue,
}

func reducer(op string) Reducer {
	r, ok := Reducers[op]
	if !ok {
		panic("aggregation: reducer " + op + " is not registered")
	}
	return r
}
