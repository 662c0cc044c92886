package aggregation

import (
	"fmt"
	"log/slog"

	"github.com/perfcube-lab/perfcube/internal/core/cube"
	"github.com/perfcube-lab/perfcube/internal/core/storage"
)

// ReferenceCube lays baseline values out over (test, platform, site). Addresses
// without a value stay absent; values for labels outside dims are ignored.
// A repeated address keeps the last value.
func ReferenceCube(values []storage.ReferenceValue, dims Dimensions) (*cube.Cube, error) {
	if dims.Tests == nil || dims.Platforms == nil || dims.Sites == nil {
		return nil, fmt.Errorf("reference cube: tests, platforms and sites domains are required")
	}
	edges := []cube.Edge{dims.test(), dims.platform(), dims.site()}

	index := make(map[[3]int]cube.Cell, len(values))
	skipped := 0
	for _, v := range values {
		t, ok1 := dims.Tests.Lookup(v.Test)
		p, ok2 := dims.Platforms.Lookup(v.Platform)
		s, ok3 := dims.Sites.Lookup(v.Site)
		if !ok1 || !ok2 || !ok3 {
			skipped++
			continue
		}
		index[[3]int{t, p, s}] = cube.Number(v.Value)
	}
	if skipped > 0 {
		slog.Debug("[Pipeline] Reference values outside the requested dimensions ignored", "count", skipped)
	}

	return cube.New(edges, func(pos []int) cube.Cell {
		return index[[3]int{pos[0], pos[1], pos[2]}]
	})
}
