package cube

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCube is returned when a HyperCube has no cube by the requested name.
var ErrUnknownCube = errors.New("unknown cube")

// HyperCube is an immutable bundle of named cubes read together. The cubes need
// not share edges, but an edge name means the same axis in every cube that
// declares it.
type HyperCube struct {
	names []string
	cubes map[string]*Cube
}

// NewHyperCube bundles cubes. Cubes declaring the same edge name must agree on
// its domain.
func NewHyperCube(cubes map[string]*Cube) (*HyperCube, error) {
	h := &HyperCube{cubes: make(map[string]*Cube, len(cubes))}
	for name, c := range cubes {
		if c == nil {
			return nil, fmt.Errorf("hypercube: cube %q is nil", name)
		}
		h.names = append(h.names, name)
		h.cubes[name] = c
	}
	sort.Strings(h.names)

	seen := map[string]Edge{}
	for _, name := range h.names {
		for _, e := range h.cubes[name].edges {
			prev, ok := seen[e.Name]
			if !ok {
				seen[e.Name] = e
				continue
			}
			if !sameDomain(prev.Domain, e.Domain) {
				return nil, fmt.Errorf("%w: cube %q declares %q as %s, another cube as %s",
					ErrEdgeMismatch, name, e.Name, describeDomain(e.Domain), describeDomain(prev.Domain))
			}
		}
	}
	return h, nil
}

// Names returns the cube names in sorted order.
func (h *HyperCube) Names() []string {
	return append([]string(nil), h.names...)
}

// Cube returns the named cube.
func (h *HyperCube) Cube(name string) (*Cube, bool) {
	c, ok := h.cubes[name]
	return c, ok
}

// Edges returns every edge declared by at least one cube, first declaration wins,
// in cube name order.
func (h *HyperCube) Edges() []Edge {
	var out []Edge
	seen := map[string]struct{}{}
	for _, name := range h.names {
		for _, e := range h.cubes[name].edges {
			if _, ok := seen[e.Name]; ok {
				continue
			}
			seen[e.Name] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

func (h *HyperCube) edge(name string) (Edge, bool) {
	for _, n := range h.names {
		c := h.cubes[n]
		if i, ok := c.EdgeIndex(name); ok {
			return c.edges[i], true
		}
	}
	return Edge{}, false
}

// Where fixes edges to labels and returns the reduced view. Cubes that do not
// declare a fixed edge are unaffected by it.
func (h *HyperCube) Where(labels map[string]string) (*HyperCube, error) {
	fixed := make(map[string]int, len(labels))
	for edgeName, label := range labels {
		e, ok := h.edge(edgeName)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEdge, edgeName)
		}
		pos, ok := e.Domain.Lookup(label)
		if !ok {
			return nil, fmt.Errorf("%w: %s=%q", ErrUnknownKey, edgeName, label)
		}
		fixed[edgeName] = pos
	}
	return h.fix(fixed), nil
}

// Position is one step of an Along iteration.
type Position struct {
	Index int
	Label string
	Key   interface{}
	View  *HyperCube
}

// Along iterates the named edge in domain order, yielding the view with that
// edge fixed at each position.
func (h *HyperCube) Along(edgeName string) ([]Position, error) {
	e, ok := h.edge(edgeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEdge, edgeName)
	}
	out := make([]Position, e.Domain.Len())
	for i := range out {
		out[i] = Position{
			Index: i,
			Label: e.Domain.Label(i),
			Key:   e.Domain.Key(i),
			View:  h.fix(map[string]int{edgeName: i}),
		}
	}
	return out, nil
}

// Get reads the single cell of a fully bound cube.
func (h *HyperCube) Get(name string) (Cell, error) {
	c, ok := h.cubes[name]
	if !ok {
		return Absent(), fmt.Errorf("%w: %q", ErrUnknownCube, name)
	}
	if len(c.edges) > 0 {
		return Absent(), fmt.Errorf("%w: %q still has %v", ErrUnboundEdges, name, c.EdgeNames())
	}
	return c.cells[0], nil
}

// Value is Get with every failure read as Absent.
func (h *HyperCube) Value(name string) Cell {
	cell, err := h.Get(name)
	if err != nil {
		return Absent()
	}
	return cell
}

func (h *HyperCube) fix(fixed map[string]int) *HyperCube {
	out := &HyperCube{
		names: h.names,
		cubes: make(map[string]*Cube, len(h.cubes)),
	}
	for _, name := range h.names {
		out.cubes[name] = h.cubes[name].slice(fixed)
	}
	return out
}

// slice drops the fixed edges the cube declares, keeping the cells at the fixed
// positions. Fixed edges the cube does not declare are ignored.
func (c *Cube) slice(fixed map[string]int) *Cube {
	var kept []Edge
	src := make([]int, len(c.edges))
	var free []int
	for i, e := range c.edges {
		if p, ok := fixed[e.Name]; ok {
			src[i] = p
			continue
		}
		kept = append(kept, e)
		free = append(free, i)
	}
	if len(free) == len(c.edges) {
		return c
	}

	out := &Cube{edges: kept, strides: make([]int, len(kept))}
	size := 1
	for i := len(kept) - 1; i >= 0; i-- {
		out.strides[i] = size
		size *= kept[i].Domain.Len()
	}
	out.cells = make([]Cell, size)

	lens := make([]int, len(kept))
	for i, e := range kept {
		lens[i] = e.Domain.Len()
	}
	off := 0
	forEach(lens, func(pos []int) {
		for k, i := range free {
			src[i] = pos[k]
		}
		out.cells[off] = c.cells[c.offset(src)]
		off++
	})
	return out
}
