// Package cube implements labeled multi-dimensional grids of cells, the window
// evaluator that derives new cubes from existing ones, and the HyperCube bundle
// the presentation layer reads from.
//
// Storage is arena style: one flat slice of cells indexed by a linear offset
// computed from per-edge positions, so every valid address always has a cell.
package cube

import (
	"errors"
	"fmt"
	"strings"

	v1 "github.com/perfcube-lab/perfcube/internal/api/v1"
)

var (
	// ErrUnknownEdge is returned when an edge name is not declared by any cube involved.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrEdgeMismatch is returned when two cubes declare the same edge name over different domains,
	// or when grouped sources disagree on the axes being reduced.
	ErrEdgeMismatch = errors.New("edge mismatch")

	// ErrUnboundEdges is returned when a scalar read is attempted on a view that still has free edges.
	ErrUnboundEdges = errors.New("address has unbound edges")

	// ErrUnknownKey is returned when a label is not part of an edge's domain.
	ErrUnknownKey = errors.New("unknown key")
)

// Edge is a named axis of a cube.
type Edge struct {
	Name   string
	Domain Domain
}

// Cube maps a tuple of per-edge positions, in edge declaration order, to a Cell.
// A Cube is immutable once constructed.
type Cube struct {
	edges   []Edge
	strides []int
	cells   []Cell
}

// New builds a cube over edges, filling each address with fill(pos). A nil fill
// leaves every cell absent. With zero edges the cube has exactly one cell.
func New(edges []Edge, fill func(pos []int) Cell) (*Cube, error) {
	c, err := alloc(edges)
	if err != nil {
		return nil, err
	}
	if fill != nil {
		pos := make([]int, len(edges))
		for off := range c.cells {
			c.decode(off, pos)
			c.cells[off] = fill(pos)
		}
	}
	return c, nil
}

// Constant returns a zero-edge cube holding a single cell.
func Constant(cell Cell) *Cube {
	return &Cube{cells: []Cell{cell}}
}

func alloc(edges []Edge) (*Cube, error) {
	seen := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		if e.Name == "" {
			return nil, fmt.Errorf("cube: edge with empty name")
		}
		if e.Domain == nil {
			return nil, fmt.Errorf("cube: edge %q has no domain", e.Name)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("cube: duplicate edge %q", e.Name)
		}
		seen[e.Name] = struct{}{}
	}

	c := &Cube{
		edges:   append([]Edge(nil), edges...),
		strides: make([]int, len(edges)),
	}
	size := 1
	for i := len(edges) - 1; i >= 0; i-- {
		c.strides[i] = size
		size *= edges[i].Domain.Len()
	}
	c.cells = make([]Cell, size)
	return c, nil
}

// Edges returns the declared edges in order.
func (c *Cube) Edges() []Edge {
	return append([]Edge(nil), c.edges...)
}

// EdgeNames returns the declared edge names in order.
func (c *Cube) EdgeNames() []string {
	names := make([]string, len(c.edges))
	for i, e := range c.edges {
		names[i] = e.Name
	}
	return names
}

// EdgeIndex returns the declaration index of the named edge.
func (c *Cube) EdgeIndex(name string) (int, bool) {
	for i, e := range c.edges {
		if e.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Size is the number of cells (the product of the domain lengths).
func (c *Cube) Size() int {
	return len(c.cells)
}

// At returns the cell at pos, one position per edge. It panics on a malformed
// address, the way slice indexing does.
func (c *Cube) At(pos ...int) Cell {
	return c.cells[c.offset(pos)]
}

// Get returns the cell addressed by edge labels. Every edge must be named.
func (c *Cube) Get(labels map[string]string) (Cell, error) {
	pos := make([]int, len(c.edges))
	for i, e := range c.edges {
		label, ok := labels[e.Name]
		if !ok {
			return Absent(), fmt.Errorf("%w: %s", ErrUnboundEdges, e.Name)
		}
		p, ok := e.Domain.Lookup(label)
		if !ok {
			return Absent(), fmt.Errorf("%w: %s=%q", ErrUnknownKey, e.Name, label)
		}
		pos[i] = p
	}
	return c.cells[c.offset(pos)], nil
}

func (c *Cube) offset(pos []int) int {
	if len(pos) != len(c.edges) {
		panic(fmt.Sprintf("cube: address has %d positions, cube has %d edges", len(pos), len(c.edges)))
	}
	off := 0
	for i, p := range pos {
		if p < 0 || p >= c.edges[i].Domain.Len() {
			panic(fmt.Sprintf("cube: position %d out of range for edge %q (len %d)", p, c.edges[i].Name, c.edges[i].Domain.Len()))
		}
		off += p * c.strides[i]
	}
	return off
}

func (c *Cube) decode(off int, pos []int) {
	for i := range c.edges {
		pos[i] = off / c.strides[i]
		off %= c.strides[i]
	}
}

func (c *Cube) String() string {
	parts := make([]string, len(c.edges))
	for i, e := range c.edges {
		parts[i] = e.Name + ":" + describeDomain(e.Domain)
	}
	return "cube(" + strings.Join(parts, ", ") + ")"
}

// Partition groups records into a cube over edges. A record is located along
// every edge independently and dropped if any edge rejects it. Addresses with no
// records hold an empty (present) record group.
func Partition(records []*v1.Record, edges []Edge) (*Cube, error) {
	c, err := alloc(edges)
	if err != nil {
		return nil, err
	}

	groups := make([][]*v1.Record, len(c.cells))
	pos := make([]int, len(edges))
next:
	for _, rec := range records {
		if rec == nil {
			continue
		}
		for i, e := range edges {
			p, ok := e.Domain.Locate(rec)
			if !ok {
				continue next
			}
			pos[i] = p
		}
		off := c.offset(pos)
		groups[off] = append(groups[off], rec)
	}

	for off := range c.cells {
		c.cells[off] = Records(groups[off])
	}
	return c, nil
}

// forEach walks every position of the given lengths in row-major order.
// The pos slice is reused between calls.
func forEach(lens []int, fn func(pos []int)) {
	for _, n := range lens {
		if n == 0 {
			return
		}
	}
	pos := make([]int, len(lens))
	for {
		fn(pos)
		i := len(pos) - 1
		for ; i >= 0; i-- {
			pos[i]++
			if pos[i] < lens[i] {
				break
			}
			pos[i] = 0
		}
		if i < 0 {
			return
		}
	}
}
