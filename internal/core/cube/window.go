package cube

import (
	"fmt"
	"sort"
)

// Sources names the input cubes of a window computation.
type Sources map[string]*Cube

// Row is one address seen through every source: source name -> cell.
type Row map[string]Cell

// Group is what a grouped window hands its reducer for one fixed address: for
// every source, the cells along the axes that are not held fixed, in row-major
// order. Columns of different sources are aligned position by position.
type Group struct {
	size    int
	columns map[string][]Cell
}

// Len is the number of aligned positions in the group.
func (g Group) Len() int {
	return g.size
}

// Column returns the cells one source contributes, nil for an unknown source.
func (g Group) Column(name string) []Cell {
	return g.columns[name]
}

// Row returns position i across all sources.
func (g Group) Row(i int) Row {
	row := make(Row, len(g.columns))
	for name, col := range g.columns {
		row[name] = col[i]
	}
	return row
}

// Spec describes one window computation.
//
// Edges are held fixed per output cell. When Along is empty the window is
// grouped: Reduce is called once per fixed address with every source's cells
// along its remaining axes. When Along names an ordered edge the window is a
// left-to-right fold: Step is called once per position along that edge with the
// current row, the position index and the outputs already computed for earlier
// positions of the same fixed address.
//
// Sources that do not declare a fixed edge (or the Along edge) are broadcast
// across it.
type Spec struct {
	Edges  []string
	Along  string
	Reduce func(g Group) Cell
	Step   func(row Row, num int, prior []Cell) Cell
}

const (
	roleFree  = -1
	roleAlong = -2
)

type sourcePlan struct {
	name    string
	cube    *Cube
	roles   []int // per source edge: fixed output index, roleAlong or roleFree
	freeIdx []int // per source edge: index into the shared free axes when roleFree
	free    []Edge
	scratch []int
}

func (p *sourcePlan) cellAt(fixed []int, along int, free []int) Cell {
	for j, role := range p.roles {
		switch role {
		case roleAlong:
			p.scratch[j] = along
		case roleFree:
			p.scratch[j] = free[p.freeIdx[j]]
		default:
			p.scratch[j] = fixed[role]
		}
	}
	return p.cube.cells[p.cube.offset(p.scratch)]
}

// Window computes a new cube from sources according to spec. The output cube's
// edges are spec.Edges followed by spec.Along when set.
func Window(sources Sources, spec Spec) (*Cube, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("window: no sources")
	}
	folding := spec.Along != ""
	if folding && spec.Step == nil {
		return nil, fmt.Errorf("window along %q: Step is required", spec.Along)
	}
	if !folding && spec.Reduce == nil {
		return nil, fmt.Errorf("window: Reduce is required")
	}

	names := make([]string, 0, len(sources))
	for name, c := range sources {
		if c == nil {
			return nil, fmt.Errorf("window: source %q is nil", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	outNames := append([]string(nil), spec.Edges...)
	if folding {
		outNames = append(outNames, spec.Along)
	}
	outIndex := make(map[string]int, len(outNames))
	for k, name := range outNames {
		if _, dup := outIndex[name]; dup {
			return nil, fmt.Errorf("window: edge %q named twice", name)
		}
		outIndex[name] = k
	}

	outEdges, err := resolveEdges(sources, names, outNames)
	if err != nil {
		return nil, err
	}
	out, err := alloc(outEdges)
	if err != nil {
		return nil, err
	}

	plans, freeAxes, err := planSources(sources, names, spec, outIndex)
	if err != nil {
		return nil, err
	}

	fixedLens := make([]int, len(spec.Edges))
	for k := range spec.Edges {
		fixedLens[k] = outEdges[k].Domain.Len()
	}

	if folding {
		alongLen := outEdges[len(outEdges)-1].Domain.Len()
		outPos := make([]int, len(outEdges))
		forEach(fixedLens, func(fixed []int) {
			copy(outPos, fixed)
			prior := make([]Cell, 0, alongLen)
			for num := 0; num < alongLen; num++ {
				row := make(Row, len(plans))
				for _, p := range plans {
					row[p.name] = p.cellAt(fixed, num, nil)
				}
				cell := spec.Step(row, num, prior[:num:num])
				prior = append(prior, cell)
				outPos[len(outPos)-1] = num
				out.cells[out.offset(outPos)] = cell
			}
		})
		return out, nil
	}

	freeLens := make([]int, len(freeAxes))
	size := 1
	for i, e := range freeAxes {
		freeLens[i] = e.Domain.Len()
		size *= freeLens[i]
	}
	forEach(fixedLens, func(fixed []int) {
		columns := make(map[string][]Cell, len(plans))
		for _, p := range plans {
			col := make([]Cell, 0, size)
			forEach(freeLens, func(free []int) {
				col = append(col, p.cellAt(fixed, 0, free))
			})
			columns[p.name] = col
		}
		out.cells[out.offset(fixed)] = spec.Reduce(Group{size: size, columns: columns})
	})
	return out, nil
}

// resolveEdges takes each output edge from the first source (by name order)
// declaring it and checks every other declaration agrees on the domain.
func resolveEdges(sources Sources, names, outNames []string) ([]Edge, error) {
	edges := make([]Edge, len(outNames))
	for k, edgeName := range outNames {
		found := false
		for _, srcName := range names {
			c := sources[srcName]
			j, ok := c.EdgeIndex(edgeName)
			if !ok {
				continue
			}
			e := c.edges[j]
			if !found {
				edges[k] = e
				found = true
				continue
			}
			if !sameDomain(edges[k].Domain, e.Domain) {
				return nil, fmt.Errorf("%w: %q is %s in one source and %s in %q",
					ErrEdgeMismatch, edgeName, describeDomain(edges[k].Domain), describeDomain(e.Domain), srcName)
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q is not declared by any source", ErrUnknownEdge, edgeName)
		}
	}
	return edges, nil
}

// planSources assigns every source edge a role. In a fold no source may keep
// free axes; in a grouped window every source with free axes must share the
// same set, so columns line up.
func planSources(sources Sources, names []string, spec Spec, outIndex map[string]int) ([]*sourcePlan, []Edge, error) {
	var shared []Edge
	sharedIdx := map[string]int{}

	plans := make([]*sourcePlan, 0, len(names))
	for _, name := range names {
		c := sources[name]
		p := &sourcePlan{
			name:    name,
			cube:    c,
			roles:   make([]int, len(c.edges)),
			freeIdx: make([]int, len(c.edges)),
			scratch: make([]int, len(c.edges)),
		}
		for j, e := range c.edges {
			switch {
			case spec.Along != "" && e.Name == spec.Along:
				p.roles[j] = roleAlong
			default:
				if k, ok := outIndex[e.Name]; ok {
					p.roles[j] = k
					continue
				}
				p.roles[j] = roleFree
				p.free = append(p.free, e)
			}
		}

		if len(p.free) > 0 {
			if spec.Along != "" {
				return nil, nil, fmt.Errorf("%w: source %q keeps edges %v outside edges+along",
					ErrEdgeMismatch, name, edgeNames(p.free))
			}
			if shared == nil {
				shared = p.free
				for i, e := range shared {
					sharedIdx[e.Name] = i
				}
			} else if err := sameAxes(shared, sharedIdx, p.free); err != nil {
				return nil, nil, fmt.Errorf("source %q: %w", name, err)
			}
			for j, e := range c.edges {
				if p.roles[j] == roleFree {
					p.freeIdx[j] = sharedIdx[e.Name]
				}
			}
		}
		plans = append(plans, p)
	}
	return plans, shared, nil
}

func sameAxes(shared []Edge, idx map[string]int, free []Edge) error {
	if len(shared) != len(free) {
		return fmt.Errorf("%w: reduces over %v, other sources over %v", ErrEdgeMismatch, edgeNames(free), edgeNames(shared))
	}
	for _, e := range free {
		i, ok := idx[e.Name]
		if !ok {
			return fmt.Errorf("%w: reduces over %v, other sources over %v", ErrEdgeMismatch, edgeNames(free), edgeNames(shared))
		}
		if !sameDomain(shared[i].Domain, e.Domain) {
			return fmt.Errorf("%w: free edge %q differs between sources", ErrEdgeMismatch, e.Name)
		}
	}
	return nil
}

func edgeNames(edges []Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.Name
	}
	return out
}
