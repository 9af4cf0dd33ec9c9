package engine

import (
	"fmt"

	"github.com/katalvlaran/lvlath/core"
)

// depGraph wraps a directed, unweighted lvlath graph to hold one edge
// precedent -> dependent per formula reference a cell installs. Both
// relations the engine needs fall out of a single edge direction: walking
// forward from a cell enumerates its dependents (what the cycle detector
// and recalc engine need), and a topological sort of the whole graph orders
// precedents before dependents (what the recalc engine needs for
// evaluation order). edgeIDs is the bookkeeping lvlath itself does not
// expose a shortcut for: removing an edge requires its ID, not its endpoints.
type depGraph struct {
	g       *core.Graph
	edgeIDs map[edgeKey]string
}

type edgeKey struct {
	From CellHandle
	To   CellHandle
}

func newDepGraph() *depGraph {
	return &depGraph{
		g:       core.NewGraph(core.WithDirected(true)),
		edgeIDs: make(map[edgeKey]string),
	}
}

// ensureVertex registers h with the graph if it is not already present.
// AddVertex is idempotent, so it is called unconditionally, with no
// existence check first.
func (d *depGraph) ensureVertex(h CellHandle) {
	_ = d.g.AddVertex(h.String())
}

// addEdge installs a precedent -> dependent edge, a no-op if it already
// exists (AddEdge's own multi-edge guard would otherwise fire).
func (d *depGraph) addEdge(precedent, dependent CellHandle) error {
	d.ensureVertex(precedent)
	d.ensureVertex(dependent)
	key := edgeKey{From: precedent, To: dependent}
	if _, ok := d.edgeIDs[key]; ok {
		return nil
	}
	id, err := d.g.AddEdge(precedent.String(), dependent.String(), 0)
	if err != nil {
		return fmt.Errorf("engine: add dependency edge %s->%s: %w", precedent, dependent, err)
	}
	d.edgeIDs[key] = id
	return nil
}

// removeEdge tears down a previously installed precedent -> dependent edge.
// Removing an edge that was never installed is a no-op.
func (d *depGraph) removeEdge(precedent, dependent CellHandle) error {
	key := edgeKey{From: precedent, To: dependent}
	id, ok := d.edgeIDs[key]
	if !ok {
		return nil
	}
	delete(d.edgeIDs, key)
	if err := d.g.RemoveEdge(id); err != nil {
		return fmt.Errorf("engine: remove dependency edge %s->%s: %w", precedent, dependent, err)
	}
	return nil
}

// detach removes every precedent -> cell edge for the given precedents,
// used when a cell's formula is replaced and its old dependencies no
// longer hold.
func (d *depGraph) detach(cell CellHandle, oldPrecedents []CellHandle) error {
	for _, p := range oldPrecedents {
		if err := d.removeEdge(p, cell); err != nil {
			return err
		}
	}
	return nil
}

// attach installs a precedent -> cell edge for every new precedent.
func (d *depGraph) attach(cell CellHandle, precedents []CellHandle) error {
	for _, p := range precedents {
		if err := d.addEdge(p, cell); err != nil {
			return err
		}
	}
	return nil
}

// dependents returns the cells that read directly from h, i.e. h's forward
// neighbors in the precedent -> dependent graph. Returns nil if h has no
// outgoing edges or is not yet a vertex.
func (d *depGraph) dependents(h CellHandle) []CellHandle {
	if !d.g.HasVertex(h.String()) {
		return nil
	}
	ids, err := d.g.NeighborIDs(h.String())
	if err != nil {
		return nil
	}
	out := make([]CellHandle, 0, len(ids))
	for _, id := range ids {
		out = append(out, parseCellID(id))
	}
	return out
}

// subgraph builds a transient directed graph containing exactly the given
// vertices and the precedent->dependent edges whose endpoints both lie
// within that set. This is what the recalc engine hands to
// dfs.TopologicalSort: in-degree for the sort must only count edges
// internal to the affected set, not edges reaching in from outside it.
func (d *depGraph) subgraph(vertices []CellHandle) *core.Graph {
	sub := core.NewGraph(core.WithDirected(true))
	set := make(map[CellHandle]struct{}, len(vertices))
	for _, v := range vertices {
		set[v] = struct{}{}
		_ = sub.AddVertex(v.String())
	}
	for _, v := range vertices {
		for _, dep := range d.dependents(v) {
			if _, ok := set[dep]; !ok {
				continue
			}
			if _, err := sub.AddEdge(v.String(), dep.String(), 0); err != nil {
				// AddEdge only fails here on a duplicate, which cannot occur
				// since each (v, dep) pair is visited once.
				_ = err
			}
		}
	}
	return sub
}

func parseCellID(id string) CellHandle {
	var row, col int32
	_, _ = fmt.Sscanf(id, "%d:%d", &row, &col)
	return CellHandle{Row: row, Col: col}
}
