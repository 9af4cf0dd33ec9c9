package engine

import (
	"fmt"

	"github.com/katalvlaran/lvlath/dfs"
)

// recalcFrom recomputes target and everything transitively downstream of
// it, in dependency order. Cycles are rejected at install time (cycle.go),
// so by the time recalcFrom runs the affected subgraph is guaranteed to be
// a DAG; a cycle surfacing here would be an engine invariant violation, not
// a user-facing error.
func (g *Grid) recalcFrom(target CellHandle) error {
	affected := g.closure(target)
	sub := g.graph.subgraph(affected)
	order, err := dfs.TopologicalSort(sub)
	if err != nil {
		return fmt.Errorf("engine: recalc invariant violated, affected set is not a DAG: %w", err)
	}
	for _, id := range order {
		g.compute(parseCellID(id))
	}
	return nil
}

// closure returns target plus every cell transitively reachable by
// following dependents edges from it, i.e. the exact set of cells whose
// value may change as a result of recomputing target. Because range
// formulas hold a real precedent edge from every rectangle member (see
// RangeFormula.Dependencies), a range aggregate is already part of this
// closure whenever one of its rectangle members changes — no separate
// registry replay is needed.
func (g *Grid) closure(target CellHandle) []CellHandle {
	visited := map[CellHandle]struct{}{target: {}}
	order := []CellHandle{target}
	queue := []CellHandle{target}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range g.graph.dependents(cur) {
			if _, ok := visited[dep]; ok {
				continue
			}
			visited[dep] = struct{}{}
			order = append(order, dep)
			queue = append(queue, dep)
		}
	}
	return order
}
