package engine

import (
	"errors"

	"github.com/katalvlaran/lvlath/bfs"
)

// membership tests whether a cell belongs to the candidate precedent set a
// formula is about to read from: a single address for Reference/Binary/
// Sleep, or a rectangle bounds test for Range.
type membership func(h CellHandle) bool

func singleMember(src CellHandle) membership {
	return func(h CellHandle) bool { return h == src }
}

func manyMembers(srcs []CellHandle) membership {
	set := make(map[CellHandle]struct{}, len(srcs))
	for _, s := range srcs {
		set[s] = struct{}{}
	}
	return func(h CellHandle) bool {
		_, ok := set[h]
		return ok
	}
}

func rectMember(rect Rectangle) membership {
	return func(h CellHandle) bool { return rect.Contains(h.Row, h.Col) }
}

// checkCycle implements the install-time cycle check: installing target's
// new formula, which reads from the cells matched by isMember, would close
// a cycle exactly when one of those cells is itself reachable from target
// (via the existing precedent->dependent edges) — i.e. some cell
// target is about to depend on already, directly or transitively, depends
// on target.
//
// This is phrased as a single forward sweep from target over target's
// *dependents*: if the sweep ever visits a cell matching isMember, that
// cell is both a dependent of target (already) and about to become a
// precedent of target (after this install), which is the cycle.
//
// selfCode is the error code to report when target matches isMember
// directly, i.e. the new formula would read from target itself with no
// traversal required. SelfReference is reserved for a Range rectangle
// containing its own target cell; every other formula kind reports the
// same condition as a plain Cycle.
func (g *depGraph) checkCycle(target CellHandle, isMember membership, selfCode ErrorCode) error {
	if isMember(target) {
		return newCommandError(selfCode, "formula for %s reads from itself", target)
	}
	if !g.g.HasVertex(target.String()) {
		return nil
	}
	var hit CellHandle
	found := false
	_, err := bfs.BFS(g.g, target.String(), bfs.WithOnVisit(func(id string, depth int) error {
		if depth == 0 {
			return nil
		}
		h := parseCellID(id)
		if isMember(h) {
			hit = h
			found = true
			return errStopWalk
		}
		return nil
	}))
	if err != nil && !errors.Is(err, errStopWalk) {
		return err
	}
	if found {
		return newCommandError(ErrCycle, "formula would create a cycle through %s", hit)
	}
	return nil
}

// errStopWalk is a sentinel OnVisit returns to abort a BFS early once a
// cycle has been confirmed; checkCycle recognizes it in the err bfs.BFS
// returns with errors.Is and does not treat it as a failure.
var errStopWalk = errWalkStopped{}

type errWalkStopped struct{}

func (errWalkStopped) Error() string { return "engine: cycle check satisfied, walk stopped" }
