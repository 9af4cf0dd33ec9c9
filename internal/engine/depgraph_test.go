package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepGraphAttachDetach(t *testing.T) {
	g := newDepGraph()
	a, b, c := cell(0, 0), cell(0, 1), cell(0, 2)

	require.NoError(t, g.attach(c, []CellHandle{a, b}))
	assert.ElementsMatch(t, []CellHandle{c}, g.dependents(a))
	assert.ElementsMatch(t, []CellHandle{c}, g.dependents(b))

	require.NoError(t, g.detach(c, []CellHandle{a, b}))
	assert.Empty(t, g.dependents(a))
	assert.Empty(t, g.dependents(b))
}

func TestDepGraphAttachIsIdempotent(t *testing.T) {
	g := newDepGraph()
	a, c := cell(0, 0), cell(0, 2)

	require.NoError(t, g.attach(c, []CellHandle{a}))
	require.NoError(t, g.attach(c, []CellHandle{a}))
	assert.Len(t, g.dependents(a), 1)
}

func TestCheckCycleDirectSelfReference(t *testing.T) {
	g := newDepGraph()
	target := cell(1, 1)
	err := g.checkCycle(target, singleMember(target), ErrCycle)
	require.Error(t, err)
	ce, ok := AsCommandError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCycle, ce.Code)
}

func TestCheckCycleRejectsTransitiveCycle(t *testing.T) {
	g := newDepGraph()
	a, b := cell(0, 0), cell(0, 1)

	// A depends on B (B -> A edge), so B now transitively reaches A.
	require.NoError(t, g.attach(a, []CellHandle{b}))

	// Installing B = A would close the cycle: A is reachable from B's
	// dependents (B -> A), and the new formula wants B to depend on A.
	err := g.checkCycle(b, singleMember(a), ErrCycle)
	require.Error(t, err)
	ce, ok := AsCommandError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCycle, ce.Code)
}

func TestCheckCycleAllowsDiamond(t *testing.T) {
	g := newDepGraph()
	a, b, c, d := cell(0, 0), cell(0, 1), cell(0, 2), cell(0, 3)

	// B and C both depend on A; D is about to depend on both B and C.
	require.NoError(t, g.attach(b, []CellHandle{a}))
	require.NoError(t, g.attach(c, []CellHandle{a}))

	err := g.checkCycle(d, manyMembers([]CellHandle{b, c}), ErrCycle)
	assert.NoError(t, err)
}

func TestSubgraphRestrictsToAffectedSet(t *testing.T) {
	g := newDepGraph()
	a, b, c := cell(0, 0), cell(0, 1), cell(0, 2)

	require.NoError(t, g.attach(b, []CellHandle{a}))
	require.NoError(t, g.attach(c, []CellHandle{b}))

	sub := g.subgraph([]CellHandle{a, b})
	assert.True(t, sub.HasEdge(a.String(), b.String()))
	assert.False(t, sub.HasVertex(c.String()))
}
