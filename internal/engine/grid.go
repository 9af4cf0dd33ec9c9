package engine

import "fmt"

// Grid is the fixed R×C dense cell store: one contiguous slice of Cell,
// row-major, alongside the dependency graph that ties cells together. It
// is the engine's single source of truth; the command and recalc layers
// mutate it only through Grid's own methods.
type Grid struct {
	Rows, Cols int32

	cells []Cell
	graph *depGraph
}

// MinRows, MaxRows, MinCols, MaxCols are the grid's legal dimension bounds.
const (
	MinRows = 1
	MaxRows = 999
	MinCols = 1
	MaxCols = 18278
)

// NewGrid builds an R×C grid with every cell initialized to
// ConstantFormula{Value: 0}.
func NewGrid(rows, cols int32) (*Grid, error) {
	if rows < MinRows || rows > MaxRows {
		return nil, fmt.Errorf("engine: rows %d out of bounds [%d,%d]", rows, MinRows, MaxRows)
	}
	if cols < MinCols || cols > MaxCols {
		return nil, fmt.Errorf("engine: cols %d out of bounds [%d,%d]", cols, MinCols, MaxCols)
	}
	g := &Grid{
		Rows:  rows,
		Cols:  cols,
		cells: make([]Cell, int64(rows)*int64(cols)),
		graph: newDepGraph(),
	}
	for r := int32(0); r < rows; r++ {
		for c := int32(0); c < cols; c++ {
			idx := g.index(r, c)
			g.cells[idx] = Cell{Row: r, Col: c, Formula: ConstantFormula{Value: 0}}
		}
	}
	return g, nil
}

func (g *Grid) index(row, col int32) int64 {
	return int64(row)*int64(g.Cols) + int64(col)
}

// InBounds reports whether (row, col) names a real cell in this grid.
func (g *Grid) InBounds(row, col int32) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Cell returns a copy of the cell at h. Panics if h is out of bounds; every
// caller is expected to have validated h via InBounds first (an
// out-of-bounds reference is a command-level rejection, not a panic path).
func (g *Grid) Cell(h CellHandle) Cell {
	if !g.InBounds(h.Row, h.Col) {
		panic(fmt.Sprintf("engine: cell %s is outside the %dx%d grid", h, g.Rows, g.Cols))
	}
	return g.cells[g.index(h.Row, h.Col)]
}

func (g *Grid) cellPtr(h CellHandle) *Cell {
	return &g.cells[g.index(h.Row, h.Col)]
}

// ValidateRef checks that h refers to a real cell, returning a BadRef
// CommandError otherwise.
func (g *Grid) ValidateRef(h CellHandle) error {
	if !g.InBounds(h.Row, h.Col) {
		return newCommandError(ErrBadRef, "cell %s is outside the %dx%d grid", h, g.Rows, g.Cols)
	}
	return nil
}

// ValidateRect checks a Rectangle's bounds and normalization, returning a
// BadRange CommandError otherwise.
func (g *Grid) ValidateRect(rect Rectangle) error {
	if rect.R0 > rect.R1 || rect.C0 > rect.C1 {
		return newCommandError(ErrBadRange, "range [%d:%d,%d:%d] is inverted", rect.R0, rect.R1, rect.C0, rect.C1)
	}
	if !g.InBounds(rect.R0, rect.C0) || !g.InBounds(rect.R1, rect.C1) {
		return newCommandError(ErrBadRange, "range [%d:%d,%d:%d] is outside the %dx%d grid", rect.R0, rect.R1, rect.C0, rect.C1, g.Rows, g.Cols)
	}
	return nil
}
