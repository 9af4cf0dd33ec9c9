package present

import "github.com/ravensburg/cellgraph/internal/engine"

// windowSize is the fixed 10x10 viewport size.
const windowSize = 10

// scrollStep is how far w/a/s/d move the viewport per press: 10 rows/cols.
const scrollStep = 10

// Viewport tracks the 10x10 window's anchor and whether rendering is
// currently suppressed (disable_output/enable_output), the state the
// scroll/viewport control commands mutate outside the engine core.
type Viewport struct {
	startRow, startCol int32
	rows, cols         int32 // grid bounds, to clamp scrolling
	outputEnabled      bool
}

// NewViewport builds a viewport anchored at the grid's origin.
func NewViewport(rows, cols int32) *Viewport {
	return &Viewport{rows: rows, cols: cols, outputEnabled: true}
}

func clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (v *Viewport) maxStartRow() int32 {
	return clamp(v.rows-windowSize, 0, v.rows)
}

func (v *Viewport) maxStartCol() int32 {
	return clamp(v.cols-windowSize, 0, v.cols)
}

// ScrollUp moves the window's anchor up by one scroll step.
func (v *Viewport) ScrollUp() { v.startRow = clamp(v.startRow-scrollStep, 0, v.maxStartRow()) }

// ScrollDown moves the window's anchor down by one scroll step.
func (v *Viewport) ScrollDown() { v.startRow = clamp(v.startRow+scrollStep, 0, v.maxStartRow()) }

// ScrollLeft moves the window's anchor left by one scroll step.
func (v *Viewport) ScrollLeft() { v.startCol = clamp(v.startCol-scrollStep, 0, v.maxStartCol()) }

// ScrollRight moves the window's anchor right by one scroll step.
func (v *Viewport) ScrollRight() { v.startCol = clamp(v.startCol+scrollStep, 0, v.maxStartCol()) }

// ScrollTo re-anchors the window so that h is its top-left cell, clamped to
// the grid's bounds.
func (v *Viewport) ScrollTo(h engine.CellHandle) {
	v.startRow = clamp(h.Row, 0, v.maxStartRow())
	v.startCol = clamp(h.Col, 0, v.maxStartCol())
}

// DisableOutput suppresses rendering until EnableOutput is called.
func (v *Viewport) DisableOutput() { v.outputEnabled = false }

// EnableOutput resumes rendering.
func (v *Viewport) EnableOutput() { v.outputEnabled = true }

// OutputEnabled reports whether rendering is currently enabled (false while
// suppressed by DisableOutput).
func (v *Viewport) OutputEnabled() bool { return v.outputEnabled }

// Bounds returns the window's inclusive [r0,r1] x [c0,c1] cell range.
func (v *Viewport) Bounds() (r0, c0, r1, c1 int32) {
	r1 = clamp(v.startRow+windowSize-1, 0, v.rows-1)
	c1 = clamp(v.startCol+windowSize-1, 0, v.cols-1)
	return v.startRow, v.startCol, r1, c1
}
