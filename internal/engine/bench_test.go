package engine

import "testing"

// BenchmarkLargeCellPopulation fills every cell of a modest grid with a
// constant and measures allocation/assignment overhead alone.
func BenchmarkLargeCellPopulation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		g, err := NewGrid(100, 26)
		if err != nil {
			b.Fatal(err)
		}
		for row := int32(0); row < 100; row++ {
			for col := int32(0); col < 26; col++ {
				if err := g.AssignConstant(CellHandle{Row: row, Col: col}, row*col); err != nil {
					b.Fatal(err)
				}
			}
		}
	}
}

// BenchmarkFormulaDependencyChain measures recalc cost through a 100-long
// A1 -> A2 -> ... chain of Binary formulas, each depending on its
// predecessor, when the chain head is reassigned.
func BenchmarkFormulaDependencyChain(b *testing.B) {
	g, err := NewGrid(100, 1)
	if err != nil {
		b.Fatal(err)
	}
	if err := g.AssignConstant(cell(0, 0), 1); err != nil {
		b.Fatal(err)
	}
	for i := int32(1); i < 100; i++ {
		if err := g.AssignBinary(cell(i, 0), OpAdd, RefOperand(cell(i-1, 0)), LiteralOperand(1)); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := g.AssignConstant(cell(0, 0), int32(i)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkWideDependencyFanOut measures recalc cost when 499 cells all
// depend directly on a single source cell that is repeatedly reassigned.
func BenchmarkWideDependencyFanOut(b *testing.B) {
	g, err := NewGrid(500, 2)
	if err != nil {
		b.Fatal(err)
	}
	src := cell(0, 0)
	if err := g.AssignConstant(src, 100); err != nil {
		b.Fatal(err)
	}
	for i := int32(1); i < 500; i++ {
		if err := g.AssignBinary(cell(i, 1), OpMul, RefOperand(src), LiteralOperand(2)); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := g.AssignConstant(src, int32(i)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLargeRangeSUM measures a single SUM aggregate over 999 rows (the
// grid's row bound), recomputed once per source reassignment.
func BenchmarkLargeRangeSUM(b *testing.B) {
	g, err := NewGrid(999, 2)
	if err != nil {
		b.Fatal(err)
	}
	for i := int32(0); i < 999; i++ {
		if err := g.AssignConstant(cell(i, 0), i); err != nil {
			b.Fatal(err)
		}
	}
	if err := g.AssignRange(cell(0, 1), RangeSum, Rectangle{R0: 0, C0: 0, R1: 998, C1: 0}); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := g.AssignConstant(cell(0, 0), int32(i)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCascadingUpdates measures recalc cost on a 50x10 grid where
// every cell but column A doubles its left neighbor, reassigning the
// corner repeatedly.
func BenchmarkCascadingUpdates(b *testing.B) {
	g, err := NewGrid(50, 10)
	if err != nil {
		b.Fatal(err)
	}
	for row := int32(0); row < 50; row++ {
		for col := int32(0); col < 10; col++ {
			h := CellHandle{Row: row, Col: col}
			if col == 0 {
				if err := g.AssignConstant(h, row+1); err != nil {
					b.Fatal(err)
				}
				continue
			}
			prev := CellHandle{Row: row, Col: col - 1}
			if err := g.AssignBinary(h, OpMul, RefOperand(prev), LiteralOperand(2)); err != nil {
				b.Fatal(err)
			}
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := g.AssignConstant(cell(0, 0), int32(i%100)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCircularReferenceDetection measures the cycle detector's cost on
// an 8-cell chain where the final install would close the loop and must be
// rejected.
func BenchmarkCircularReferenceDetection(b *testing.B) {
	for i := 0; i < b.N; i++ {
		g, err := NewGrid(8, 1)
		if err != nil {
			b.Fatal(err)
		}
		for r := int32(0); r < 7; r++ {
			if err := g.AssignBinary(cell(r, 0), OpAdd, RefOperand(cell(r+1, 0)), LiteralOperand(0)); err != nil {
				b.Fatal(err)
			}
		}
		_ = g.AssignReference(cell(7, 0), cell(0, 0))
	}
}
