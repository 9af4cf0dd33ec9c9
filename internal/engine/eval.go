package engine

import (
	"math"
	"time"
)

// compute evaluates h's current formula against the grid's present cell
// values and writes the result (value + error flag) back onto h. It never
// touches any cell other than h: recalc.go is responsible for calling
// compute on every affected cell in dependency order first.
func (g *Grid) compute(h CellHandle) {
	cell := g.cellPtr(h)
	switch f := cell.Formula.(type) {
	case ConstantFormula:
		cell.Value, cell.Error = f.Value, false
	case ReferenceFormula:
		src := g.Cell(f.Src)
		cell.Value, cell.Error = src.Value, src.Error
	case BinaryFormula:
		cell.Value, cell.Error = g.computeBinary(f)
	case RangeFormula:
		cell.Value, cell.Error = g.computeRange(f)
	case SleepFormula:
		cell.Value, cell.Error = g.computeSleep(f)
	}
}

func (g *Grid) operandValue(o Operand) (int32, bool) {
	if o.IsLiteral {
		return o.Literal, false
	}
	src := g.Cell(o.Ref)
	return src.Value, src.Error
}

// computeBinary applies the four binary operators with 32-bit wrapping
// arithmetic and truncating (toward zero) division. Division by zero is the
// only source of error for a binary formula; any error on either operand
// propagates regardless of which operator is used.
func (g *Grid) computeBinary(f BinaryFormula) (int32, bool) {
	lv, lerr := g.operandValue(f.Lhs)
	rv, rerr := g.operandValue(f.Rhs)
	if lerr || rerr {
		return 0, true
	}
	switch f.Op {
	case OpAdd:
		return lv + rv, false
	case OpSub:
		return lv - rv, false
	case OpMul:
		return lv * rv, false
	case OpDiv:
		if rv == 0 {
			return 0, true
		}
		return lv / rv, false
	default:
		return 0, true
	}
}

// computeRange reduces every cell in f.Rect with f.Op. An error on any
// member propagates to the aggregate; SUM/MIN/MAX/AVG are otherwise
// computed with integer arithmetic, and STDEV computes its variance and
// square root in floating point before rounding. Every result is stored as
// a 32-bit integer — cell values are never floating point.
func (g *Grid) computeRange(f RangeFormula) (int32, bool) {
	var sum int64
	var count int64
	min, max := int64(math.MaxInt64), int64(math.MinInt64)
	for r := f.Rect.R0; r <= f.Rect.R1; r++ {
		for c := f.Rect.C0; c <= f.Rect.C1; c++ {
			cell := g.Cell(CellHandle{Row: r, Col: c})
			if cell.Error {
				return 0, true
			}
			v := int64(cell.Value)
			sum += v
			count++
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if count == 0 {
		return 0, true
	}
	switch f.Op {
	case RangeSum:
		return int32(sum), false
	case RangeMin:
		return int32(min), false
	case RangeMax:
		return int32(max), false
	case RangeAvg:
		return int32(sum / count), false
	case RangeStdev:
		return int32(stdev(g, f.Rect, sum, count)), false
	default:
		return 0, true
	}
}

// stdev computes the population standard deviation (denominator n, not
// n-1), using the truncating integer mean (matching AVG) for the deviation
// pass and rounding only the final result to the nearest integer.
func stdev(g *Grid, rect Rectangle, sum, count int64) int64 {
	mean := sum / count
	var variance float64
	for r := rect.R0; r <= rect.R1; r++ {
		for c := rect.C0; c <= rect.C1; c++ {
			v := int64(g.Cell(CellHandle{Row: r, Col: c}).Value)
			diff := float64(v - mean)
			variance += diff * diff
		}
	}
	variance /= float64(count)
	return int64(math.Round(math.Sqrt(variance)))
}

// computeSleep blocks the calling goroutine for max(n, 0) seconds and then
// stores n itself (even if n is negative). Sleep never errors, even when
// its operand is a reference to a cell that is itself in error.
func (g *Grid) computeSleep(f SleepFormula) (int32, bool) {
	n, _ := g.operandValue(f.Operand)
	if n > 0 {
		time.Sleep(time.Duration(n) * time.Second)
	}
	return n, false
}
