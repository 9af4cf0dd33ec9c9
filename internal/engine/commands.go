package engine

// install runs the common tail of every Assign* command once the new
// formula and its error-free dependency set have passed validation and the
// cycle check: detach the target's old precedent edges, attach the new
// ones, write the new formula onto the cell, and recalc from target. This
// is factored out since all five commands share it after the
// formula-specific validation step.
func (g *Grid) install(target CellHandle, formula Formula, newPrecedents []CellHandle) error {
	old := g.Cell(target).Formula
	if err := g.graph.detach(target, old.Dependencies()); err != nil {
		return err
	}
	if err := g.graph.attach(target, newPrecedents); err != nil {
		return err
	}
	g.cellPtr(target).Formula = formula
	return g.recalcFrom(target)
}

// AssignConstant installs target = k. A literal formula never has a
// precedent, so there is nothing to cycle-check.
func (g *Grid) AssignConstant(target CellHandle, value int32) error {
	if err := g.ValidateRef(target); err != nil {
		return err
	}
	return g.install(target, ConstantFormula{Value: value}, nil)
}

// AssignReference installs target = src.
func (g *Grid) AssignReference(target, src CellHandle) error {
	if err := g.ValidateRef(target); err != nil {
		return err
	}
	if err := g.ValidateRef(src); err != nil {
		return err
	}
	if err := g.graph.checkCycle(target, singleMember(src), ErrCycle); err != nil {
		return err
	}
	return g.install(target, ReferenceFormula{Src: src}, []CellHandle{src})
}

// AssignBinary installs target = lhs OP rhs, where lhs/rhs are each either
// an integer literal or a cell reference.
func (g *Grid) AssignBinary(target CellHandle, op BinaryOp, lhs, rhs Operand) error {
	if err := g.ValidateRef(target); err != nil {
		return err
	}
	for _, o := range []Operand{lhs, rhs} {
		if !o.IsLiteral {
			if err := g.ValidateRef(o.Ref); err != nil {
				return err
			}
		}
	}
	refs := dedupRefs(lhs, rhs)
	if err := g.graph.checkCycle(target, manyMembers(refs), ErrCycle); err != nil {
		return err
	}
	return g.install(target, BinaryFormula{Op: op, Lhs: lhs, Rhs: rhs}, refs)
}

// AssignRange installs target = OP(r0:c0, r1:c1).
func (g *Grid) AssignRange(target CellHandle, op RangeOp, rect Rectangle) error {
	if err := g.ValidateRef(target); err != nil {
		return err
	}
	if err := g.ValidateRect(rect); err != nil {
		return err
	}
	if err := g.graph.checkCycle(target, rectMember(rect), ErrSelfReference); err != nil {
		return err
	}
	formula := RangeFormula{Op: op, Rect: rect}
	return g.install(target, formula, formula.Dependencies())
}

// AssignSleep installs target = SLEEP(operand).
func (g *Grid) AssignSleep(target CellHandle, operand Operand) error {
	if err := g.ValidateRef(target); err != nil {
		return err
	}
	var refs []CellHandle
	if !operand.IsLiteral {
		if err := g.ValidateRef(operand.Ref); err != nil {
			return err
		}
		refs = []CellHandle{operand.Ref}
		if err := g.graph.checkCycle(target, singleMember(operand.Ref), ErrCycle); err != nil {
			return err
		}
	}
	return g.install(target, SleepFormula{Operand: operand}, refs)
}
