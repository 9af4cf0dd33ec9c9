package command

import (
	"strconv"
	"strings"

	"github.com/ravensburg/cellgraph/internal/engine"
)

// Command is a parsed line, ready for the REPL/engine wiring layer
// (cmd/cellgraph) to act on: either one of the five engine mutations or a
// viewport/control command handled outside the core.
type Command interface {
	isCommand()
}

type AssignConstantCmd struct {
	Target engine.CellHandle
	Value  int32
}

type AssignReferenceCmd struct {
	Target, Src engine.CellHandle
}

type AssignBinaryCmd struct {
	Target   engine.CellHandle
	Op       engine.BinaryOp
	Lhs, Rhs engine.Operand
}

type AssignRangeCmd struct {
	Target engine.CellHandle
	Op     engine.RangeOp
	Rect   engine.Rectangle
}

type AssignSleepCmd struct {
	Target  engine.CellHandle
	Operand engine.Operand
}

// ScrollDir enumerates the four viewport scroll directions (w/a/s/d).
type ScrollDir uint8

const (
	ScrollUp ScrollDir = iota
	ScrollLeft
	ScrollDown
	ScrollRight
)

type ScrollCmd struct{ Dir ScrollDir }

type ScrollToCmd struct{ Target engine.CellHandle }

type DisableOutputCmd struct{}
type EnableOutputCmd struct{}
type QuitCmd struct{}

func (AssignConstantCmd) isCommand()  {}
func (AssignReferenceCmd) isCommand() {}
func (AssignBinaryCmd) isCommand()    {}
func (AssignRangeCmd) isCommand()     {}
func (AssignSleepCmd) isCommand()     {}
func (ScrollCmd) isCommand()          {}
func (ScrollToCmd) isCommand()        {}
func (DisableOutputCmd) isCommand()   {}
func (EnableOutputCmd) isCommand()    {}
func (QuitCmd) isCommand()            {}

var rangeFuncs = map[string]engine.RangeOp{
	"SUM":   engine.RangeSum,
	"MIN":   engine.RangeMin,
	"MAX":   engine.RangeMax,
	"AVG":   engine.RangeAvg,
	"STDEV": engine.RangeStdev,
}

// Parse lexes and parses one input line into a Command. This is a
// recursive-descent parser over a narrow grammar: one operator slot, one
// function-call shape, no precedence climbing and no parentheses beyond a
// function's own.
func Parse(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	if ctrl, ok := parseControl(trimmed); ok {
		return ctrl, nil
	}

	p := &parser{lex: NewLexer(trimmed)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.Type != TokenCell {
		return nil, engine.NewCommandError(engine.ErrBadSyntax, "expected a cell reference to assign, got %q", p.tok.Text)
	}
	target, err := parseCellRef(p.tok.Text)
	if err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Type != TokenEquals {
		return nil, engine.NewCommandError(engine.ErrBadSyntax, "expected '=' after %s", p.tok.Text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	cmd, err := p.parseRHS(target)
	if err != nil {
		return nil, err
	}
	if p.tok.Type != TokenEOF {
		return nil, engine.NewCommandError(engine.ErrBadSyntax, "unexpected trailing input %q", p.tok.Text)
	}
	return cmd, nil
}

func parseControl(line string) (Command, bool) {
	switch strings.ToLower(line) {
	case "w":
		return ScrollCmd{Dir: ScrollUp}, true
	case "a":
		return ScrollCmd{Dir: ScrollLeft}, true
	case "s":
		return ScrollCmd{Dir: ScrollDown}, true
	case "d":
		return ScrollCmd{Dir: ScrollRight}, true
	case "disable_output":
		return DisableOutputCmd{}, true
	case "enable_output":
		return EnableOutputCmd{}, true
	case "q":
		return QuitCmd{}, true
	}
	const prefix = "scroll_to "
	if strings.HasPrefix(strings.ToLower(line), prefix) {
		ref := strings.TrimSpace(line[len(prefix):])
		if isCellRef(strings.ToUpper(ref)) {
			if h, err := parseCellRef(strings.ToUpper(ref)); err == nil {
				return ScrollToCmd{Target: h}, true
			}
		}
	}
	return nil, false
}

type parser struct {
	lex *Lexer
	tok Token
}

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// parseRHS parses everything after "<target> =", dispatching on the shape
// of what follows: a bare int/cellref, an operand-op-operand pair, a
// function call, or SLEEP(...).
func (p *parser) parseRHS(target engine.CellHandle) (Command, error) {
	switch p.tok.Type {
	case TokenIdentifier:
		name := p.tok.Text
		if name == "SLEEP" {
			return p.parseSleep(target)
		}
		op, ok := rangeFuncs[name]
		if !ok {
			return nil, engine.NewCommandError(engine.ErrUnknownFunc, "unknown function %q", name)
		}
		return p.parseRange(target, op)
	case TokenNumber, TokenOp:
		return p.parseLiteralOrBinary(target)
	case TokenCell:
		return p.parseCellOrBinary(target)
	default:
		return nil, engine.NewCommandError(engine.ErrBadSyntax, "unexpected token %q in formula", p.tok.Text)
	}
}

// parseLiteralOrBinary handles an rhs that starts with a (possibly
// negative) integer literal: either a bare AssignConstant, or the first
// operand of a Binary formula.
func (p *parser) parseLiteralOrBinary(target engine.CellHandle) (Command, error) {
	lhs, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != TokenOp {
		return AssignConstantCmd{Target: target, Value: lhs.Literal}, nil
	}
	return p.parseBinaryTail(target, lhs)
}

// parseCellOrBinary handles an rhs that starts with a cell reference:
// either AssignReference (bare) or the first operand of a Binary formula.
func (p *parser) parseCellOrBinary(target engine.CellHandle) (Command, error) {
	lhs, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != TokenOp {
		return AssignReferenceCmd{Target: target, Src: lhs.Ref}, nil
	}
	return p.parseBinaryTail(target, lhs)
}

func (p *parser) parseBinaryTail(target engine.CellHandle, lhs engine.Operand) (Command, error) {
	opText := p.tok.Text
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	op, err := parseBinaryOp(opText)
	if err != nil {
		return nil, err
	}
	return AssignBinaryCmd{Target: target, Op: op, Lhs: lhs, Rhs: rhs}, nil
}

// parseOperand parses a single <int>|<cellref> operand, consuming tokens
// and leaving p.tok on whatever follows. A leading TokenOp "-" is folded
// into a negative integer literal here, the one place sign is legal.
func (p *parser) parseOperand() (engine.Operand, error) {
	negative := false
	if p.tok.Type == TokenOp && p.tok.Text == "-" {
		negative = true
		if err := p.advance(); err != nil {
			return engine.Operand{}, err
		}
	}
	switch p.tok.Type {
	case TokenNumber:
		v, err := parseInt32(p.tok.Text, negative)
		if err != nil {
			return engine.Operand{}, err
		}
		if err := p.advance(); err != nil {
			return engine.Operand{}, err
		}
		return engine.LiteralOperand(v), nil
	case TokenCell:
		if negative {
			return engine.Operand{}, engine.NewCommandError(engine.ErrBadLiteral, "cell reference %q cannot be negated", p.tok.Text)
		}
		h, err := parseCellRef(p.tok.Text)
		if err != nil {
			return engine.Operand{}, err
		}
		if err := p.advance(); err != nil {
			return engine.Operand{}, err
		}
		return engine.RefOperand(h), nil
	default:
		return engine.Operand{}, engine.NewCommandError(engine.ErrBadSyntax, "expected an operand, got %q", p.tok.Text)
	}
}

func (p *parser) parseSleep(target engine.CellHandle) (Command, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Type != TokenLParen {
		return nil, engine.NewCommandError(engine.ErrBadSyntax, "expected '(' after SLEEP")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	operand, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != TokenRParen {
		return nil, engine.NewCommandError(engine.ErrBadSyntax, "expected ')' to close SLEEP")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return AssignSleepCmd{Target: target, Operand: operand}, nil
}

func (p *parser) parseRange(target engine.CellHandle, op engine.RangeOp) (Command, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Type != TokenLParen {
		return nil, engine.NewCommandError(engine.ErrBadSyntax, "expected '(' after function name")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Type != TokenCell {
		return nil, engine.NewCommandError(engine.ErrBadSyntax, "expected a cell reference to start a range")
	}
	r0, err := parseCellRef(p.tok.Text)
	if err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Type != TokenColon {
		return nil, engine.NewCommandError(engine.ErrBadSyntax, "expected ':' in range")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Type != TokenCell {
		return nil, engine.NewCommandError(engine.ErrBadSyntax, "expected a cell reference to end a range")
	}
	r1, err := parseCellRef(p.tok.Text)
	if err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Type != TokenRParen {
		return nil, engine.NewCommandError(engine.ErrBadSyntax, "expected ')' to close range")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if r0.Row > r1.Row || r0.Col > r1.Col {
		return nil, engine.NewCommandError(engine.ErrBadRange, "range %v:%v is inverted", r0, r1)
	}
	rect := engine.Rectangle{R0: r0.Row, C0: r0.Col, R1: r1.Row, C1: r1.Col}
	return AssignRangeCmd{Target: target, Op: op, Rect: rect}, nil
}

func parseBinaryOp(text string) (engine.BinaryOp, error) {
	switch text {
	case "+":
		return engine.OpAdd, nil
	case "-":
		return engine.OpSub, nil
	case "*":
		return engine.OpMul, nil
	case "/":
		return engine.OpDiv, nil
	default:
		return 0, engine.NewCommandError(engine.ErrBadSyntax, "unknown operator %q", text)
	}
}

func parseInt32(digits string, negative bool) (int32, error) {
	if negative {
		digits = "-" + digits
	}
	v, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		return 0, engine.NewCommandError(engine.ErrBadLiteral, "literal %q does not parse as a 32-bit integer", digits)
	}
	return int32(v), nil
}
