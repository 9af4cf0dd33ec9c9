package command

import (
	"testing"

	"github.com/ravensburg/cellgraph/internal/engine"
)

func mustParse(t *testing.T, line string) Command {
	t.Helper()
	cmd, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %v", line, err)
	}
	return cmd
}

func cellAt(row, col int32) engine.CellHandle { return engine.CellHandle{Row: row, Col: col} }

func TestParseAssignConstant(t *testing.T) {
	cmd := mustParse(t, "A1=42")
	got, ok := cmd.(AssignConstantCmd)
	if !ok {
		t.Fatalf("got %T, want AssignConstantCmd", cmd)
	}
	if got.Target != cellAt(0, 0) || got.Value != 42 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseNegativeConstant(t *testing.T) {
	cmd := mustParse(t, "A1=-7")
	got, ok := cmd.(AssignConstantCmd)
	if !ok || got.Value != -7 {
		t.Fatalf("got %T %+v, want AssignConstantCmd{Value:-7}", cmd, cmd)
	}
}

func TestParseAssignReference(t *testing.T) {
	cmd := mustParse(t, "B2=A1")
	got, ok := cmd.(AssignReferenceCmd)
	if !ok {
		t.Fatalf("got %T, want AssignReferenceCmd", cmd)
	}
	if got.Target != cellAt(1, 1) || got.Src != cellAt(0, 0) {
		t.Fatalf("got %+v", got)
	}
}

func TestParseAssignBinary(t *testing.T) {
	cmd := mustParse(t, "C1=A1+B1")
	got, ok := cmd.(AssignBinaryCmd)
	if !ok {
		t.Fatalf("got %T, want AssignBinaryCmd", cmd)
	}
	if got.Op != engine.OpAdd || got.Lhs.Ref != cellAt(0, 0) || got.Rhs.Ref != cellAt(0, 1) {
		t.Fatalf("got %+v", got)
	}
}

func TestParseAssignBinaryLiteralOperand(t *testing.T) {
	cmd := mustParse(t, "D1=A1*3")
	got, ok := cmd.(AssignBinaryCmd)
	if !ok {
		t.Fatalf("got %T, want AssignBinaryCmd", cmd)
	}
	if got.Op != engine.OpMul || got.Rhs.IsLiteral != true || got.Rhs.Literal != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseAssignRange(t *testing.T) {
	cmd := mustParse(t, "E1=SUM(A1:A5)")
	got, ok := cmd.(AssignRangeCmd)
	if !ok {
		t.Fatalf("got %T, want AssignRangeCmd", cmd)
	}
	if got.Op != engine.RangeSum || got.Rect != (engine.Rectangle{R0: 0, C0: 0, R1: 4, C1: 0}) {
		t.Fatalf("got %+v", got)
	}
}

func TestParseAssignSleep(t *testing.T) {
	cmd := mustParse(t, "F1=SLEEP(3)")
	got, ok := cmd.(AssignSleepCmd)
	if !ok {
		t.Fatalf("got %T, want AssignSleepCmd", cmd)
	}
	if !got.Operand.IsLiteral || got.Operand.Literal != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseControlCommands(t *testing.T) {
	cases := map[string]Command{
		"w":              ScrollCmd{Dir: ScrollUp},
		"a":              ScrollCmd{Dir: ScrollLeft},
		"s":              ScrollCmd{Dir: ScrollDown},
		"d":              ScrollCmd{Dir: ScrollRight},
		"disable_output": DisableOutputCmd{},
		"enable_output":  EnableOutputCmd{},
		"q":              QuitCmd{},
		"scroll_to B3":   ScrollToCmd{Target: cellAt(2, 1)},
	}
	for line, want := range cases {
		got := mustParse(t, line)
		if got != want {
			t.Fatalf("Parse(%q) = %+v, want %+v", line, got, want)
		}
	}
}

func TestParseUnknownFunc(t *testing.T) {
	_, err := Parse("A1=MEDIAN(A1:A2)")
	requireCode(t, err, engine.ErrUnknownFunc)
}

func TestParseBadRange(t *testing.T) {
	_, err := Parse("A1=SUM(A5:A1)")
	requireCode(t, err, engine.ErrBadRange)
}

func TestParseBadSyntax(t *testing.T) {
	_, err := Parse("A1=+")
	requireCode(t, err, engine.ErrBadSyntax)
}

func TestParseBadLiteral(t *testing.T) {
	_, err := Parse("A1=99999999999999999999")
	requireCode(t, err, engine.ErrBadLiteral)
}

func requireCode(t *testing.T, err error, want engine.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %v, got nil", want)
	}
	ce, ok := engine.AsCommandError(err)
	if !ok || ce.Code != want {
		t.Fatalf("got %v, want code %v", err, want)
	}
}
