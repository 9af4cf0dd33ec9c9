package present

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/ravensburg/cellgraph/internal/engine"
)

const (
	cellFieldWidth = 12
	rowLabelWidth  = 4
)

// Render writes the viewport's current 10x10 window to w, followed by the
// status/timing line. grid provides the committed cell values; status is
// nil for a successful command (rendered "(ok)") or the CommandError that
// rejected it. elapsed is the wall-clock duration the command itself took
// to run.
func Render(w io.Writer, grid *engine.Grid, v *Viewport, status error, elapsed time.Duration) {
	if !v.OutputEnabled() {
		fmt.Fprintln(w, statusLine(status, elapsed))
		return
	}
	r0, c0, r1, c1 := v.Bounds()

	fmt.Fprint(w, strings.Repeat(" ", rowLabelWidth))
	for c := c0; c <= c1; c++ {
		fmt.Fprintf(w, "%*s", cellFieldWidth, ColumnLabel(c))
	}
	fmt.Fprintln(w)

	for r := r0; r <= r1; r++ {
		fmt.Fprintf(w, "%*d", rowLabelWidth, r+1)
		for c := c0; c <= c1; c++ {
			cell := grid.Cell(engine.CellHandle{Row: r, Col: c})
			fmt.Fprintf(w, "%*s", cellFieldWidth, formatCell(cell))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, statusLine(status, elapsed))
}

func formatCell(cell engine.Cell) string {
	if cell.Error {
		return "ERR"
	}
	return fmt.Sprintf("%d", cell.Value)
}

func statusLine(status error, elapsed time.Duration) string {
	tag := "(ok)"
	if status != nil {
		if ce, ok := engine.AsCommandError(status); ok {
			tag = ce.Code.String()
		} else {
			tag = "error"
		}
	}
	return fmt.Sprintf("[%s] %s", elapsed, tag)
}

// ClearScreen emits the ANSI sequence to clear a terminal and home the
// cursor, used before each redraw when stdout is a real terminal. It is a
// no-op when out is not a terminal, e.g. when output is piped or redirected
// to a file during batch mode.
func ClearScreen(out *os.File) {
	if !term.IsTerminal(int(out.Fd())) {
		return
	}
	fmt.Fprint(out, "\x1b[2J\x1b[H")
}
