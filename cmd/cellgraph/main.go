// Command cellgraph is the interactive front end for the evaluation core in
// internal/engine: a REPL (or, with --batch, a scripted file) that reads
// command-grammar lines, dispatches them through internal/command and
// internal/engine, and renders the grid with internal/present after each
// command.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ravensburg/cellgraph/internal/command"
	"github.com/ravensburg/cellgraph/internal/engine"
	"github.com/ravensburg/cellgraph/internal/present"
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var rows, cols int32
	var batchFile string
	var verbose bool

	root := &cobra.Command{
		Use:   "cellgraph",
		Short: "an in-memory integer spreadsheet evaluation core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			grid, err := engine.NewGrid(rows, cols)
			if err != nil {
				return err
			}
			vp := present.NewViewport(rows, cols)

			if batchFile != "" {
				f, err := os.Open(batchFile)
				if err != nil {
					return fmt.Errorf("cellgraph: opening batch file: %w", err)
				}
				defer f.Close()
				return runLoop(f, cmd.OutOrStdout(), grid, vp, false)
			}
			return runLoop(cmd.InOrStdin(), cmd.OutOrStdout(), grid, vp, true)
		},
	}

	root.Flags().Int32Var(&rows, "rows", engine.MaxRows, "number of grid rows (1..999)")
	root.Flags().Int32Var(&cols, "cols", engine.MaxCols, "number of grid columns (1..18278)")
	root.Flags().StringVar(&batchFile, "batch", "", "read commands from a file instead of stdin")
	root.Flags().BoolVar(&verbose, "verbose", false, "log internal diagnostics at debug level")
	return root
}

// runLoop reads one command per line from in, applies it to grid, and
// renders the result to out after each one. interactive controls whether
// the screen is cleared before each redraw (a batch run has no terminal to
// clear, and a reader diffing expected output wants every frame kept).
func runLoop(in io.Reader, out io.Writer, grid *engine.Grid, vp *present.Viewport, interactive bool) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		if interactive {
			if f, ok := out.(*os.File); ok {
				present.ClearScreen(f)
			}
		}

		start := time.Now()
		parsed, err := command.Parse(line)
		if _, isQuit := parsed.(command.QuitCmd); isQuit {
			return nil
		}
		if err == nil {
			err = dispatch(grid, vp, parsed)
		}
		elapsed := time.Since(start)

		if err != nil {
			if _, ok := engine.AsCommandError(err); ok {
				log.WithError(err).Debug("command rejected")
			} else {
				log.WithError(err).Error("command failed")
			}
		}
		present.Render(out, grid, vp, err, elapsed)
	}
	return scanner.Err()
}

// dispatch routes a parsed command to the engine (for the five Assign
// variants) or the viewport (for scroll/control commands).
func dispatch(grid *engine.Grid, vp *present.Viewport, cmd command.Command) error {
	switch c := cmd.(type) {
	case command.AssignConstantCmd:
		return grid.AssignConstant(c.Target, c.Value)
	case command.AssignReferenceCmd:
		return grid.AssignReference(c.Target, c.Src)
	case command.AssignBinaryCmd:
		return grid.AssignBinary(c.Target, c.Op, c.Lhs, c.Rhs)
	case command.AssignRangeCmd:
		return grid.AssignRange(c.Target, c.Op, c.Rect)
	case command.AssignSleepCmd:
		return grid.AssignSleep(c.Target, c.Operand)
	case command.ScrollCmd:
		switch c.Dir {
		case command.ScrollUp:
			vp.ScrollUp()
		case command.ScrollDown:
			vp.ScrollDown()
		case command.ScrollLeft:
			vp.ScrollLeft()
		case command.ScrollRight:
			vp.ScrollRight()
		}
		return nil
	case command.ScrollToCmd:
		vp.ScrollTo(c.Target)
		return nil
	case command.DisableOutputCmd:
		vp.DisableOutput()
		return nil
	case command.EnableOutputCmd:
		vp.EnableOutput()
		return nil
	case command.QuitCmd:
		return nil
	default:
		return fmt.Errorf("cellgraph: unrecognized command %T", cmd)
	}
}
