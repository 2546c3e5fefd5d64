package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vk/gridcalc/internal/coord"
)

// renderView prints the visible window as a table with column labels across
// the top and row numbers down the left edge.
func (a *App) renderView() {
	start := a.view.Start()
	height := a.view.Height()
	width := a.view.Width()

	tw := tabwriter.NewWriter(a.outW, 4, 0, 1, ' ', 0)

	fmt.Fprint(tw, " ")
	for c := 0; c < width; c++ {
		fmt.Fprintf(tw, "\t%s", coord.ColumnLabel(start.Col+c))
	}
	fmt.Fprintln(tw)

	for r := 0; r < height; r++ {
		fmt.Fprintf(tw, "%d", start.Row+r+1)
		for c := 0; c < width; c++ {
			ref := coord.Ref{Row: start.Row + r, Col: start.Col + c}
			fmt.Fprintf(tw, "\t%s", a.engine.Value(ref).String())
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

// printPrompt writes the "[elapsed] (status) > " prompt line.
func printPrompt(w io.Writer, elapsed float64, status string) {
	fmt.Fprintf(w, "[%.1f] (%s) > ", elapsed, status)
}
