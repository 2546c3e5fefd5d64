package app

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vk/gridcalc/internal/coord"
	"github.com/vk/gridcalc/internal/ctxlog"
	"github.com/vk/gridcalc/internal/engine"
	"github.com/vk/gridcalc/internal/export"
)

// Run drives the interactive console until the input is exhausted or the
// quit command is entered. Each line is one command:
//
//	A1=5+B2         assign a formula
//	clear A1        empty a cell
//	w s a d         scroll the window
//	scroll_to C20   place the window's corner
//	export out.csv  write the full sheet as CSV
//	enable_output   reprint the window after each command
//	disable_output  suppress the window
//	q               quit
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.echo {
		a.renderView()
	}

	status := "ok"
	elapsed := 0.0
	printPrompt(a.outW, elapsed, status)

	scanner := bufio.NewScanner(a.inR)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "q" {
			fmt.Fprintln(a.outW, "bye")
			return nil
		}

		started := time.Now()
		status = a.dispatch(ctx, line)
		elapsed = time.Since(started).Seconds()

		if a.echo {
			a.renderView()
		}
		printPrompt(a.outW, elapsed, status)
	}

	a.logger.Debug("Input exhausted, leaving console loop.")
	return scanner.Err()
}

// dispatch executes one command line and returns its status text.
func (a *App) dispatch(ctx context.Context, line string) string {
	switch {
	case line == "":
		return "ok"
	case line == "w":
		a.view.Up()
		return "ok"
	case line == "s":
		a.view.Down()
		return "ok"
	case line == "a":
		a.view.Left()
		return "ok"
	case line == "d":
		a.view.Right()
		return "ok"
	case line == "enable_output":
		a.echo = true
		return "ok"
	case line == "disable_output":
		a.echo = false
		return "ok"
	}

	if arg, ok := strings.CutPrefix(line, "scroll_to "); ok {
		ref, err := coord.Parse(strings.TrimSpace(arg))
		if err != nil {
			return "Invalid range"
		}
		rows, cols := a.engine.Dims()
		if ref.Row >= rows || ref.Col >= cols {
			return "Invalid range"
		}
		a.view.ScrollTo(ref)
		return "ok"
	}

	if arg, ok := strings.CutPrefix(line, "export "); ok {
		path := strings.TrimSpace(arg)
		if path == "" {
			return "unrecognized cmd"
		}
		if err := export.ToFile(path, a.engine); err != nil {
			a.logger.Error("Export failed.", "path", path, "error", err)
			return "export failed"
		}
		return "ok"
	}

	if arg, ok := strings.CutPrefix(line, "clear "); ok {
		ref, err := coord.Parse(strings.TrimSpace(arg))
		if err != nil {
			return "Invalid range"
		}
		_, err = a.engine.Clear(ctx, ref)
		return engine.StatusText(err)
	}

	if target, text, ok := strings.Cut(line, "="); ok {
		ref, err := coord.Parse(strings.TrimSpace(target))
		if err != nil {
			return "Invalid range"
		}
		_, err = a.engine.SetFormula(ctx, ref, strings.TrimSpace(text))
		return engine.StatusText(err)
	}

	return "unrecognized cmd"
}
