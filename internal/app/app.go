package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/gridcalc/internal/ctxlog"
	"github.com/vk/gridcalc/internal/engine"
	"github.com/vk/gridcalc/internal/eval"
	"github.com/vk/gridcalc/internal/gridfile"
	"github.com/vk/gridcalc/internal/viewport"
)

// App encapsulates the console's dependencies, configuration, and lifecycle.
type App struct {
	inR    io.Reader
	outW   io.Writer
	logger *slog.Logger
	engine *engine.Engine
	view   *viewport.Viewport

	// echo controls whether the visible window is reprinted after each
	// command.
	echo bool
}

// NewApp constructs the console application: logger, engine, viewport, and
// the optional seed file applied cell by cell. Seed file dimensions take
// precedence over the configured ones.
func NewApp(inR io.Reader, outW io.Writer, cfg *Config) (*App, error) {
	return newApp(inR, outW, cfg, eval.ClockSleeper{})
}

// newApp is NewApp with an explicit delay policy, for tests.
func newApp(inR io.Reader, outW io.Writer, cfg *Config, sleeper eval.Sleeper) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	rows, cols := cfg.Rows, cfg.Cols

	var seed *gridfile.File
	if cfg.GridPath != "" {
		var err error
		seed, err = gridfile.Load(ctx, cfg.GridPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load grid file: %w", err)
		}
		if seed.Rows > 0 {
			rows = seed.Rows
		}
		if seed.Cols > 0 {
			cols = seed.Cols
		}
	}

	eng, err := engine.NewWithSleeper(rows, cols, sleeper)
	if err != nil {
		return nil, err
	}

	if seed != nil {
		for _, cell := range seed.Cells {
			if _, err := eng.SetFormula(ctx, cell.Ref, cell.Formula); err != nil {
				return nil, fmt.Errorf("seed cell %s=%q: %w", cell.Ref.String(), cell.Formula, err)
			}
		}
		logger.Debug("Seed file applied.", "cells", len(seed.Cells))
	}

	return &App{
		inR:    inR,
		outW:   outW,
		logger: logger,
		engine: eng,
		view:   viewport.New(rows, cols),
		echo:   true,
	}, nil
}

// Engine returns the application's engine. This is primarily for testing.
func (a *App) Engine() *engine.Engine {
	return a.engine
}
