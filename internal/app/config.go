package app

import (
	"fmt"

	"github.com/vk/gridcalc/internal/sheet"
)

// Default sheet dimensions when neither flags nor a seed file specify them.
const (
	DefaultRows = 100
	DefaultCols = 26
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Rows     int
	Cols     int
	GridPath string // optional hcl seed file

	LogFormat string
	LogLevel  string
}

// NewConfig validates the raw configuration and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Rows < 1 || cfg.Rows > sheet.MaxRows {
		return nil, fmt.Errorf("rows must be between 1 and %d, got %d", sheet.MaxRows, cfg.Rows)
	}
	if cfg.Cols < 1 || cfg.Cols > sheet.MaxCols {
		return nil, fmt.Errorf("cols must be between 1 and %d, got %d", sheet.MaxCols, cfg.Cols)
	}
	return &cfg, nil
}
