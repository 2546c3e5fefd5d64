package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vk/gridcalc/internal/coord"
)

func TestScrollSteps(t *testing.T) {
	v := New(100, 100)
	v.ScrollTo(coord.Ref{Row: 50, Col: 0})

	v.Up()
	assert.Equal(t, coord.Ref{Row: 40, Col: 0}, v.Start())

	v.ScrollTo(coord.Ref{Row: 80, Col: 0})
	v.Down()
	assert.Equal(t, coord.Ref{Row: 90, Col: 0}, v.Start())

	v.ScrollTo(coord.Ref{Row: 0, Col: 50})
	v.Left()
	assert.Equal(t, coord.Ref{Row: 0, Col: 40}, v.Start())

	v.Right()
	v.Right()
	assert.Equal(t, coord.Ref{Row: 0, Col: 60}, v.Start())
}

func TestScrollClamping(t *testing.T) {
	v := New(25, 25)

	v.Up()
	assert.Equal(t, coord.Ref{}, v.Start(), "cannot scroll above row 1")

	v.Down()
	v.Down()
	v.Down()
	assert.Equal(t, coord.Ref{Row: 15, Col: 0}, v.Start(), "clamped to keep a full window")

	v.Right()
	v.Right()
	v.Right()
	assert.Equal(t, coord.Ref{Row: 15, Col: 15}, v.Start())
}

func TestScrollTo(t *testing.T) {
	v := New(100, 100)

	v.ScrollTo(coord.Ref{Row: 42, Col: 7})
	assert.Equal(t, coord.Ref{Row: 42, Col: 7}, v.Start())

	v.ScrollTo(coord.Ref{Row: 99, Col: 99})
	assert.Equal(t, coord.Ref{Row: 90, Col: 90}, v.Start())

	v.ScrollTo(coord.Ref{Row: -5, Col: -5})
	assert.Equal(t, coord.Ref{}, v.Start())
}

func TestSmallGridWindow(t *testing.T) {
	v := New(3, 4)
	assert.Equal(t, 3, v.Height())
	assert.Equal(t, 4, v.Width())

	v.Down()
	v.Right()
	assert.Equal(t, coord.Ref{}, v.Start(), "window larger than grid never moves")
}

func TestLargeGridWindow(t *testing.T) {
	v := New(999, 18278)
	assert.Equal(t, Size, v.Height())
	assert.Equal(t, Size, v.Width())

	v.ScrollTo(coord.Ref{Row: 995, Col: 0})
	assert.Equal(t, coord.Ref{Row: 989, Col: 0}, v.Start())
	assert.Equal(t, Size, v.Height())
}
