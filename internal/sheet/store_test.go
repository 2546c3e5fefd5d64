package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gridcalc/internal/coord"
)

func TestNewStore_Validation(t *testing.T) {
	for _, tc := range []struct{ rows, cols int }{
		{0, 10}, {1000, 10}, {10, 0}, {10, 18279}, {-1, -1},
	} {
		_, err := NewStore(tc.rows, tc.cols)
		assert.Error(t, err, "dims %dx%d should be rejected", tc.rows, tc.cols)
	}

	s, err := NewStore(1, 1)
	require.NoError(t, err)
	require.NotNil(t, s)

	s, err = NewStore(MaxRows, MaxCols)
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestNewStore_ImplementationSelection(t *testing.T) {
	small, err := NewStore(10, 10)
	require.NoError(t, err)
	assert.IsType(t, &denseStore{}, small)

	large, err := NewStore(999, 18278)
	require.NoError(t, err)
	assert.IsType(t, &sparseStore{}, large)
}

// Both implementations must behave identically through the Store interface.
func TestStore_Behavior(t *testing.T) {
	impls := map[string]Store{
		"dense":  newDenseStore(20, 20),
		"sparse": newSparseStore(20, 20),
	}

	for name, s := range impls {
		t.Run(name, func(t *testing.T) {
			a1 := coord.Ref{Row: 0, Col: 0}
			b2 := coord.Ref{Row: 1, Col: 1}

			rows, cols := s.Dims()
			assert.Equal(t, 20, rows)
			assert.Equal(t, 20, cols)

			// Unwritten cells behave as Empty with value 0.
			_, ok := s.Cell(a1)
			assert.False(t, ok)
			assert.Equal(t, IntValue(0), s.Value(a1))

			// Ensure materializes a placeholder and is stable.
			c := s.Ensure(a1)
			require.NotNil(t, c)
			c.Value = IntValue(7)
			assert.Same(t, c, s.Ensure(a1))

			got, ok := s.Cell(a1)
			require.True(t, ok)
			assert.Equal(t, IntValue(7), got.Value)
			assert.Equal(t, IntValue(7), s.Value(a1))

			// Other cells remain untouched.
			_, ok = s.Cell(b2)
			assert.False(t, ok)
		})
	}
}

func TestCell_DependentEdges(t *testing.T) {
	var c Cell
	reader := coord.Ref{Row: 2, Col: 3}

	assert.False(t, c.HasDependent(reader))
	assert.True(t, c.AddDependent(reader))
	assert.False(t, c.AddDependent(reader), "re-adding must report no insertion")
	assert.True(t, c.HasDependent(reader))

	c.RemoveDependent(reader)
	assert.False(t, c.HasDependent(reader))
}

func TestValue(t *testing.T) {
	assert.Equal(t, "42", IntValue(42).String())
	assert.Equal(t, "-1", IntValue(-1).String())
	assert.Equal(t, "ERR", ErrValue().String())
	assert.True(t, ErrValue().IsText())
	assert.False(t, IntValue(0).IsText())
}

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(coord.Ref{Row: 0, Col: 0}, 5, 5))
	assert.True(t, InBounds(coord.Ref{Row: 4, Col: 4}, 5, 5))
	assert.False(t, InBounds(coord.Ref{Row: 5, Col: 0}, 5, 5))
	assert.False(t, InBounds(coord.Ref{Row: 0, Col: 5}, 5, 5))
	assert.False(t, InBounds(coord.Ref{Row: -1, Col: -1}, 5, 5))
}
