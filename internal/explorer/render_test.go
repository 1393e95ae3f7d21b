package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipSegmentFullyInside(t *testing.T) {
	x0, y0, x1, y1, ok := clipSegment(1, 1, 9, 9, 0, 10, 0, 10)

	require.True(t, ok)
	assert.Equal(t, [4]float64{1, 1, 9, 9}, [4]float64{x0, y0, x1, y1})
}

func TestClipSegmentCrossing(t *testing.T) {
	x0, y0, x1, y1, ok := clipSegment(-5, 5, 15, 5, 0, 10, 0, 10)

	require.True(t, ok)
	assert.InDelta(t, 0.0, x0, 1e-9)
	assert.InDelta(t, 10.0, x1, 1e-9)
	assert.InDelta(t, 5.0, y0, 1e-9)
	assert.InDelta(t, 5.0, y1, 1e-9)
}

func TestClipSegmentFullyOutside(t *testing.T) {
	_, _, _, _, ok := clipSegment(20, 20, 30, 30, 0, 10, 0, 10)
	assert.False(t, ok)
}

func TestClipSegmentDiagonalThroughCorner(t *testing.T) {
	x0, y0, x1, y1, ok := clipSegment(-10, -10, 20, 20, 0, 10, 0, 10)

	require.True(t, ok)
	assert.InDelta(t, 0.0, x0, 1e-9)
	assert.InDelta(t, 0.0, y0, 1e-9)
	assert.InDelta(t, 10.0, x1, 1e-9)
	assert.InDelta(t, 10.0, y1, 1e-9)
}

func TestStrokeLineEndpoints(t *testing.T) {
	grid := newCellGrid(20, 10)

	strokeLine(grid, 2, 2, 17, 7)

	assert.NotEqual(t, ' ', grid.runes[2*20+2])
	assert.NotEqual(t, ' ', grid.runes[7*20+17])
}

func TestStrokeLineStaysInGrid(t *testing.T) {
	grid := newCellGrid(5, 5)

	// Endpoints outside the grid must not panic; cells are bounds-checked.
	strokeLine(grid, -3, -3, 10, 10)

	assert.NotEqual(t, ' ', grid.runes[2*5+2])
}

func TestArrowRune(t *testing.T) {
	assert.Equal(t, '>', arrowRune(5, 1))
	assert.Equal(t, '<', arrowRune(-5, 1))
	assert.Equal(t, 'v', arrowRune(1, 5))
	assert.Equal(t, '^', arrowRune(1, -5))
}

func TestGridSetRespectsPriority(t *testing.T) {
	grid := newCellGrid(3, 3)

	grid.set(1, 1, '●', kindNode)
	grid.set(1, 1, '─', kindEdge)

	assert.Equal(t, '●', grid.runes[1*3+1])

	// Equal priority overwrites, so later edges can cross earlier ones.
	grid.set(1, 1, 'X', kindNode)
	assert.Equal(t, 'X', grid.runes[1*3+1])
}
